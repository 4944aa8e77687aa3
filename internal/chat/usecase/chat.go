package usecase

import (
	"context"
	"fmt"

	"companion-bot/internal/chat"
	"companion-bot/internal/memory"
	"companion-bot/internal/model"
	"companion-bot/internal/persona"
	"companion-bot/pkg/llmprovider"
)

// Chat handles one text turn.
func (uc *implUseCase) Chat(ctx context.Context, sc model.Scope, input chat.TextInput) (chat.Output, error) {
	if input.Text == "" {
		return chat.Output{}, chat.ErrEmptyMessage
	}
	return uc.respond(ctx, sc, input.Text, "")
}

// ChatPhoto handles one photo turn. The stored history carries only the
// annotation; the image goes to the vision model for this turn alone.
func (uc *implUseCase) ChatPhoto(ctx context.Context, sc model.Scope, input chat.PhotoInput) (chat.Output, error) {
	turn := photoAnnotation
	if input.Caption != "" {
		turn = fmt.Sprintf("%s %s", photoAnnotation, input.Caption)
	}
	return uc.respond(ctx, sc, turn, input.ImageURL)
}

// ChatVoice transcribes a voice note and handles it as a text turn.
func (uc *implUseCase) ChatVoice(ctx context.Context, sc model.Scope, input chat.VoiceInput) (chat.Output, error) {
	if len(input.Audio) == 0 {
		return chat.Output{}, chat.ErrEmptyAudio
	}

	text, err := uc.transcriber.TranscribeAudio(ctx, input.Filename, input.Audio)
	if err != nil {
		uc.l.Errorf(ctx, "chat: transcription failed for %s: %v", sc.UserID, err)
		return chat.Output{Reply: uc.fallbackReply, Fallback: true}, nil
	}
	if text == "" {
		return chat.Output{}, chat.ErrEmptyMessage
	}
	return uc.respond(ctx, sc, text, "")
}

// RefreshHistory marks the user's cached history stale.
func (uc *implUseCase) RefreshHistory(userID string) {
	uc.mem.ForceReload(userID)
}

// respond runs the full turn: lazy history load, user-turn append, fresh
// persona read, context window selection, completion, assistant-turn append
// and durable writes. A completion failure yields the canned fallback and
// leaves memory untouched for the failed attempt, so the next turn sees
// consistent history.
func (uc *implUseCase) respond(ctx context.Context, sc model.Scope, userTurn, imageURL string) (chat.Output, error) {
	userID := sc.UserID
	uc.mem.InitUser(userID)

	if !uc.mem.Loaded(userID) {
		if err := uc.mem.LoadHistory(ctx, userID, uc.history); err != nil {
			// Degrade to whatever is cached rather than blocking the user;
			// the loaded flag stays unset so the next turn retries the load.
			uc.l.Warnf(ctx, "chat: history load failed for %s, continuing with cached window: %v", userID, err)
		}
	}

	uc.mem.AddMessage(userID, memory.RoleUser, userTurn)
	uc.persistTurn(ctx, userID, memory.RoleUser, userTurn, nil)

	profile, err := uc.personaSrc.Current(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "chat: persona read failed: %v", err)
		profile = persona.Profile{SystemPrompt: persona.DefaultSystemPrompt}
	}

	var offer *chatOffer
	if imageURL == "" {
		offer = uc.maybeOffer(ctx, userTurn)
	}

	window := memory.SelectWindow(profile.SystemPrompt, uc.mem.Messages(userID), uc.contextLimit)
	messages := toProviderMessages(window)

	// The image rides on the newest user message only; it is not part of
	// the stored history and costs no budget in the selector.
	if imageURL != "" && len(messages) > 0 {
		messages[len(messages)-1].ImageURL = imageURL
	}

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		System:      profile.SystemPrompt,
		Messages:    messages,
		Temperature: replyTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		uc.l.Errorf(ctx, "chat: completion failed for %s: %v", userID, err)
		return chat.Output{Reply: uc.fallbackReply, Fallback: true}, nil
	}

	reply := resp.Text
	uc.mem.AddMessage(userID, memory.RoleAssistant, reply)
	uc.persistTurn(ctx, userID, memory.RoleAssistant, reply, map[string]any{
		"provider": resp.ProviderName,
		"model":    resp.ModelName,
	})

	out := chat.Output{Reply: reply}
	if offer != nil {
		out.Offer = &offer.item
	}
	return out, nil
}

// persistTurn writes a turn to the durable store. Failures are logged, never
// propagated: the in-memory cache already holds the turn and the store is
// eventually reconciled by the next process start's history load.
func (uc *implUseCase) persistTurn(ctx context.Context, userID string, role memory.Role, content string, meta map[string]any) {
	if err := uc.history.Append(ctx, userID, role, content, meta); err != nil {
		uc.l.Errorf(ctx, "chat: failed to persist %s turn for %s: %v", role, userID, err)
	}
}

func toProviderMessages(window []memory.Message) []llmprovider.Message {
	out := make([]llmprovider.Message, 0, len(window))
	for _, m := range window {
		out = append(out, llmprovider.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
