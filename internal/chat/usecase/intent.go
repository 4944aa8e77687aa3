package usecase

import (
	"context"
	"errors"
	"strings"

	"companion-bot/internal/content"
	"companion-bot/pkg/llmprovider"
)

const (
	intentChat    = "chat"
	intentContent = "content_request"

	intentPrompt = "Classify the user's message. " +
		"Reply with exactly one word: \"content_request\" if the user is asking to see, receive or buy a photo or video, " +
		"or \"chat\" for anything else."
)

type chatOffer struct {
	item content.Item
}

// classifyIntent labels a user turn as plain chat or a content request. Any
// classifier failure degrades to plain chat so the conversation never stalls
// on the selling path.
func (uc *implUseCase) classifyIntent(ctx context.Context, userTurn string) string {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		System:      intentPrompt,
		Messages:    []llmprovider.Message{{Role: "user", Content: userTurn}},
		Temperature: 0,
		MaxTokens:   8,
	})
	if err != nil {
		uc.l.Warnf(ctx, "chat: intent classification failed, defaulting to chat: %v", err)
		return intentChat
	}

	label := strings.ToLower(strings.TrimSpace(resp.Text))
	if strings.Contains(label, intentContent) {
		return intentContent
	}
	return intentChat
}

// maybeOffer returns a catalog item to offer when the user is asking for
// content, or nil when they are not (or nothing matches). Selling is disabled
// entirely when no matcher is wired.
func (uc *implUseCase) maybeOffer(ctx context.Context, userTurn string) *chatOffer {
	if uc.matcher == nil {
		return nil
	}
	if uc.classifyIntent(ctx, userTurn) != intentContent {
		return nil
	}

	item, err := uc.matcher.Match(ctx, userTurn)
	if err != nil {
		if !errors.Is(err, content.ErrNoMatch) && !errors.Is(err, content.ErrEmptyCatalog) {
			uc.l.Warnf(ctx, "chat: content match failed: %v", err)
		}
		return nil
	}
	return &chatOffer{item: item}
}
