package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"companion-bot/internal/chat"
	"companion-bot/internal/chat/usecase"
	"companion-bot/internal/content"
	"companion-bot/internal/memory"
	"companion-bot/internal/model"
	"companion-bot/internal/persona"
	"companion-bot/pkg/llmprovider"
)

// mockHistory is an in-memory history store with call counting.
type mockHistory struct {
	stored     map[string][]memory.Message
	fetchCount int
	fetchErr   error
	appendErr  error
	appended   []memory.Message
}

func newMockHistory(stored map[string][]memory.Message) *mockHistory {
	if stored == nil {
		stored = make(map[string][]memory.Message)
	}
	return &mockHistory{stored: stored}
}

func (m *mockHistory) FetchHistory(ctx context.Context, userID string) ([]memory.Message, error) {
	m.fetchCount++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.stored[userID], nil
}

func (m *mockHistory) Append(ctx context.Context, userID string, role memory.Role, content string, meta map[string]any) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended = append(m.appended, memory.Message{Role: role, Content: content})
	return nil
}

// mockCompleter answers the intent-classification call and the reply call
// separately so tests can drive the selling path.
type mockCompleter struct {
	reply    string
	intent   string
	err      error
	requests []*llmprovider.Request
}

func (m *mockCompleter) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.requests = append(m.requests, req)
	if strings.Contains(req.System, "Classify") {
		intent := m.intent
		if intent == "" {
			intent = "chat"
		}
		return &llmprovider.Response{Text: intent}, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{Text: m.reply, ProviderName: "openai", ModelName: "gpt-4o-mini"}, nil
}

// replyRequest returns the last non-classifier request the completer saw.
func (m *mockCompleter) replyRequest() *llmprovider.Request {
	for i := len(m.requests) - 1; i >= 0; i-- {
		if !strings.Contains(m.requests[i].System, "Classify") {
			return m.requests[i]
		}
	}
	return nil
}

type mockTranscriber struct {
	text string
	err  error
}

func (m *mockTranscriber) TranscribeAudio(ctx context.Context, filename string, audio []byte) (string, error) {
	return m.text, m.err
}

type mockPersona struct {
	prompt string
	calls  int
}

func (m *mockPersona) Current(ctx context.Context) (persona.Profile, error) {
	m.calls++
	return persona.Profile{SystemPrompt: m.prompt}, nil
}

type mockMatcher struct {
	item content.Item
	err  error
}

func (m *mockMatcher) Match(ctx context.Context, query string) (content.Item, error) {
	if m.err != nil {
		return content.Item{}, m.err
	}
	return m.item, nil
}

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (mockLogger) Info(ctx context.Context, args ...any)                     {}
func (mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (mockLogger) Error(ctx context.Context, args ...any)                    {}
func (mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}

const testLimit = 2500

func testScope() model.Scope {
	return model.Scope{UserID: "telegram_42", Username: "amy", ChatID: 42}
}

func newChatUC(history *mockHistory, completer *mockCompleter, matcher usecase.Matcher) (chat.UseCase, *memory.Store) {
	mem := memory.NewStore(100, 200)
	uc := usecase.New(
		mockLogger{},
		mem,
		history,
		completer,
		&mockTranscriber{},
		&mockPersona{prompt: "You are Mia."},
		matcher,
		testLimit,
		"Sorry love, ask me again in a minute?",
	)
	return uc, mem
}

func TestChat(t *testing.T) {
	t.Run("Basic Turn", func(t *testing.T) {
		history := newMockHistory(nil)
		completer := &mockCompleter{reply: "hey you!"}
		uc, mem := newChatUC(history, completer, nil)

		out, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reply != "hey you!" {
			t.Errorf("unexpected reply %q", out.Reply)
		}
		if out.Fallback {
			t.Error("fallback flag set on success")
		}

		msgs := mem.Messages("telegram_42")
		if len(msgs) != 2 {
			t.Fatalf("expected 2 cached messages, got %d", len(msgs))
		}
		if msgs[0].Role != memory.RoleUser || msgs[1].Role != memory.RoleAssistant {
			t.Errorf("unexpected roles: %v %v", msgs[0].Role, msgs[1].Role)
		}
		if len(history.appended) != 2 {
			t.Errorf("expected 2 persisted turns, got %d", len(history.appended))
		}
	})

	t.Run("Empty Message", func(t *testing.T) {
		uc, _ := newChatUC(newMockHistory(nil), &mockCompleter{}, nil)
		_, err := uc.Chat(context.Background(), testScope(), chat.TextInput{})
		if !errors.Is(err, chat.ErrEmptyMessage) {
			t.Errorf("expected ErrEmptyMessage, got %v", err)
		}
	})

	t.Run("History Loaded Once", func(t *testing.T) {
		history := newMockHistory(map[string][]memory.Message{
			"telegram_42": {{Role: memory.RoleUser, Content: "old"}, {Role: memory.RoleAssistant, Content: "older reply"}},
		})
		uc, mem := newChatUC(history, &mockCompleter{reply: "ok"}, nil)

		for i := 0; i < 3; i++ {
			if _, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "again"}); err != nil {
				t.Fatalf("turn %d: %v", i, err)
			}
		}
		if history.fetchCount != 1 {
			t.Errorf("expected 1 history fetch, got %d", history.fetchCount)
		}
		msgs := mem.Messages("telegram_42")
		if msgs[0].Content != "old" {
			t.Errorf("loaded history not at the front: %q", msgs[0].Content)
		}
	})

	t.Run("Load Failure Degrades To Cache", func(t *testing.T) {
		history := newMockHistory(nil)
		history.fetchErr = errors.New("firestore down")
		uc, _ := newChatUC(history, &mockCompleter{reply: "still here"}, nil)

		out, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi"})
		if err != nil {
			t.Fatalf("turn should survive a load failure: %v", err)
		}
		if out.Reply != "still here" {
			t.Errorf("unexpected reply %q", out.Reply)
		}

		// The load is retried once the store recovers.
		history.fetchErr = nil
		if _, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hello?"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if history.fetchCount != 2 {
			t.Errorf("expected retry fetch, got %d fetches", history.fetchCount)
		}
	})

	t.Run("Completion Failure Uses Fallback Without Recording It", func(t *testing.T) {
		history := newMockHistory(nil)
		completer := &mockCompleter{err: errors.New("all providers failed")}
		uc, mem := newChatUC(history, completer, nil)

		out, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Fallback {
			t.Error("fallback flag not set")
		}
		if out.Reply != "Sorry love, ask me again in a minute?" {
			t.Errorf("unexpected fallback reply %q", out.Reply)
		}

		msgs := mem.Messages("telegram_42")
		if len(msgs) != 1 {
			t.Fatalf("expected only the user turn cached, got %d messages", len(msgs))
		}
		for _, m := range history.appended {
			if m.Role == memory.RoleAssistant {
				t.Error("fallback reply must not be persisted")
			}
		}
	})

	t.Run("Duplicate Delivery Suppressed", func(t *testing.T) {
		history := newMockHistory(nil)
		completer := &mockCompleter{err: errors.New("down")}
		uc, mem := newChatUC(history, completer, nil)

		// Two failed turns with the same text: the user turn is cached once.
		uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi"})
		uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi"})

		msgs := mem.Messages("telegram_42")
		if len(msgs) != 1 {
			t.Errorf("expected duplicate user turn suppressed, got %d messages", len(msgs))
		}
	})

	t.Run("Persona Read Every Turn", func(t *testing.T) {
		history := newMockHistory(nil)
		completer := &mockCompleter{reply: "ok"}
		src := &mockPersona{prompt: "You are Mia."}
		mem := memory.NewStore(100, 200)
		uc := usecase.New(mockLogger{}, mem, history, completer, &mockTranscriber{}, src, nil, testLimit, "fallback")

		uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "one"})
		uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "two"})
		if src.calls != 2 {
			t.Errorf("expected persona read per turn, got %d reads", src.calls)
		}
		if req := completer.replyRequest(); req == nil || req.System != "You are Mia." {
			t.Error("persona prompt not passed to the completion call")
		}
	})

	t.Run("Content Request Produces Offer", func(t *testing.T) {
		history := newMockHistory(nil)
		completer := &mockCompleter{reply: "I have just the thing 😘", intent: "content_request"}
		matcher := &mockMatcher{item: content.Item{ID: "item-1", Title: "Beach photo", PriceStars: 100}}
		uc, _ := newChatUC(history, completer, matcher)

		out, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "got any beach pics?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Offer == nil {
			t.Fatal("expected an offer")
		}
		if out.Offer.ID != "item-1" {
			t.Errorf("unexpected offer item %s", out.Offer.ID)
		}
	})

	t.Run("No Match Means No Offer", func(t *testing.T) {
		completer := &mockCompleter{reply: "nothing like that, sorry!", intent: "content_request"}
		matcher := &mockMatcher{err: content.ErrNoMatch}
		uc, _ := newChatUC(newMockHistory(nil), completer, matcher)

		out, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "got any snowboarding videos?"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Offer != nil {
			t.Error("expected no offer")
		}
	})

	t.Run("Plain Chat Skips Matching", func(t *testing.T) {
		completer := &mockCompleter{reply: "good morning!", intent: "chat"}
		matcher := &mockMatcher{err: errors.New("must not be called")}
		uc, _ := newChatUC(newMockHistory(nil), completer, matcher)

		out, err := uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "morning"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Offer != nil {
			t.Error("expected no offer for plain chat")
		}
	})
}

func TestChatPhoto(t *testing.T) {
	t.Run("Annotation Stored Image Sent", func(t *testing.T) {
		completer := &mockCompleter{reply: "cute!"}
		uc, mem := newChatUC(newMockHistory(nil), completer, nil)

		out, err := uc.ChatPhoto(context.Background(), testScope(), chat.PhotoInput{
			ImageURL: "data:image/jpeg;base64,abc123",
			Caption:  "look at this",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reply != "cute!" {
			t.Errorf("unexpected reply %q", out.Reply)
		}

		msgs := mem.Messages("telegram_42")
		if msgs[0].Content != "[Photo sent] look at this" {
			t.Errorf("unexpected stored annotation %q", msgs[0].Content)
		}

		req := completer.replyRequest()
		if req == nil {
			t.Fatal("no completion request recorded")
		}
		last := req.Messages[len(req.Messages)-1]
		if last.ImageURL != "data:image/jpeg;base64,abc123" {
			t.Error("image not attached to the newest message")
		}
	})

	t.Run("No Caption", func(t *testing.T) {
		completer := &mockCompleter{reply: "nice"}
		uc, mem := newChatUC(newMockHistory(nil), completer, nil)

		if _, err := uc.ChatPhoto(context.Background(), testScope(), chat.PhotoInput{ImageURL: "data:image/jpeg;base64,x"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if msgs := mem.Messages("telegram_42"); msgs[0].Content != "[Photo sent]" {
			t.Errorf("unexpected stored annotation %q", msgs[0].Content)
		}
	})
}

func TestChatVoice(t *testing.T) {
	t.Run("Transcribed And Answered", func(t *testing.T) {
		completer := &mockCompleter{reply: "miss you too"}
		mem := memory.NewStore(100, 200)
		uc := usecase.New(mockLogger{}, mem, newMockHistory(nil), completer,
			&mockTranscriber{text: "i miss you"}, &mockPersona{prompt: "p"}, nil, testLimit, "fallback")

		out, err := uc.ChatVoice(context.Background(), testScope(), chat.VoiceInput{
			Filename: "voice.ogg", Audio: []byte{1, 2, 3},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reply != "miss you too" {
			t.Errorf("unexpected reply %q", out.Reply)
		}
		if msgs := mem.Messages("telegram_42"); msgs[0].Content != "i miss you" {
			t.Errorf("transcript not stored as the user turn: %q", msgs[0].Content)
		}
	})

	t.Run("Empty Audio", func(t *testing.T) {
		uc, _ := newChatUC(newMockHistory(nil), &mockCompleter{}, nil)
		_, err := uc.ChatVoice(context.Background(), testScope(), chat.VoiceInput{Filename: "voice.ogg"})
		if !errors.Is(err, chat.ErrEmptyAudio) {
			t.Errorf("expected ErrEmptyAudio, got %v", err)
		}
	})

	t.Run("Transcription Failure Falls Back", func(t *testing.T) {
		mem := memory.NewStore(100, 200)
		uc := usecase.New(mockLogger{}, mem, newMockHistory(nil), &mockCompleter{},
			&mockTranscriber{err: errors.New("whisper down")}, &mockPersona{prompt: "p"}, nil, testLimit, "fallback")

		out, err := uc.ChatVoice(context.Background(), testScope(), chat.VoiceInput{
			Filename: "voice.ogg", Audio: []byte{1},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Fallback {
			t.Error("fallback flag not set")
		}
		if msgs := mem.Messages("telegram_42"); len(msgs) != 0 {
			t.Errorf("failed transcription must not touch memory, got %d messages", len(msgs))
		}
	})
}

func TestRefreshHistory(t *testing.T) {
	history := newMockHistory(map[string][]memory.Message{
		"telegram_42": {{Role: memory.RoleUser, Content: "from store"}},
	})
	uc, _ := newChatUC(history, &mockCompleter{reply: "ok"}, nil)

	uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi"})
	if history.fetchCount != 1 {
		t.Fatalf("expected 1 fetch, got %d", history.fetchCount)
	}

	uc.RefreshHistory("telegram_42")

	uc.Chat(context.Background(), testScope(), chat.TextInput{Text: "hi again"})
	if history.fetchCount != 2 {
		t.Errorf("expected re-fetch after refresh, got %d fetches", history.fetchCount)
	}
}
