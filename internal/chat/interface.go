package chat

import (
	"context"

	"companion-bot/internal/model"
)

// UseCase defines the business logic interface for the chat domain: one
// inbound update maps to one call here.
type UseCase interface {
	// Chat handles a text turn: loads history lazily, selects the context
	// window, calls the completion provider, and records both turns.
	Chat(ctx context.Context, sc model.Scope, input TextInput) (Output, error)

	// ChatPhoto handles a photo turn through the vision completion path.
	ChatPhoto(ctx context.Context, sc model.Scope, input PhotoInput) (Output, error)

	// ChatVoice transcribes a voice note and handles it as a text turn.
	ChatVoice(ctx context.Context, sc model.Scope, input VoiceInput) (Output, error)

	// RefreshHistory marks a user's cached history stale so the next turn
	// re-reads the durable store. Exposed to the admin API.
	RefreshHistory(userID string)
}
