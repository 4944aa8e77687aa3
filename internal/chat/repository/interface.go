package repository

import (
	"context"

	"companion-bot/internal/memory"
)

// HistoryRepository is the durable conversation store. FetchHistory matches
// memory.HistorySource, so an implementation plugs straight into the cache's
// lazy load.
type HistoryRepository interface {
	// FetchHistory returns the user's full history in chronological order.
	FetchHistory(ctx context.Context, userID string) ([]memory.Message, error)

	// Append writes one turn. Fire-and-forget from the orchestrator's
	// perspective; failures are logged by the caller, never fatal.
	Append(ctx context.Context, userID string, role memory.Role, content string, meta map[string]any) error
}
