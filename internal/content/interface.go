package content

import (
	"context"

	"companion-bot/internal/model"
)

// UseCase defines the business logic interface for the content domain.
type UseCase interface {
	// List returns catalog items; onlyActive filters out disabled ones.
	List(ctx context.Context, onlyActive bool) ([]Item, error)

	// Get fetches one item by ID.
	Get(ctx context.Context, id string) (Item, error)

	// Create adds a catalog item.
	Create(ctx context.Context, input CreateInput) (Item, error)

	// Update patches a catalog item.
	Update(ctx context.Context, id string, input UpdateInput) (Item, error)

	// Delete removes a catalog item.
	Delete(ctx context.Context, id string) error

	// Match picks the catalog item best matching a user's request, via a
	// single completion call over the active catalog. Returns ErrNoMatch
	// when the model declines to pick.
	Match(ctx context.Context, query string) (Item, error)

	// RecordPurchase stores a completed Stars payment.
	RecordPurchase(ctx context.Context, sc model.Scope, itemID, chargeID string, stars int64) error
}
