package repository

import (
	"context"

	"companion-bot/internal/content"
)

// Repository is the durable content catalog store.
type Repository interface {
	List(ctx context.Context, onlyActive bool) ([]content.Item, error)
	Get(ctx context.Context, id string) (content.Item, error)
	Create(ctx context.Context, item content.Item) error
	Update(ctx context.Context, item content.Item) error
	Delete(ctx context.Context, id string) error
	RecordPurchase(ctx context.Context, p content.Purchase) error
}
