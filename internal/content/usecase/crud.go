package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"companion-bot/internal/content"
	"companion-bot/internal/model"
)

// List returns catalog items.
func (uc *implUseCase) List(ctx context.Context, onlyActive bool) ([]content.Item, error) {
	return uc.repo.List(ctx, onlyActive)
}

// Get fetches one item by ID.
func (uc *implUseCase) Get(ctx context.Context, id string) (content.Item, error) {
	return uc.repo.Get(ctx, id)
}

// Create validates and stores a new catalog item.
func (uc *implUseCase) Create(ctx context.Context, input content.CreateInput) (content.Item, error) {
	if input.Title == "" || input.FileID == "" {
		return content.Item{}, fmt.Errorf("%w: title and file_id are required", content.ErrInvalidItem)
	}
	if input.Type != content.TypePhoto && input.Type != content.TypeVideo {
		return content.Item{}, fmt.Errorf("%w: type must be photo or video", content.ErrInvalidItem)
	}
	if input.PriceStars <= 0 {
		return content.Item{}, fmt.Errorf("%w: price must be positive", content.ErrInvalidItem)
	}

	now := time.Now().UTC()
	item := content.Item{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		FileID:      input.FileID,
		PriceStars:  input.PriceStars,
		Active:      input.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return content.Item{}, err
	}

	uc.l.Infof(ctx, "content: created item %s (%s, %d stars)", item.ID, item.Title, item.PriceStars)
	return item, nil
}

// Update patches an existing item.
func (uc *implUseCase) Update(ctx context.Context, id string, input content.UpdateInput) (content.Item, error) {
	if input.Title == nil && input.Description == nil && input.FileID == nil &&
		input.PriceStars == nil && input.Active == nil {
		return content.Item{}, content.ErrInvalidUpdate
	}

	item, err := uc.repo.Get(ctx, id)
	if err != nil {
		return content.Item{}, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.FileID != nil {
		item.FileID = *input.FileID
	}
	if input.PriceStars != nil {
		if *input.PriceStars <= 0 {
			return content.Item{}, fmt.Errorf("%w: price must be positive", content.ErrInvalidItem)
		}
		item.PriceStars = *input.PriceStars
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	item.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, item); err != nil {
		return content.Item{}, err
	}
	return item, nil
}

// Delete removes an item.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// RecordPurchase stores a completed Stars payment.
func (uc *implUseCase) RecordPurchase(ctx context.Context, sc model.Scope, itemID, chargeID string, stars int64) error {
	p := content.Purchase{
		ID:        uuid.NewString(),
		UserID:    sc.UserID,
		ItemID:    itemID,
		Stars:     stars,
		ChargeID:  chargeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.RecordPurchase(ctx, p); err != nil {
		return err
	}
	uc.l.Infof(ctx, "content: recorded purchase %s (user=%s item=%s stars=%d)", p.ID, p.UserID, itemID, stars)
	return nil
}
