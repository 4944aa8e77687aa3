package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"companion-bot/internal/content"
	pkgLog "companion-bot/pkg/log"
)

const (
	contentCollection   = "content"
	purchasesCollection = "purchases"
)

// Repository is the Firestore-backed content catalog.
type Repository struct {
	client *firestore.Client
	l      pkgLog.Logger
}

// NewRepository creates a Firestore content repository.
func NewRepository(client *firestore.Client, l pkgLog.Logger) *Repository {
	return &Repository{client: client, l: l}
}

// itemDoc is the Firestore shape of a catalog item.
type itemDoc struct {
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	Type        string    `firestore:"type"`
	FileID      string    `firestore:"file_id"`
	PriceStars  int64     `firestore:"price_stars"`
	Active      bool      `firestore:"active"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// purchaseDoc is the Firestore shape of a completed purchase.
type purchaseDoc struct {
	UserID    string    `firestore:"user_id"`
	ItemID    string    `firestore:"item_id"`
	Stars     int64     `firestore:"stars"`
	ChargeID  string    `firestore:"charge_id"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (r *Repository) itemsCol() *firestore.CollectionRef {
	return r.client.Collection(contentCollection)
}

func toItem(id string, doc itemDoc) content.Item {
	return content.Item{
		ID:          id,
		Title:       doc.Title,
		Description: doc.Description,
		Type:        content.ItemType(doc.Type),
		FileID:      doc.FileID,
		PriceStars:  doc.PriceStars,
		Active:      doc.Active,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func fromItem(item content.Item) itemDoc {
	return itemDoc{
		Title:       item.Title,
		Description: item.Description,
		Type:        string(item.Type),
		FileID:      item.FileID,
		PriceStars:  item.PriceStars,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// List returns catalog items, optionally only active ones.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]content.Item, error) {
	q := r.itemsCol().Query
	if onlyActive {
		q = q.Where("active", "==", true)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var items []content.Item
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore List content: %w", err)
		}

		var doc itemDoc
		if err := snap.DataTo(&doc); err != nil {
			r.l.Warnf(ctx, "content repo: skipping malformed item %s: %v", snap.Ref.ID, err)
			continue
		}
		items = append(items, toItem(snap.Ref.ID, doc))
	}
	return items, nil
}

// Get fetches one item by ID, mapping Firestore NotFound onto the domain error.
func (r *Repository) Get(ctx context.Context, id string) (content.Item, error) {
	snap, err := r.itemsCol().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return content.Item{}, content.ErrNotFound
		}
		return content.Item{}, fmt.Errorf("firestore Get content %s: %w", id, err)
	}

	var doc itemDoc
	if err := snap.DataTo(&doc); err != nil {
		return content.Item{}, fmt.Errorf("firestore decode content %s: %w", id, err)
	}
	return toItem(id, doc), nil
}

// Create stores a new item under its pre-assigned ID.
func (r *Repository) Create(ctx context.Context, item content.Item) error {
	if _, err := r.itemsCol().Doc(item.ID).Create(ctx, fromItem(item)); err != nil {
		return fmt.Errorf("firestore Create content %s: %w", item.ID, err)
	}
	return nil
}

// Update overwrites an existing item.
func (r *Repository) Update(ctx context.Context, item content.Item) error {
	if _, err := r.itemsCol().Doc(item.ID).Set(ctx, fromItem(item)); err != nil {
		return fmt.Errorf("firestore Update content %s: %w", item.ID, err)
	}
	return nil
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.itemsCol().Doc(id).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return content.ErrNotFound
		}
		return fmt.Errorf("firestore Delete content %s: %w", id, err)
	}
	return nil
}

// RecordPurchase stores a completed purchase.
func (r *Repository) RecordPurchase(ctx context.Context, p content.Purchase) error {
	doc := purchaseDoc{
		UserID:    p.UserID,
		ItemID:    p.ItemID,
		Stars:     p.Stars,
		ChargeID:  p.ChargeID,
		CreatedAt: p.CreatedAt,
	}
	if _, err := r.client.Collection(purchasesCollection).Doc(p.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore RecordPurchase %s: %w", p.ID, err)
	}
	return nil
}
