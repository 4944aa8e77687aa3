package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"companion-bot/internal/persona"
)

const (
	settingsCollection = "settings"
	personaDoc         = "persona"
)

// Repository stores the persona as a single document at settings/persona.
type Repository struct {
	client *firestore.Client
}

// NewRepository creates a Firestore persona repository.
func NewRepository(client *firestore.Client) *Repository {
	return &Repository{client: client}
}

type profileDoc struct {
	SystemPrompt string    `firestore:"system_prompt"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (r *Repository) doc() *firestore.DocumentRef {
	return r.client.Collection(settingsCollection).Doc(personaDoc)
}

// Current reads the live persona. Falls back to the default prompt when none
// has been stored yet, so a fresh deployment can chat immediately.
func (r *Repository) Current(ctx context.Context) (persona.Profile, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return persona.Profile{SystemPrompt: persona.DefaultSystemPrompt}, nil
		}
		return persona.Profile{}, fmt.Errorf("firestore persona Get: %w", err)
	}

	var doc profileDoc
	if err := snap.DataTo(&doc); err != nil {
		return persona.Profile{}, fmt.Errorf("firestore persona decode: %w", err)
	}
	return persona.Profile{SystemPrompt: doc.SystemPrompt, UpdatedAt: doc.UpdatedAt}, nil
}

// Set overwrites the persona.
func (r *Repository) Set(ctx context.Context, p persona.Profile) error {
	doc := profileDoc{
		SystemPrompt: p.SystemPrompt,
		UpdatedAt:    time.Now().UTC(),
	}
	if _, err := r.doc().Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore persona Set: %w", err)
	}
	return nil
}
