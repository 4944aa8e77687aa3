package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"companion-bot/internal/memory"
	pkgLog "companion-bot/pkg/log"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
)

// HistoryRepository persists conversation turns under
// conversations/{userID}/messages, ordered by creation time.
type HistoryRepository struct {
	client *firestore.Client
	l      pkgLog.Logger
}

// NewHistoryRepository creates a Firestore-backed history repository.
func NewHistoryRepository(client *firestore.Client, l pkgLog.Logger) *HistoryRepository {
	return &HistoryRepository{client: client, l: l}
}

// messageDoc is the Firestore shape of one conversation turn.
type messageDoc struct {
	Role      string         `firestore:"role"`
	Content   string         `firestore:"content"`
	CreatedAt time.Time      `firestore:"created_at"`
	Metadata  map[string]any `firestore:"metadata,omitempty"`
}

func (r *HistoryRepository) messagesCol(userID string) *firestore.CollectionRef {
	return r.client.Collection(conversationsCollection).Doc(userID).Collection(messagesCollection)
}

// FetchHistory returns the user's full history in chronological order.
func (r *HistoryRepository) FetchHistory(ctx context.Context, userID string) ([]memory.Message, error) {
	iter := r.messagesCol(userID).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var history []memory.Message
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore FetchHistory for %s: %w", userID, err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			r.l.Warnf(ctx, "history repo: skipping malformed message %s for %s: %v", snap.Ref.ID, userID, err)
			continue
		}
		history = append(history, memory.Message{
			Role:    memory.Role(doc.Role),
			Content: doc.Content,
		})
	}
	return history, nil
}

// Append writes one turn with a generated document ID.
func (r *HistoryRepository) Append(ctx context.Context, userID string, role memory.Role, content string, meta map[string]any) error {
	doc := messageDoc{
		Role:      string(role),
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Metadata:  meta,
	}

	if _, err := r.messagesCol(userID).Doc(uuid.NewString()).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore Append for %s: %w", userID, err)
	}
	return nil
}
