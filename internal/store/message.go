package store

import (
	"context"
	"database/sql"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/google/uuid"
)

// MessageStore defines the interface for chat message persistence.
type MessageStore interface {
	// Create saves a new chat message to the store.
	// Returns validation errors from the domain ChatMessage if data is invalid.
	Create(ctx context.Context, message *domain.ChatMessage) error

	// ListByChat returns all messages in the given chat in chronological
	// order, scoped to the owning user.
	ListByChat(ctx context.Context, userID, chatID uuid.UUID) ([]*domain.ChatMessage, error)

	// WithTx returns a new MessageStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MessageStore
}
