package store

import (
	"context"
	"database/sql"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/google/uuid"
)

// ChatStore defines the interface for chat data persistence.
// All lookups are scoped to the owning user; a chat belonging to a
// different user is reported as not found rather than forbidden.
type ChatStore interface {
	// Create saves a new chat to the store.
	// Returns validation errors from the domain Chat if data is invalid.
	Create(ctx context.Context, chat *domain.Chat) error

	// GetByID retrieves a chat by its unique ID, scoped to the given user.
	// Returns ErrChatNotFound if the chat does not exist or belongs to
	// another user.
	GetByID(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error)

	// ListByUser returns all chats owned by the given user, most recently
	// updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error)

	// UpdateTitle renames a chat and bumps its updated timestamp.
	// Returns ErrChatNotFound if the chat does not exist or belongs to
	// another user.
	UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) error

	// Touch bumps the chat's updated timestamp without changing other fields.
	// Used when new messages or flashcards are appended.
	Touch(ctx context.Context, userID, chatID uuid.UUID) error

	// Delete removes a chat and, via cascading constraints, its messages.
	// Returns ErrChatNotFound if the chat does not exist or belongs to
	// another user.
	Delete(ctx context.Context, userID, chatID uuid.UUID) error

	// WithTx returns a new ChatStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ChatStore
}
