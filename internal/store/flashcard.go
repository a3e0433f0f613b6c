package store

import (
	"context"
	"database/sql"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/google/uuid"
)

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// Create saves a new flashcard to the store.
	// Returns validation errors from the domain Flashcard if data is invalid.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMultiple saves a batch of flashcards in a single operation.
	// Callers that need atomicity should run it inside a transaction via
	// WithTx; a failure part-way leaves earlier inserts to the caller's
	// transaction to roll back.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID, scoped to the given user.
	// Returns ErrFlashcardNotFound if the flashcard does not exist or
	// belongs to another user.
	GetByID(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error)

	// ListByUser returns all flashcards owned by the given user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// ListByChat returns the flashcards generated in the given chat,
	// oldest first, scoped to the owning user.
	ListByChat(ctx context.Context, userID, chatID uuid.UUID) ([]*domain.Flashcard, error)

	// ListByCollection returns the flashcards saved to the given
	// collection, oldest first, scoped to the owning user.
	ListByCollection(ctx context.Context, userID, collectionID uuid.UUID) ([]*domain.Flashcard, error)

	// SetCollection attaches a flashcard to a collection, or detaches it
	// when collectionID is nil.
	// Returns ErrFlashcardNotFound if the flashcard does not exist or
	// belongs to another user.
	SetCollection(ctx context.Context, userID, cardID uuid.UUID, collectionID *uuid.UUID) error

	// Delete removes a flashcard from the store.
	// Returns ErrFlashcardNotFound if the flashcard does not exist or
	// belongs to another user.
	Delete(ctx context.Context, userID, cardID uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
