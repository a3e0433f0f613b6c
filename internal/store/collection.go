package store

import (
	"context"
	"database/sql"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/google/uuid"
)

// CollectionStore defines the interface for collection data persistence.
type CollectionStore interface {
	// Create saves a new collection to the store.
	// Returns validation errors from the domain Collection if data is invalid.
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByID retrieves a collection by its unique ID, scoped to the given user.
	// Returns ErrCollectionNotFound if the collection does not exist or
	// belongs to another user.
	GetByID(ctx context.Context, userID, collectionID uuid.UUID) (*domain.Collection, error)

	// ListByUser returns all collections owned by the given user, most
	// recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error)

	// Delete removes a collection. Flashcards that referenced it are
	// detached, not deleted.
	// Returns ErrCollectionNotFound if the collection does not exist or
	// belongs to another user.
	Delete(ctx context.Context, userID, collectionID uuid.UUID) error

	// WithTx returns a new CollectionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CollectionStore
}
