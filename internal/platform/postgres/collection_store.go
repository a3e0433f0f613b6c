package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCollectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of the CollectionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCollectionStore(db store.DBTX, logger *slog.Logger) *PostgresCollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore interface
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// Create implements store.CollectionStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := collection.Validate(); err != nil {
		log.Warn("collection validation failed during create",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return err
	}

	query := `
		INSERT INTO collections (id, user_id, name, topic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		collection.ID,
		collection.UserID,
		collection.Name,
		collection.Topic,
		collection.CreatedAt,
		collection.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during collection creation",
				slog.String("collection_id", collection.ID.String()),
				slog.String("user_id", collection.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, collection.UserID)
		}

		log.Error("failed to create collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collection.ID.String()))
		return MapError(err)
	}

	log.Info("collection created successfully",
		slog.String("collection_id", collection.ID.String()),
		slog.String("user_id", collection.UserID.String()))
	return nil
}

// GetByID implements store.CollectionStore.GetByID
// Returns store.ErrCollectionNotFound if the collection does not exist or
// belongs to another user.
func (s *PostgresCollectionStore) GetByID(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, topic, created_at, updated_at
		FROM collections
		WHERE id = $1 AND user_id = $2
	`

	var collection domain.Collection
	err := s.db.QueryRowContext(ctx, query, collectionID, userID).Scan(
		&collection.ID,
		&collection.UserID,
		&collection.Name,
		&collection.Topic,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("collection not found",
				slog.String("collection_id", collectionID.String()))
			return nil, store.ErrCollectionNotFound
		}
		log.Error("failed to get collection by ID",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return nil, MapError(err)
	}

	return &collection, nil
}

// ListByUser implements store.CollectionStore.ListByUser
func (s *PostgresCollectionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, topic, created_at, updated_at
		FROM collections
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query collections",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	collections := []*domain.Collection{}
	for rows.Next() {
		var collection domain.Collection
		err := rows.Scan(
			&collection.ID,
			&collection.UserID,
			&collection.Name,
			&collection.Topic,
			&collection.CreatedAt,
			&collection.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan collection row",
				slog.String("error", err.Error()))
			return nil, err
		}
		collections = append(collections, &collection)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return collections, nil
}

// Delete implements store.CollectionStore.Delete
// Flashcards referencing the collection are detached via ON DELETE SET NULL.
func (s *PostgresCollectionStore) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM collections WHERE id = $1 AND user_id = $2`,
		collectionID,
		userID,
	)
	if err != nil {
		log.Error("failed to delete collection",
			slog.String("error", err.Error()),
			slog.String("collection_id", collectionID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "collection"); err != nil {
		return store.ErrCollectionNotFound
	}

	log.Info("collection deleted",
		slog.String("collection_id", collectionID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.CollectionStore.WithTx
func (s *PostgresCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &PostgresCollectionStore{
		db:     tx,
		logger: s.logger,
	}
}
