package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the FlashcardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardInsertQuery = `
	INSERT INTO flashcards (id, user_id, chat_id, collection_id, question, answer, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const flashcardSelectColumns = `
	id, user_id, chat_id, collection_id, question, answer, created_at, updated_at
`

// Create implements store.FlashcardStore.Create
// Returns store.ErrInvalidEntity if a referenced user, chat, or collection
// does not exist.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		flashcardInsertQuery,
		card.ID,
		card.UserID,
		card.ChatID,
		card.CollectionID,
		card.Question,
		card.Answer,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during flashcard creation",
				slog.String("flashcard_id", card.ID.String()),
				slog.String("user_id", card.UserID.String()))
			return fmt.Errorf("%w: referenced entity not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return MapError(err)
	}

	log.Debug("flashcard created",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// CreateMultiple implements store.FlashcardStore.CreateMultiple
// Each card is validated before any row is written. Run inside a
// transaction when all-or-nothing behavior is required.
func (s *PostgresFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	for _, card := range cards {
		_, err := s.db.ExecContext(
			ctx,
			flashcardInsertQuery,
			card.ID,
			card.UserID,
			card.ChatID,
			card.CollectionID,
			card.Question,
			card.Answer,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: referenced entity not found", store.ErrInvalidEntity)
			}
			log.Error("failed to create flashcard in batch",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return MapError(err)
		}
	}

	log.Info("flashcards created",
		slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.FlashcardStore.GetByID
// Returns store.ErrFlashcardNotFound if the flashcard does not exist or
// belongs to another user.
func (s *PostgresFlashcardStore) GetByID(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + flashcardSelectColumns + `
		FROM flashcards
		WHERE id = $1 AND user_id = $2
	`

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, cardID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found",
				slog.String("flashcard_id", cardID.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard by ID",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// ListByUser implements store.FlashcardStore.ListByUser
func (s *PostgresFlashcardStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `SELECT ` + flashcardSelectColumns + `
		FROM flashcards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return s.list(ctx, query, userID)
}

// ListByChat implements store.FlashcardStore.ListByChat
func (s *PostgresFlashcardStore) ListByChat(
	ctx context.Context,
	userID, chatID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `SELECT ` + flashcardSelectColumns + `
		FROM flashcards
		WHERE user_id = $1 AND chat_id = $2
		ORDER BY created_at ASC
	`
	return s.list(ctx, query, userID, chatID)
}

// ListByCollection implements store.FlashcardStore.ListByCollection
func (s *PostgresFlashcardStore) ListByCollection(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) ([]*domain.Flashcard, error) {
	query := `SELECT ` + flashcardSelectColumns + `
		FROM flashcards
		WHERE user_id = $1 AND collection_id = $2
		ORDER BY created_at ASC
	`
	return s.list(ctx, query, userID, collectionID)
}

// SetCollection implements store.FlashcardStore.SetCollection
// Returns store.ErrFlashcardNotFound if the flashcard does not exist or
// belongs to another user, and store.ErrInvalidEntity if the target
// collection does not exist.
func (s *PostgresFlashcardStore) SetCollection(
	ctx context.Context,
	userID, cardID uuid.UUID,
	collectionID *uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE flashcards
		SET collection_id = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, collectionID, time.Now().UTC(), cardID, userID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: collection not found", store.ErrInvalidEntity)
		}
		log.Error("failed to set flashcard collection",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "flashcard"); err != nil {
		return store.ErrFlashcardNotFound
	}

	return nil
}

// Delete implements store.FlashcardStore.Delete
// Returns store.ErrFlashcardNotFound if the flashcard does not exist or
// belongs to another user.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM flashcards WHERE id = $1 AND user_id = $2`,
		cardID,
		userID,
	)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "flashcard"); err != nil {
		return store.ErrFlashcardNotFound
	}

	log.Info("flashcard deleted",
		slog.String("flashcard_id", cardID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresFlashcardStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query flashcards",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.ChatID,
			&card.CollectionID,
			&card.Question,
			&card.Answer,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan flashcard row",
				slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return cards, nil
}

func scanFlashcard(row *sql.Row) (*domain.Flashcard, error) {
	var card domain.Flashcard
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.ChatID,
		&card.CollectionID,
		&card.Question,
		&card.Answer,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
