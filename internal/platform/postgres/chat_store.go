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

// PostgresChatStore implements the store.ChatStore interface
// using a PostgreSQL database as the storage backend.
type PostgresChatStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresChatStore creates a new PostgreSQL implementation of the ChatStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresChatStore(db store.DBTX, logger *slog.Logger) *PostgresChatStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresChatStore{
		db:     db,
		logger: logger.With(slog.String("component", "chat_store")),
	}
}

// Ensure PostgresChatStore implements store.ChatStore interface
var _ store.ChatStore = (*PostgresChatStore)(nil)

// Create implements store.ChatStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresChatStore) Create(ctx context.Context, chat *domain.Chat) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := chat.Validate(); err != nil {
		log.Warn("chat validation failed during create",
			slog.String("error", err.Error()),
			slog.String("chat_id", chat.ID.String()))
		return err
	}

	query := `
		INSERT INTO chats (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		chat.ID,
		chat.UserID,
		chat.Title,
		chat.CreatedAt,
		chat.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during chat creation",
				slog.String("chat_id", chat.ID.String()),
				slog.String("user_id", chat.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, chat.UserID)
		}

		log.Error("failed to create chat",
			slog.String("error", err.Error()),
			slog.String("chat_id", chat.ID.String()))
		return MapError(err)
	}

	log.Info("chat created successfully",
		slog.String("chat_id", chat.ID.String()),
		slog.String("user_id", chat.UserID.String()))
	return nil
}

// GetByID implements store.ChatStore.GetByID
// Returns store.ErrChatNotFound if the chat does not exist or belongs to
// another user.
func (s *PostgresChatStore) GetByID(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chats
		WHERE id = $1 AND user_id = $2
	`

	var chat domain.Chat
	err := s.db.QueryRowContext(ctx, query, chatID, userID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("chat not found", slog.String("chat_id", chatID.String()))
			return nil, store.ErrChatNotFound
		}
		log.Error("failed to get chat by ID",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return nil, MapError(err)
	}

	return &chat, nil
}

// ListByUser implements store.ChatStore.ListByUser
// Returns an empty slice when the user has no chats.
func (s *PostgresChatStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chats
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query chats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	chats := []*domain.Chat{}
	for rows.Next() {
		var chat domain.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.UserID,
			&chat.Title,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan chat row",
				slog.String("error", err.Error()))
			return nil, err
		}
		chats = append(chats, &chat)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return chats, nil
}

// UpdateTitle implements store.ChatStore.UpdateTitle
// Returns store.ErrChatNotFound if the chat does not exist or belongs to
// another user.
func (s *PostgresChatStore) UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if title == "" {
		return domain.ErrEmptyChatTitle
	}

	query := `
		UPDATE chats
		SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, title, time.Now().UTC(), chatID, userID)
	if err != nil {
		log.Error("failed to update chat title",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "chat"); err != nil {
		return store.ErrChatNotFound
	}

	log.Info("chat renamed",
		slog.String("chat_id", chatID.String()))
	return nil
}

// Touch implements store.ChatStore.Touch
func (s *PostgresChatStore) Touch(ctx context.Context, userID, chatID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE chats
		SET updated_at = $1
		WHERE id = $2 AND user_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), chatID, userID)
	if err != nil {
		log.Error("failed to touch chat",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "chat"); err != nil {
		return store.ErrChatNotFound
	}

	return nil
}

// Delete implements store.ChatStore.Delete
// Messages cascade at the schema level; generated flashcards keep their
// row but lose the chat reference.
func (s *PostgresChatStore) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM chats WHERE id = $1 AND user_id = $2`,
		chatID,
		userID,
	)
	if err != nil {
		log.Error("failed to delete chat",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "chat"); err != nil {
		return store.ErrChatNotFound
	}

	log.Info("chat deleted",
		slog.String("chat_id", chatID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.ChatStore.WithTx
func (s *PostgresChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return &PostgresChatStore{
		db:     tx,
		logger: s.logger,
	}
}
