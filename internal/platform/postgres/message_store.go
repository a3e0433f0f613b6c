package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// PostgresMessageStore implements the store.MessageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMessageStore creates a new PostgreSQL implementation of the MessageStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// Ensure PostgresMessageStore implements store.MessageStore interface
var _ store.MessageStore = (*PostgresMessageStore)(nil)

// Create implements store.MessageStore.Create
// Returns store.ErrInvalidEntity if the chat or user does not exist.
func (s *PostgresMessageStore) Create(ctx context.Context, message *domain.ChatMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := message.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return err
	}

	query := `
		INSERT INTO chat_messages (id, chat_id, user_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.ChatID,
		message.UserID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during message creation",
				slog.String("message_id", message.ID.String()),
				slog.String("chat_id", message.ChatID.String()))
			return fmt.Errorf("%w: chat with ID %s not found",
				store.ErrInvalidEntity, message.ChatID)
		}

		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return MapError(err)
	}

	log.Debug("message created",
		slog.String("message_id", message.ID.String()),
		slog.String("chat_id", message.ChatID.String()),
		slog.String("role", string(message.Role)))
	return nil
}

// ListByChat implements store.MessageStore.ListByChat
// Returns messages in chronological order; an empty slice when the chat
// has none visible to the user.
func (s *PostgresMessageStore) ListByChat(
	ctx context.Context,
	userID, chatID uuid.UUID,
) ([]*domain.ChatMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, chat_id, user_id, role, content, created_at
		FROM chat_messages
		WHERE chat_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, chatID, userID)
	if err != nil {
		log.Error("failed to query messages",
			slog.String("error", err.Error()),
			slog.String("chat_id", chatID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	messages := []*domain.ChatMessage{}
	for rows.Next() {
		var msg domain.ChatMessage
		var role string

		err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.UserID,
			&role,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan message row",
				slog.String("error", err.Error()))
			return nil, err
		}

		msg.Role = domain.MessageRole(role)
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return messages, nil
}

// WithTx implements store.MessageStore.WithTx
func (s *PostgresMessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return &PostgresMessageStore{
		db:     tx,
		logger: s.logger,
	}
}
