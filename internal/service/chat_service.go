package service

import (
	"context"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// ChatDetail bundles a chat with its messages and generated flashcards.
type ChatDetail struct {
	Chat       *domain.Chat
	Messages   []*domain.ChatMessage
	Flashcards []*domain.Flashcard
}

// ChatService exposes chat history operations.
type ChatService interface {
	// List returns the user's chats, most recently updated first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error)

	// Get returns one chat with its full message and flashcard history.
	Get(ctx context.Context, userID, chatID uuid.UUID) (*ChatDetail, error)

	// Rename changes a chat's title.
	Rename(ctx context.Context, userID, chatID uuid.UUID, title string) (*domain.Chat, error)

	// Delete removes a chat and its messages. Flashcards generated in the
	// chat survive with their chat reference cleared.
	Delete(ctx context.Context, userID, chatID uuid.UUID) error
}

// chatService implements ChatService on top of the stores.
type chatService struct {
	chatStore    store.ChatStore
	messageStore store.MessageStore
	cardStore    store.FlashcardStore
	logger       *slog.Logger
}

var _ ChatService = (*chatService)(nil)

// NewChatService creates a new ChatService.
func NewChatService(
	chatStore store.ChatStore,
	messageStore store.MessageStore,
	cardStore store.FlashcardStore,
	log *slog.Logger,
) ChatService {
	if log == nil {
		log = slog.Default()
	}

	return &chatService{
		chatStore:    chatStore,
		messageStore: messageStore,
		cardStore:    cardStore,
		logger:       log.With(slog.String("component", "chat_service")),
	}
}

// List implements ChatService.
func (s *chatService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	return s.chatStore.ListByUser(ctx, userID)
}

// Get implements ChatService.
func (s *chatService) Get(ctx context.Context, userID, chatID uuid.UUID) (*ChatDetail, error) {
	chat, err := s.chatStore.GetByID(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageStore.ListByChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardStore.ListByChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	return &ChatDetail{
		Chat:       chat,
		Messages:   messages,
		Flashcards: cards,
	}, nil
}

// Rename implements ChatService.
func (s *chatService) Rename(
	ctx context.Context,
	userID, chatID uuid.UUID,
	title string,
) (*domain.Chat, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	chat, err := s.chatStore.GetByID(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := chat.Rename(title); err != nil {
		return nil, err
	}

	if err := s.chatStore.UpdateTitle(ctx, userID, chatID, chat.Title); err != nil {
		return nil, err
	}

	log.Debug("chat renamed",
		slog.String("chat_id", chatID.String()))
	return chat, nil
}

// Delete implements ChatService.
func (s *chatService) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.chatStore.Delete(ctx, userID, chatID); err != nil {
		return err
	}

	log.Info("chat deleted",
		slog.String("chat_id", chatID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
