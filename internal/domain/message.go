package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who authored a chat message.
type MessageRole string

// Possible message roles. Only user and assistant turns are persisted;
// system and tool turns are transient prompt machinery.
const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Common validation errors for ChatMessage.
var (
	ErrEmptyMessageID      = errors.New("message ID cannot be empty")
	ErrEmptyMessageChatID  = errors.New("message chat ID cannot be empty")
	ErrEmptyMessageUserID  = errors.New("message user ID cannot be empty")
	ErrEmptyMessageContent = errors.New("message content cannot be empty")
	ErrInvalidMessageRole  = errors.New("invalid message role")
)

// ChatMessage is one persisted turn of a chat's display history.
type ChatMessage struct {
	ID        uuid.UUID   `json:"id"`
	ChatID    uuid.UUID   `json:"chat_id"`
	UserID    uuid.UUID   `json:"user_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewChatMessage creates a new ChatMessage with a fresh UUID and timestamp.
// Returns an error if validation fails.
func NewChatMessage(chatID, userID uuid.UUID, role MessageRole, content string) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:        uuid.New(),
		ChatID:    chatID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMessageID
	}

	if m.ChatID == uuid.Nil {
		return ErrEmptyMessageChatID
	}

	if m.UserID == uuid.Nil {
		return ErrEmptyMessageUserID
	}

	if m.Role != MessageRoleUser && m.Role != MessageRoleAssistant {
		return ErrInvalidMessageRole
	}

	if m.Content == "" {
		return ErrEmptyMessageContent
	}

	return nil
}
