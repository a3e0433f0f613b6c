package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Chat.
var (
	ErrEmptyChatID     = errors.New("chat ID cannot be empty")
	ErrEmptyChatUserID = errors.New("chat user ID cannot be empty")
	ErrEmptyChatTitle  = errors.New("chat title cannot be empty")
)

// DefaultChatTitle is used when a chat is created without an explicit title.
const DefaultChatTitle = "New Chat"

// Chat represents one question-and-flashcards conversation owned by a user.
// Messages and generated flashcards reference the chat by ID.
type Chat struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewChat creates a new Chat for the given user. An empty title falls back
// to DefaultChatTitle. Returns an error if validation fails.
func NewChat(userID uuid.UUID, title string) (*Chat, error) {
	if title == "" {
		title = DefaultChatTitle
	}

	chat := &Chat{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := chat.Validate(); err != nil {
		return nil, err
	}

	return chat, nil
}

// Validate checks if the Chat has valid data.
func (c *Chat) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyChatID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyChatUserID
	}

	if c.Title == "" {
		return ErrEmptyChatTitle
	}

	return nil
}

// Rename updates the chat title and the UpdatedAt timestamp.
func (c *Chat) Rename(title string) error {
	if title == "" {
		return ErrEmptyChatTitle
	}

	c.Title = title
	c.UpdatedAt = time.Now().UTC()
	return nil
}
