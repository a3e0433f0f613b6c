package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Flashcard.
var (
	ErrEmptyFlashcardID       = errors.New("flashcard ID cannot be empty")
	ErrEmptyFlashcardUserID   = errors.New("flashcard user ID cannot be empty")
	ErrEmptyFlashcardQuestion = errors.New("flashcard question cannot be empty")
	ErrEmptyFlashcardAnswer   = errors.New("flashcard answer cannot be empty")
)

// Flashcard is one question/answer pair owned by a user. A flashcard may
// belong to the chat it was generated in, to a saved collection, or both.
// The ID is always minted server-side; identifiers appearing in model
// output are never trusted.
type Flashcard struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	ChatID       *uuid.UUID `json:"chat_id,omitempty"`
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard with a freshly minted UUID.
// Returns an error if validation fails.
func NewFlashcard(userID uuid.UUID, question, answer string) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFlashcardID
	}

	if f.UserID == uuid.Nil {
		return ErrEmptyFlashcardUserID
	}

	if f.Question == "" {
		return ErrEmptyFlashcardQuestion
	}

	if f.Answer == "" {
		return ErrEmptyFlashcardAnswer
	}

	return nil
}

// AttachToChat links the flashcard to the chat it was generated in.
func (f *Flashcard) AttachToChat(chatID uuid.UUID) {
	f.ChatID = &chatID
	f.UpdatedAt = time.Now().UTC()
}

// AttachToCollection links the flashcard to a saved collection.
func (f *Flashcard) AttachToCollection(collectionID uuid.UUID) {
	f.CollectionID = &collectionID
	f.UpdatedAt = time.Now().UTC()
}
