package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Collection.
var (
	ErrEmptyCollectionID     = errors.New("collection ID cannot be empty")
	ErrEmptyCollectionUserID = errors.New("collection user ID cannot be empty")
	ErrEmptyCollectionName   = errors.New("collection name cannot be empty")
)

// Collection is a named, user-owned grouping of saved flashcards.
// Topic records the question or subject the collection grew out of.
type Collection struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCollection creates a new Collection with a fresh UUID and timestamps.
// Returns an error if validation fails.
func NewCollection(userID uuid.UUID, name, topic string) (*Collection, error) {
	collection := &Collection{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Topic:     topic,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
func (c *Collection) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCollectionID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCollectionUserID
	}

	if c.Name == "" {
		return ErrEmptyCollectionName
	}

	return nil
}
