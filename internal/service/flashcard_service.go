package service

import (
	"context"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// FlashcardService exposes operations on individual flashcards.
type FlashcardService interface {
	// List returns all of the user's flashcards, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// Get returns one flashcard.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error)

	// MoveToCollection attaches a flashcard to a collection, or detaches
	// it when collectionID is nil. The target collection must belong to
	// the same user.
	MoveToCollection(ctx context.Context, userID, cardID uuid.UUID, collectionID *uuid.UUID) error

	// Delete removes a flashcard permanently.
	Delete(ctx context.Context, userID, cardID uuid.UUID) error
}

// flashcardService implements FlashcardService.
type flashcardService struct {
	cardStore       store.FlashcardStore
	collectionStore store.CollectionStore
	logger          *slog.Logger
}

var _ FlashcardService = (*flashcardService)(nil)

// NewFlashcardService creates a new FlashcardService.
func NewFlashcardService(
	cardStore store.FlashcardStore,
	collectionStore store.CollectionStore,
	log *slog.Logger,
) FlashcardService {
	if log == nil {
		log = slog.Default()
	}

	return &flashcardService{
		cardStore:       cardStore,
		collectionStore: collectionStore,
		logger:          log.With(slog.String("component", "flashcard_service")),
	}
}

// List implements FlashcardService.
func (s *flashcardService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error) {
	return s.cardStore.ListByUser(ctx, userID)
}

// Get implements FlashcardService.
func (s *flashcardService) Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error) {
	return s.cardStore.GetByID(ctx, userID, cardID)
}

// MoveToCollection implements FlashcardService.
func (s *flashcardService) MoveToCollection(
	ctx context.Context,
	userID, cardID uuid.UUID,
	collectionID *uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Verify the target collection exists and is owned by the user before
	// touching the card. Detaching needs no such check.
	if collectionID != nil {
		if _, err := s.collectionStore.GetByID(ctx, userID, *collectionID); err != nil {
			return err
		}
	}

	if err := s.cardStore.SetCollection(ctx, userID, cardID, collectionID); err != nil {
		return err
	}

	log.Debug("flashcard collection updated",
		slog.String("card_id", cardID.String()),
		slog.Bool("detached", collectionID == nil))
	return nil
}

// Delete implements FlashcardService.
func (s *flashcardService) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardStore.Delete(ctx, userID, cardID); err != nil {
		return err
	}

	log.Info("flashcard deleted",
		slog.String("card_id", cardID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
