package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/platform/logger"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// CollectionDetail bundles a collection with its saved flashcards.
type CollectionDetail struct {
	Collection *domain.Collection
	Flashcards []*domain.Flashcard
}

// CollectionService exposes saved-collection operations.
type CollectionService interface {
	// Create makes a new collection and optionally attaches existing
	// flashcards to it in the same transaction.
	Create(ctx context.Context, userID uuid.UUID, name, topic string, cardIDs []uuid.UUID) (*domain.Collection, error)

	// List returns the user's collections, most recently updated first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error)

	// Get returns one collection with its saved flashcards.
	Get(ctx context.Context, userID, collectionID uuid.UUID) (*CollectionDetail, error)

	// Delete removes a collection. Its flashcards are detached, not deleted.
	Delete(ctx context.Context, userID, collectionID uuid.UUID) error
}

// collectionService implements CollectionService.
type collectionService struct {
	db              *sql.DB
	collectionStore store.CollectionStore
	cardStore       store.FlashcardStore
	logger          *slog.Logger
	runTx           txRunner
}

var _ CollectionService = (*collectionService)(nil)

// NewCollectionService creates a new CollectionService.
func NewCollectionService(
	db *sql.DB,
	collectionStore store.CollectionStore,
	cardStore store.FlashcardStore,
	log *slog.Logger,
) CollectionService {
	if log == nil {
		log = slog.Default()
	}

	return &collectionService{
		db:              db,
		collectionStore: collectionStore,
		cardStore:       cardStore,
		logger:          log.With(slog.String("component", "collection_service")),
		runTx:           store.RunInTransaction,
	}
}

// Create implements CollectionService.
func (s *collectionService) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, topic string,
	cardIDs []uuid.UUID,
) (*domain.Collection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	collection, err := domain.NewCollection(userID, name, topic)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		collections := s.collectionStore.WithTx(tx)
		cards := s.cardStore.WithTx(tx)

		if err := collections.Create(ctx, collection); err != nil {
			return err
		}

		for _, cardID := range cardIDs {
			if err := cards.SetCollection(ctx, userID, cardID, &collection.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("collection created",
		slog.String("collection_id", collection.ID.String()),
		slog.Int("card_count", len(cardIDs)))
	return collection, nil
}

// List implements CollectionService.
func (s *collectionService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Collection, error) {
	return s.collectionStore.ListByUser(ctx, userID)
}

// Get implements CollectionService.
func (s *collectionService) Get(
	ctx context.Context,
	userID, collectionID uuid.UUID,
) (*CollectionDetail, error) {
	collection, err := s.collectionStore.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardStore.ListByCollection(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	return &CollectionDetail{
		Collection: collection,
		Flashcards: cards,
	}, nil
}

// Delete implements CollectionService.
func (s *collectionService) Delete(ctx context.Context, userID, collectionID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.collectionStore.Delete(ctx, userID, collectionID); err != nil {
		return err
	}

	log.Info("collection deleted",
		slog.String("collection_id", collectionID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
