package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// passthroughTx is a txRunner that executes fn without a database. The
// fake stores ignore the nil transaction.
func passthroughTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// scriptedGateway returns canned replies in order, recording requests.
type scriptedGateway struct {
	replies  []llm.Reply
	errs     []error
	requests []llm.Request
}

func (g *scriptedGateway) Complete(_ context.Context, req llm.Request) (llm.Reply, error) {
	i := len(g.requests)
	g.requests = append(g.requests, req)
	if i < len(g.errs) && g.errs[i] != nil {
		return llm.Reply{}, g.errs[i]
	}
	if i < len(g.replies) {
		return g.replies[i], nil
	}
	return llm.NewTextReply(""), nil
}

// fakeChatStore is an in-memory ChatStore.
type fakeChatStore struct {
	chats     map[uuid.UUID]*domain.Chat
	createErr error
	touchErr  error
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: make(map[uuid.UUID]*domain.Chat)}
}

func (s *fakeChatStore) Create(_ context.Context, chat *domain.Chat) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *chat
	s.chats[chat.ID] = &cp
	return nil
}

func (s *fakeChatStore) GetByID(_ context.Context, userID, chatID uuid.UUID) (*domain.Chat, error) {
	chat, ok := s.chats[chatID]
	if !ok || chat.UserID != userID {
		return nil, store.ErrChatNotFound
	}
	cp := *chat
	return &cp, nil
}

func (s *fakeChatStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Chat, error) {
	var out []*domain.Chat
	for _, chat := range s.chats {
		if chat.UserID == userID {
			cp := *chat
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *fakeChatStore) UpdateTitle(_ context.Context, userID, chatID uuid.UUID, title string) error {
	chat, ok := s.chats[chatID]
	if !ok || chat.UserID != userID {
		return store.ErrChatNotFound
	}
	chat.Title = title
	return nil
}

func (s *fakeChatStore) Touch(_ context.Context, userID, chatID uuid.UUID) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	chat, ok := s.chats[chatID]
	if !ok || chat.UserID != userID {
		return store.ErrChatNotFound
	}
	return nil
}

func (s *fakeChatStore) Delete(_ context.Context, userID, chatID uuid.UUID) error {
	chat, ok := s.chats[chatID]
	if !ok || chat.UserID != userID {
		return store.ErrChatNotFound
	}
	delete(s.chats, chatID)
	return nil
}

func (s *fakeChatStore) WithTx(_ *sql.Tx) store.ChatStore { return s }

// fakeMessageStore is an in-memory MessageStore.
type fakeMessageStore struct {
	messages  []*domain.ChatMessage
	createErr error
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{}
}

func (s *fakeMessageStore) Create(_ context.Context, message *domain.ChatMessage) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *message
	s.messages = append(s.messages, &cp)
	return nil
}

func (s *fakeMessageStore) ListByChat(
	_ context.Context,
	userID, chatID uuid.UUID,
) ([]*domain.ChatMessage, error) {
	var out []*domain.ChatMessage
	for _, m := range s.messages {
		if m.ChatID == chatID && m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) WithTx(_ *sql.Tx) store.MessageStore { return s }

// fakeFlashcardStore is an in-memory FlashcardStore.
type fakeFlashcardStore struct {
	cards     map[uuid.UUID]*domain.Flashcard
	order     []uuid.UUID
	createErr error
}

func newFakeFlashcardStore() *fakeFlashcardStore {
	return &fakeFlashcardStore{cards: make(map[uuid.UUID]*domain.Flashcard)}
}

func (s *fakeFlashcardStore) Create(_ context.Context, card *domain.Flashcard) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *card
	s.cards[card.ID] = &cp
	s.order = append(s.order, card.ID)
	return nil
}

func (s *fakeFlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	for _, card := range cards {
		if err := s.Create(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeFlashcardStore) GetByID(
	_ context.Context,
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return nil, store.ErrFlashcardNotFound
	}
	cp := *card
	return &cp, nil
}

func (s *fakeFlashcardStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Flashcard, error) {
	var out []*domain.Flashcard
	for i := len(s.order) - 1; i >= 0; i-- {
		card := s.cards[s.order[i]]
		if card != nil && card.UserID == userID {
			cp := *card
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeFlashcardStore) ListByChat(
	_ context.Context,
	userID, chatID uuid.UUID,
) ([]*domain.Flashcard, error) {
	var out []*domain.Flashcard
	for _, id := range s.order {
		card := s.cards[id]
		if card != nil && card.UserID == userID && card.ChatID != nil && *card.ChatID == chatID {
			cp := *card
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeFlashcardStore) ListByCollection(
	_ context.Context,
	userID, collectionID uuid.UUID,
) ([]*domain.Flashcard, error) {
	var out []*domain.Flashcard
	for _, id := range s.order {
		card := s.cards[id]
		if card != nil && card.UserID == userID && card.CollectionID != nil &&
			*card.CollectionID == collectionID {
			cp := *card
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeFlashcardStore) SetCollection(
	_ context.Context,
	userID, cardID uuid.UUID,
	collectionID *uuid.UUID,
) error {
	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return store.ErrFlashcardNotFound
	}
	card.CollectionID = collectionID
	return nil
}

func (s *fakeFlashcardStore) Delete(_ context.Context, userID, cardID uuid.UUID) error {
	card, ok := s.cards[cardID]
	if !ok || card.UserID != userID {
		return store.ErrFlashcardNotFound
	}
	delete(s.cards, cardID)
	return nil
}

func (s *fakeFlashcardStore) WithTx(_ *sql.Tx) store.FlashcardStore { return s }

// fakeCollectionStore is an in-memory CollectionStore.
type fakeCollectionStore struct {
	collections map[uuid.UUID]*domain.Collection
	createErr   error
}

func newFakeCollectionStore() *fakeCollectionStore {
	return &fakeCollectionStore{collections: make(map[uuid.UUID]*domain.Collection)}
}

func (s *fakeCollectionStore) Create(_ context.Context, collection *domain.Collection) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *collection
	s.collections[collection.ID] = &cp
	return nil
}

func (s *fakeCollectionStore) GetByID(
	_ context.Context,
	userID, collectionID uuid.UUID,
) (*domain.Collection, error) {
	collection, ok := s.collections[collectionID]
	if !ok || collection.UserID != userID {
		return nil, store.ErrCollectionNotFound
	}
	cp := *collection
	return &cp, nil
}

func (s *fakeCollectionStore) ListByUser(
	_ context.Context,
	userID uuid.UUID,
) ([]*domain.Collection, error) {
	var out []*domain.Collection
	for _, collection := range s.collections {
		if collection.UserID == userID {
			cp := *collection
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *fakeCollectionStore) Delete(_ context.Context, userID, collectionID uuid.UUID) error {
	collection, ok := s.collections[collectionID]
	if !ok || collection.UserID != userID {
		return store.ErrCollectionNotFound
	}
	delete(s.collections, collectionID)
	return nil
}

func (s *fakeCollectionStore) WithTx(_ *sql.Tx) store.CollectionStore { return s }
