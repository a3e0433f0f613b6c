package service

import (
	"context"
	"testing"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	chats *fakeChatStore
	msgs  *fakeMessageStore
	cards *fakeFlashcardStore
	svc   ChatService
}

func newChatFixture() *chatFixture {
	chats := newFakeChatStore()
	msgs := newFakeMessageStore()
	cards := newFakeFlashcardStore()
	return &chatFixture{
		chats: chats,
		msgs:  msgs,
		cards: cards,
		svc:   NewChatService(chats, msgs, cards, nil),
	}
}

func (f *chatFixture) seedChat(t *testing.T, userID uuid.UUID, title string) *domain.Chat {
	t.Helper()
	chat, err := domain.NewChat(userID, title)
	require.NoError(t, err)
	require.NoError(t, f.chats.Create(context.Background(), chat))
	return chat
}

func TestChatServiceGetReturnsFullDetail(t *testing.T) {
	f := newChatFixture()
	userID := uuid.New()
	chat := f.seedChat(t, userID, "Go basics")

	msg, err := domain.NewChatMessage(chat.ID, userID, domain.MessageRoleUser, "What is Go?")
	require.NoError(t, err)
	require.NoError(t, f.msgs.Create(context.Background(), msg))

	card, err := domain.NewFlashcard(userID, "What is Go?", "A language.")
	require.NoError(t, err)
	card.AttachToChat(chat.ID)
	require.NoError(t, f.cards.Create(context.Background(), card))

	detail, err := f.svc.Get(context.Background(), userID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, detail.Chat.ID)
	require.Len(t, detail.Messages, 1)
	require.Len(t, detail.Flashcards, 1)
	assert.Equal(t, card.ID, detail.Flashcards[0].ID)
}

func TestChatServiceGetRejectsForeignChat(t *testing.T) {
	f := newChatFixture()
	owner := uuid.New()
	chat := f.seedChat(t, owner, "private")

	_, err := f.svc.Get(context.Background(), uuid.New(), chat.ID)
	assert.ErrorIs(t, err, store.ErrChatNotFound)
}

func TestChatServiceRename(t *testing.T) {
	f := newChatFixture()
	userID := uuid.New()
	chat := f.seedChat(t, userID, "old title")

	renamed, err := f.svc.Rename(context.Background(), userID, chat.ID, "new title")
	require.NoError(t, err)
	assert.Equal(t, "new title", renamed.Title)

	stored, err := f.chats.GetByID(context.Background(), userID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", stored.Title)
}

func TestChatServiceRenameRejectsEmptyTitle(t *testing.T) {
	f := newChatFixture()
	userID := uuid.New()
	chat := f.seedChat(t, userID, "title")

	_, err := f.svc.Rename(context.Background(), userID, chat.ID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyChatTitle)
}

func TestChatServiceDelete(t *testing.T) {
	f := newChatFixture()
	userID := uuid.New()
	chat := f.seedChat(t, userID, "doomed")

	require.NoError(t, f.svc.Delete(context.Background(), userID, chat.ID))

	_, err := f.chats.GetByID(context.Background(), userID, chat.ID)
	assert.ErrorIs(t, err, store.ErrChatNotFound)

	err = f.svc.Delete(context.Background(), userID, chat.ID)
	assert.ErrorIs(t, err, store.ErrChatNotFound)
}

func TestFlashcardServiceMoveToCollection(t *testing.T) {
	cards := newFakeFlashcardStore()
	collections := newFakeCollectionStore()
	svc := NewFlashcardService(cards, collections, nil)
	userID := uuid.New()

	card, err := domain.NewFlashcard(userID, "Q?", "A.")
	require.NoError(t, err)
	require.NoError(t, cards.Create(context.Background(), card))

	collection, err := domain.NewCollection(userID, "Saved", "go")
	require.NoError(t, err)
	require.NoError(t, collections.Create(context.Background(), collection))

	require.NoError(t, svc.MoveToCollection(context.Background(), userID, card.ID, &collection.ID))

	stored, err := cards.GetByID(context.Background(), userID, card.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CollectionID)
	assert.Equal(t, collection.ID, *stored.CollectionID)

	// Detach.
	require.NoError(t, svc.MoveToCollection(context.Background(), userID, card.ID, nil))
	stored, err = cards.GetByID(context.Background(), userID, card.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CollectionID)
}

func TestFlashcardServiceMoveToUnknownCollection(t *testing.T) {
	cards := newFakeFlashcardStore()
	collections := newFakeCollectionStore()
	svc := NewFlashcardService(cards, collections, nil)
	userID := uuid.New()

	card, err := domain.NewFlashcard(userID, "Q?", "A.")
	require.NoError(t, err)
	require.NoError(t, cards.Create(context.Background(), card))

	missing := uuid.New()
	err = svc.MoveToCollection(context.Background(), userID, card.ID, &missing)
	assert.ErrorIs(t, err, store.ErrCollectionNotFound)

	// The card must be untouched.
	stored, err := cards.GetByID(context.Background(), userID, card.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CollectionID)
}

func TestFlashcardServiceDelete(t *testing.T) {
	cards := newFakeFlashcardStore()
	svc := NewFlashcardService(cards, newFakeCollectionStore(), nil)
	userID := uuid.New()

	card, err := domain.NewFlashcard(userID, "Q?", "A.")
	require.NoError(t, err)
	require.NoError(t, cards.Create(context.Background(), card))

	require.NoError(t, svc.Delete(context.Background(), userID, card.ID))
	_, err = cards.GetByID(context.Background(), userID, card.ID)
	assert.ErrorIs(t, err, store.ErrFlashcardNotFound)
}
