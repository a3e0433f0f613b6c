package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardforge/cardforge-api/internal/api/shared"
	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// authedRequest builds a request carrying an authenticated user ID, as
// the auth middleware would have left it.
func authedRequest(t *testing.T, method, path string, payload interface{}, userID uuid.UUID) *http.Request {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// fakeGenerationService records the last params and returns a scripted result.
type fakeGenerationService struct {
	result    *service.GenerateResult
	err       error
	gotParams service.GenerateParams
	calls     int
}

func (f *fakeGenerationService) Generate(
	_ context.Context,
	_ uuid.UUID,
	params service.GenerateParams,
) (*service.GenerateResult, error) {
	f.calls++
	f.gotParams = params
	return f.result, f.err
}

// fakeChatService returns scripted values for each ChatService method.
type fakeChatService struct {
	chats  []*domain.Chat
	detail *service.ChatDetail
	chat   *domain.Chat
	err    error
}

func (f *fakeChatService) List(_ context.Context, _ uuid.UUID) ([]*domain.Chat, error) {
	return f.chats, f.err
}

func (f *fakeChatService) Get(_ context.Context, _, _ uuid.UUID) (*service.ChatDetail, error) {
	return f.detail, f.err
}

func (f *fakeChatService) Rename(_ context.Context, _, _ uuid.UUID, _ string) (*domain.Chat, error) {
	return f.chat, f.err
}

func (f *fakeChatService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return f.err
}

// fakeCollectionService returns scripted values for CollectionService.
type fakeCollectionService struct {
	collection  *domain.Collection
	collections []*domain.Collection
	detail      *service.CollectionDetail
	err         error
}

func (f *fakeCollectionService) Create(
	_ context.Context,
	_ uuid.UUID,
	_, _ string,
	_ []uuid.UUID,
) (*domain.Collection, error) {
	return f.collection, f.err
}

func (f *fakeCollectionService) List(_ context.Context, _ uuid.UUID) ([]*domain.Collection, error) {
	return f.collections, f.err
}

func (f *fakeCollectionService) Get(_ context.Context, _, _ uuid.UUID) (*service.CollectionDetail, error) {
	return f.detail, f.err
}

func (f *fakeCollectionService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return f.err
}

// fakeFlashcardService returns scripted values for FlashcardService.
type fakeFlashcardService struct {
	cards []*domain.Flashcard
	card  *domain.Flashcard
	err   error

	movedTo *uuid.UUID
	moved   bool
}

func (f *fakeFlashcardService) List(_ context.Context, _ uuid.UUID) ([]*domain.Flashcard, error) {
	return f.cards, f.err
}

func (f *fakeFlashcardService) Get(_ context.Context, _, _ uuid.UUID) (*domain.Flashcard, error) {
	return f.card, f.err
}

func (f *fakeFlashcardService) MoveToCollection(
	_ context.Context,
	_, _ uuid.UUID,
	collectionID *uuid.UUID,
) error {
	f.moved = true
	f.movedTo = collectionID
	return f.err
}

func (f *fakeFlashcardService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return f.err
}
