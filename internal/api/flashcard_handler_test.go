package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashcardRouter(handler *FlashcardHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/flashcards", handler.ListFlashcards)
	r.Get("/flashcards/{id}", handler.GetFlashcard)
	r.Patch("/flashcards/{id}", handler.MoveFlashcard)
	r.Delete("/flashcards/{id}", handler.DeleteFlashcard)
	return r
}

func TestListFlashcards(t *testing.T) {
	userID := uuid.New()
	card, err := domain.NewFlashcard(userID, "Q?", "A.")
	require.NoError(t, err)

	handler := NewFlashcardHandler(&fakeFlashcardService{cards: []*domain.Flashcard{card}}, nil)

	r := authedRequest(t, http.MethodGet, "/flashcards", nil, userID)
	w := httptest.NewRecorder()
	flashcardRouter(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []FlashcardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, card.ID, resp[0].ID)
}

func TestMoveFlashcardToCollection(t *testing.T) {
	userID := uuid.New()
	card, err := domain.NewFlashcard(userID, "Q?", "A.")
	require.NoError(t, err)
	collectionID := uuid.New()
	card.AttachToCollection(collectionID)

	svc := &fakeFlashcardService{card: card}
	handler := NewFlashcardHandler(svc, nil)

	r := authedRequest(t, http.MethodPatch, "/flashcards/"+card.ID.String(),
		MoveFlashcardRequest{CollectionID: &collectionID}, userID)
	w := httptest.NewRecorder()
	flashcardRouter(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.moved)
	require.NotNil(t, svc.movedTo)
	assert.Equal(t, collectionID, *svc.movedTo)
}

func TestMoveFlashcardDetach(t *testing.T) {
	userID := uuid.New()
	card, err := domain.NewFlashcard(userID, "Q?", "A.")
	require.NoError(t, err)

	svc := &fakeFlashcardService{card: card}
	handler := NewFlashcardHandler(svc, nil)

	r := authedRequest(t, http.MethodPatch, "/flashcards/"+card.ID.String(),
		MoveFlashcardRequest{CollectionID: nil}, userID)
	w := httptest.NewRecorder()
	flashcardRouter(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.moved)
	assert.Nil(t, svc.movedTo)
}

func TestDeleteFlashcardNotFound(t *testing.T) {
	handler := NewFlashcardHandler(&fakeFlashcardService{err: store.ErrFlashcardNotFound}, nil)

	r := authedRequest(t, http.MethodDelete, "/flashcards/"+uuid.NewString(), nil, uuid.New())
	w := httptest.NewRecorder()
	flashcardRouter(handler).ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
