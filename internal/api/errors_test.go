package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/cardforge/cardforge-api/internal/llm"
	"github.com/cardforge/cardforge-api/internal/service"
	"github.com/cardforge/cardforge-api/internal/service/auth"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"chat not found", store.ErrChatNotFound, http.StatusNotFound},
		{"collection not found", store.ErrCollectionNotFound, http.StatusNotFound},
		{"flashcard not found", store.ErrFlashcardNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"bad card count", service.ErrInvalidCardCount, http.StatusBadRequest},
		{"empty question", service.ErrEmptyQuestion, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"nil-ish wrapped", fmt.Errorf("wrapped: %w", store.ErrChatNotFound), http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapGatewayErrors(t *testing.T) {
	rateLimited := llm.NewGatewayError(llm.RateLimitedError, "openai", "throttled", nil)
	assert.Equal(t, http.StatusTooManyRequests, MapErrorToStatusCode(rateLimited))

	timeout := llm.NewGatewayError(llm.TimeoutError, "openai", "slow", nil)
	assert.Equal(t, http.StatusGatewayTimeout, MapErrorToStatusCode(timeout))

	authFailure := llm.NewGatewayError(llm.AuthFailureError, "openai", "bad key", nil)
	assert.Equal(t, http.StatusBadGateway, MapErrorToStatusCode(authFailure))

	// Gateway errors wrapped by the service layer keep their mapping.
	wrapped := service.NewGenerationServiceError("answer", "failed", timeout)
	assert.Equal(t, http.StatusGatewayTimeout, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessageNeverLeaksDetails(t *testing.T) {
	internal := errors.New("pq: duplicate key value violates unique constraint users_email_key")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)

	gwErr := llm.NewGatewayError(llm.AuthFailureError, "openai", "invalid api key sk-abc123", nil)
	msg = GetSafeErrorMessage(gwErr)
	assert.NotContains(t, msg, "sk-abc123")
}

func TestGetSafeErrorMessageKnownErrors(t *testing.T) {
	assert.Equal(t, "Chat not found", GetSafeErrorMessage(store.ErrChatNotFound))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "Invalid token", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
