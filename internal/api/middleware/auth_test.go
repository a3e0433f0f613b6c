package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardforge/cardforge-api/internal/service/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubJWTService returns fixed claims or a fixed error.
type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "token", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return s.claims, s.err
}

func (s *stubJWTService) GenerateRefreshToken(_ context.Context, _ uuid.UUID) (string, error) {
	return "refresh", nil
}

func (s *stubJWTService) ValidateRefreshToken(_ context.Context, _ string) (*auth.Claims, error) {
	return s.claims, s.err
}

func runAuth(t *testing.T, svc auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var gotUserID uuid.UUID
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, called = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()

	NewAuthMiddleware(svc).Authenticate(next).ServeHTTP(w, r)
	return w, gotUserID, called
}

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	svc := &stubJWTService{claims: &auth.Claims{UserID: userID, TokenType: "access"}}

	w, gotUserID, called := runAuth(t, svc, "Bearer good-token")

	require.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	w, _, called := runAuth(t, &stubJWTService{}, "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthenticateBadFormat(t *testing.T) {
	w, _, called := runAuth(t, &stubJWTService{}, "Basic dXNlcjpwYXNz")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	w, _, called := runAuth(t, &stubJWTService{err: auth.ErrExpiredToken}, "Bearer stale")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	w, _, called := runAuth(t, &stubJWTService{err: auth.ErrInvalidToken}, "Bearer junk")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthenticateRefreshTokenRejected(t *testing.T) {
	w, _, called := runAuth(t, &stubJWTService{err: auth.ErrWrongTokenType}, "Bearer refresh-token")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
