package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardforge/cardforge-api/internal/mocks"
	"github.com/cardforge/cardforge-api/internal/service/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthHandler, *mocks.MockUserStore, *mocks.MockJWTService) {
	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{}
	verifier := &mocks.MockPasswordVerifier{
		CompareFn: func(hashedPassword, password string) error {
			if hashedPassword != mocks.HashFor(password) {
				return errors.New("password mismatch")
			}
			return nil
		},
	}
	return NewAuthHandler(userStore, jwtService, verifier, nil), userStore, jwtService
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestRegisterSuccess(t *testing.T) {
	handler, userStore, _ := newAuthFixture()

	w := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "new@example.com",
		Password: "correct horse battery",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotContains(t, w.Body.String(), "correct horse battery")

	stored, err := userStore.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Email)
	assert.Empty(t, stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler, _, _ := newAuthFixture()

	first := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "dup@example.com",
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "dup@example.com",
		Password: "another password!!",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Email already exists")
}

func TestRegisterValidation(t *testing.T) {
	handler, _, _ := newAuthFixture()

	tests := []struct {
		name    string
		payload RegisterRequest
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "correct horse battery"}},
		{"short password", RegisterRequest{Email: "a@example.com", Password: "short"}},
		{"missing password", RegisterRequest{Email: "a@example.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, handler.Register, "/auth/register", tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	handler, _, _ := newAuthFixture()

	postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "user@example.com",
		Password: "correct horse battery",
	})

	w := postJSON(t, handler.Login, "/auth/login", LoginRequest{
		Email:    "user@example.com",
		Password: "correct horse battery",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLoginUnknownEmail(t *testing.T) {
	handler, _, _ := newAuthFixture()

	w := postJSON(t, handler.Login, "/auth/login", LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginWrongPassword(t *testing.T) {
	handler, _, _ := newAuthFixture()

	postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "user@example.com",
		Password: "correct horse battery",
	})

	w := postJSON(t, handler.Login, "/auth/login", LoginRequest{
		Email:    "user@example.com",
		Password: "wrong password here",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestRefreshTokenSuccess(t *testing.T) {
	handler, _, jwtService := newAuthFixture()
	userID := uuid.New()

	jwtService.ValidateRefreshTokenFn = func(_ context.Context, token string) (*auth.Claims, error) {
		require.Equal(t, "valid-refresh", token)
		return &auth.Claims{UserID: userID, TokenType: "refresh"}, nil
	}

	w := postJSON(t, handler.RefreshToken, "/auth/refresh", RefreshTokenRequest{
		RefreshToken: "valid-refresh",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp RefreshTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefreshTokenInvalid(t *testing.T) {
	handler, _, jwtService := newAuthFixture()

	jwtService.ValidateRefreshTokenFn = func(_ context.Context, _ string) (*auth.Claims, error) {
		return nil, auth.ErrExpiredRefreshToken
	}

	w := postJSON(t, handler.RefreshToken, "/auth/refresh", RefreshTokenRequest{
		RefreshToken: "stale",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token")
}

func TestRefreshTokenMissingField(t *testing.T) {
	handler, _, _ := newAuthFixture()

	w := postJSON(t, handler.RefreshToken, "/auth/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
