package mocks

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/cardforge/cardforge-api/internal/domain"
	"github.com/cardforge/cardforge-api/internal/store"
	"github.com/google/uuid"
)

// MockUserStore is an in-memory implementation of store.UserStore.
// Passwords are "hashed" by prefixing, so tests can assert the plaintext
// never leaks without pulling in bcrypt.
type MockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// CreateErr, when set, is returned by Create regardless of input.
	CreateErr error
}

// Ensure MockUserStore implements store.UserStore.
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

// mockHash marks a password as hashed by the mock.
const mockHash = "mockhash:"

// HashFor returns the mock hash for a plaintext password.
func HashFor(password string) string {
	return mockHash + password
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(_ context.Context, user *domain.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}

	cp := *user
	cp.HashedPassword = HashFor(user.Password)
	cp.Password = ""
	m.users[user.ID] = &cp

	user.HashedPassword = cp.HashedPassword
	user.Password = ""
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements store.UserStore.
func (m *MockUserStore) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}

	for id, other := range m.users {
		if id != user.ID && strings.EqualFold(other.Email, user.Email) {
			return store.ErrEmailExists
		}
	}

	cp := *user
	if user.Password != "" {
		cp.HashedPassword = HashFor(user.Password)
		cp.Password = ""
	} else {
		cp.HashedPassword = existing.HashedPassword
	}
	m.users[user.ID] = &cp
	return nil
}

// Delete implements store.UserStore.
func (m *MockUserStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// WithTx implements store.UserStore. The mock has no transactions, so it
// returns itself.
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}
