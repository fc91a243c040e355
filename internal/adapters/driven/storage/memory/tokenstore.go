package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore is an in-memory implementation of driven.TokenStore.
type TokenStore struct {
	mu    sync.RWMutex
	token *domain.StoredToken
	saves int
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Load returns the stored token.
func (s *TokenStore) Load(_ context.Context) (*domain.StoredToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, domain.ErrNotFound
	}
	tok := *s.token
	tok.Scopes = append([]string(nil), s.token.Scopes...)
	return &tok, nil
}

// Save replaces the stored token.
func (s *TokenStore) Save(_ context.Context, token domain.StoredToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.Scopes = append([]string(nil), token.Scopes...)
	s.token = &token
	s.saves++
	return nil
}

// Delete removes the stored token.
func (s *TokenStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}

// Saves returns how many times Save was called.
func (s *TokenStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Path returns the storage location.
func (s *TokenStore) Path() string {
	return ":memory:"
}
