package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore persists a domain.StoredToken as JSON with owner-only permissions.
// Writes go through a temporary file so a crash never leaves a truncated token.
type TokenStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewTokenStore creates a token store at path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path, now: time.Now}
}

// Load reads the token file.
func (s *TokenStore) Load(_ context.Context) (*domain.StoredToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read token: %w", err)
	}

	var tok domain.StoredToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token %s: %w", s.path, err)
	}
	if tok.Token.AccessToken == "" && tok.Token.RefreshToken == "" {
		return nil, fmt.Errorf("parse token %s: %w", s.path, domain.ErrNotFound)
	}
	return &tok, nil
}

// Save writes the token file, keeping the original creation time.
func (s *TokenStore) Save(_ context.Context, token domain.StoredToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	token.UpdatedAt = now

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write token: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("write token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Delete removes the token file.
func (s *TokenStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Path returns the token file path.
func (s *TokenStore) Path() string {
	return s.path
}
