package driven

import (
	"context"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// TokenStore persists the user's OAuth token (token.json).
type TokenStore interface {
	// Load returns the stored token or domain.ErrNotFound.
	Load(ctx context.Context) (*domain.StoredToken, error)

	// Save replaces the stored token.
	Save(ctx context.Context, token domain.StoredToken) error

	// Delete removes the stored token. Deleting a missing token is not an error.
	Delete(ctx context.Context) error

	// Path returns where the token is stored.
	Path() string
}
