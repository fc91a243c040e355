package driving

import (
	"context"
	"net/http"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// AuthService obtains and manages Google credentials.
type AuthService interface {
	// HTTPClient returns a client authorized for scopes. mode restricts
	// which kind of credentials.json is acceptable.
	HTTPClient(ctx context.Context, scopes []string, mode domain.AuthMode) (*http.Client, error)

	// Login runs the browser flow for scopes even if a usable token exists.
	Login(ctx context.Context, scopes []string) (*domain.StoredToken, error)

	// Status describes the configured credentials and stored token.
	// With verify set, the access token is checked against Google.
	Status(ctx context.Context, verify bool) (*domain.AuthStatus, error)

	// Revoke invalidates the stored token at Google and deletes it.
	Revoke(ctx context.Context) error
}
