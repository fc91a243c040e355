package driven

import (
	"context"

	"golang.org/x/oauth2"
)

// AuthorizationRequest describes one authorization-code grant.
type AuthorizationRequest struct {
	ClientID     string
	ClientSecret string
	// RedirectURI is the loopback URI registered for the client.
	// When it carries no port, the authorizer picks one.
	RedirectURI string
	Scopes      []string
	// Endpoint defaults to Google's when zero.
	Endpoint oauth2.Endpoint
}

// Authorizer obtains a fresh user token through an interactive flow.
type Authorizer interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (*oauth2.Token, error)
}
