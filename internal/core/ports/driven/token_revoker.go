package driven

import "context"

// TokenRevoker invalidates a token at the provider.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}
