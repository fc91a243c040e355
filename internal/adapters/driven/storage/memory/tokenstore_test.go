package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func TestTokenStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	tok := domain.StoredToken{
		ClientID: "client",
		Scopes:   []string{"a"},
		Token:    domain.OAuthToken{AccessToken: "at", Expiry: time.Now().Add(time.Hour)},
	}
	require.NoError(t, store.Save(ctx, tok))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at", loaded.Token.AccessToken)

	// returned copies do not alias the stored scopes
	loaded.Scopes[0] = "changed"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Scopes)
	assert.Equal(t, 1, store.Saves())

	require.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
