package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusGone, ErrGone},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			original := &googleapi.Error{Code: tt.code, Message: "boom"}
			err := WrapError(fmt.Errorf("call: %w", original))

			assert.ErrorIs(t, err, tt.want)
			var gerr *googleapi.Error
			assert.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.code, StatusCode(err))
		})
	}
}

func TestWrapError_Passthrough(t *testing.T) {
	assert.NoError(t, WrapError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, WrapError(plain))

	server := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, error(server), WrapError(server))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsUnauthorized(&googleapi.Error{Code: 401}))
	assert.True(t, IsForbidden(&googleapi.Error{Code: 403}))
	assert.True(t, IsNotFound(&googleapi.Error{Code: 404}))
	assert.True(t, IsGone(&googleapi.Error{Code: 410}))
	assert.True(t, IsRateLimited(&googleapi.Error{Code: 429}))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(errors.New("x")))
	assert.Zero(t, StatusCode(errors.New("x")))
}

func TestHint(t *testing.T) {
	assert.Contains(t, Hint(&googleapi.Error{Code: 401}), "auth login")
	assert.Contains(t, Hint(&googleapi.Error{Code: 403}), "scope")
	assert.Empty(t, Hint(errors.New("x")))
}
