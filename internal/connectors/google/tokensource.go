package google

import (
	"sync"

	"golang.org/x/oauth2"
)

// SaveFunc persists a token.
type SaveFunc func(*oauth2.Token) error

// persistingTokenSource writes a token back whenever the wrapped source
// hands out a new access token, so refreshes survive the process.
type persistingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	last   string
	save   SaveFunc
	onFail func(error)
}

// NewPersistingTokenSource wraps base. current is the token base started
// from; save is called for every token whose access token differs from
// the last one seen. Save failures are passed to onFail and never fail
// the request.
func NewPersistingTokenSource(base oauth2.TokenSource, current *oauth2.Token, save SaveFunc, onFail func(error)) oauth2.TokenSource {
	ts := &persistingTokenSource{base: base, save: save, onFail: onFail}
	if current != nil {
		ts.last = current.AccessToken
	}
	return ts
}

// Token implements oauth2.TokenSource.
func (t *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := t.base.Token()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if tok.AccessToken != t.last {
		t.last = tok.AccessToken
		if err := t.save(tok); err != nil && t.onFail != nil {
			t.onFail(err)
		}
	}
	return tok, nil
}
