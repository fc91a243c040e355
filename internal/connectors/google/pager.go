package google

import (
	"context"
	"errors"
)

// ErrStopPaging may be returned by a page callback to end pagination early
// without reporting an error.
var ErrStopPaging = errors.New("google: stop paging")

// Paginate calls fetch with successive page tokens, starting from "",
// until fetch returns an empty next token. Pages are fetched one at a
// time and each request first waits on limiter.
func Paginate(ctx context.Context, limiter *RateLimiter, fetch func(pageToken string) (next string, err error)) error {
	pageToken := ""
	for {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		next, err := fetch(pageToken)
		if errors.Is(err, ErrStopPaging) {
			return nil
		}
		if err != nil {
			return WrapError(err)
		}
		if next == "" {
			return nil
		}
		pageToken = next
	}
}
