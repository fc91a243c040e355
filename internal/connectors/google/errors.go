package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")

	// ErrGone indicates a page or sync token is no longer valid (410 GONE).
	ErrGone = errors.New("google: resource gone")
)

// StatusCode returns the HTTP status of a Google API error, or 0.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || StatusCode(err) == http.StatusForbidden
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || StatusCode(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || StatusCode(err) == http.StatusTooManyRequests
}

// IsGone returns true if the error indicates an expired token or resource (410 GONE).
func IsGone(err error) bool {
	return errors.Is(err, ErrGone) || StatusCode(err) == http.StatusGone
}

// WrapError classifies a Google API error. The original error stays
// reachable through errors.As so its message and details are not lost.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	var kind error
	switch gerr.Code {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusTooManyRequests:
		kind = ErrRateLimited
	case http.StatusGone:
		kind = ErrGone
	default:
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Hint returns a short suggestion for a classified error, or "".
func Hint(err error) string {
	switch {
	case IsUnauthorized(err):
		return "the stored token was rejected; run `wsamples auth login` again"
	case IsForbidden(err):
		return "the credentials lack a required scope or API access; check the API is enabled for the project"
	case IsNotFound(err):
		return "check the resource ID and that the authenticated account can see it"
	case IsRateLimited(err):
		return "quota exceeded; wait before running the sample again"
	default:
		return ""
	}
}
