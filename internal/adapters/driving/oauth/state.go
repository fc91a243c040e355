package oauth

import (
	"crypto/rand"
	"encoding/base64"
)

// stateLength is the number of random bytes behind the state parameter.
const stateLength = 32

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
