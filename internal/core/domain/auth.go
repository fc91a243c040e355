package domain

import (
	"slices"
	"time"
)

// OAuthToken represents stored OAuth credentials.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the token has expired.
func (t *OAuthToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// Valid returns true if the token carries an access token that has not expired.
func (t *OAuthToken) Valid() bool {
	return t != nil && t.AccessToken != "" && !t.IsExpired()
}

// CanRefresh returns true if a refresh token is available.
func (t *OAuthToken) CanRefresh() bool {
	return t.RefreshToken != ""
}

// StoredToken is the content of token.json: a user token together with
// the OAuth client and scopes it was granted for.
type StoredToken struct {
	ClientID  string     `json:"client_id"`
	Scopes    []string   `json:"scopes"`
	Token     OAuthToken `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Satisfies reports whether the stored token was issued to clientID,
// covers every requested scope and is usable: either refreshable or
// holding an unexpired access token.
func (s *StoredToken) Satisfies(clientID string, scopes []string) bool {
	if s == nil || s.ClientID != clientID {
		return false
	}
	if !s.Token.CanRefresh() && (s.Token.AccessToken == "" || s.Token.IsExpired()) {
		return false
	}
	for _, scope := range scopes {
		if !slices.Contains(s.Scopes, scope) {
			return false
		}
	}
	return true
}

// MergeScopes returns the sorted union of two scope lists without duplicates.
func MergeScopes(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}

// AuthStatus describes the configured credentials and stored token.
type AuthStatus struct {
	CredentialsPath string          `json:"credentials_path"`
	Kind            CredentialsKind `json:"kind,omitempty"`
	ClientID        string          `json:"client_id,omitempty"`
	Subject         string          `json:"subject,omitempty"`
	TokenPath       string          `json:"token_path,omitempty"`
	HasToken        bool            `json:"has_token"`
	Scopes          []string        `json:"scopes,omitempty"`
	Expiry          time.Time       `json:"expiry,omitempty"`
	Expired         bool            `json:"expired"`
	CanRefresh      bool            `json:"can_refresh"`
	// Email and LiveScopes are filled when the token was verified with Google.
	Email      string   `json:"email,omitempty"`
	LiveScopes []string `json:"live_scopes,omitempty"`
}
