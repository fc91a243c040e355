// Package oauth talks to the provider's token revocation endpoint.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
)

// GoogleRevokeURL is Google's token revocation endpoint.
const GoogleRevokeURL = "https://oauth2.googleapis.com/revoke"

// Ensure Revoker implements the interface.
var _ driven.TokenRevoker = (*Revoker)(nil)

// Revoker revokes access or refresh tokens.
type Revoker struct {
	url    string
	client *http.Client
}

// NewRevoker creates a revoker for revokeURL. An empty URL means Google's endpoint.
func NewRevoker(revokeURL string, client *http.Client) *Revoker {
	if revokeURL == "" {
		revokeURL = GoogleRevokeURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Revoker{url: revokeURL, client: client}
}

// Revoke invalidates token. Revoking a refresh token also invalidates
// the access tokens issued from it.
func (r *Revoker) Revoke(ctx context.Context, token string) error {
	data := url.Values{}
	data.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("revoke error: %s - %s", errResp.Error, errResp.Description)
		}
		return fmt.Errorf("revoke request failed with status %d", resp.StatusCode)
	}
	return nil
}
