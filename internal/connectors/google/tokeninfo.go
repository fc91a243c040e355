package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// TokenInfoURL is Google's token introspection endpoint.
var TokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// TokenInfo describes a live access token as Google sees it.
type TokenInfo struct {
	Audience  string   `json:"aud"`
	Scopes    []string `json:"-"`
	Email     string   `json:"email,omitempty"`
	ExpiresIn int      `json:"-"`
}

// FetchTokenInfo asks Google which scopes and lifetime accessToken has.
func FetchTokenInfo(ctx context.Context, client *http.Client, accessToken string) (*TokenInfo, error) {
	if client == nil {
		client = http.DefaultClient
	}

	reqURL := TokenInfoURL + "?" + url.Values{"access_token": {accessToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch token info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token info request failed with status %d", resp.StatusCode)
	}

	var raw struct {
		Aud       string `json:"aud"`
		Scope     string `json:"scope"`
		Email     string `json:"email"`
		ExpiresIn string `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode token info: %w", err)
	}

	info := &TokenInfo{
		Audience: raw.Aud,
		Scopes:   strings.Fields(raw.Scope),
		Email:    raw.Email,
	}
	if raw.ExpiresIn != "" {
		info.ExpiresIn, _ = strconv.Atoi(raw.ExpiresIn)
	}
	return info, nil
}
