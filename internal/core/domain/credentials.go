package domain

import (
	"encoding/json"
	"fmt"
)

// CredentialsKind identifies the type of credentials.json.
type CredentialsKind string

const (
	// CredentialsInstalled is an OAuth client for desktop/installed apps.
	CredentialsInstalled CredentialsKind = "installed"
	// CredentialsWeb is an OAuth client for web applications.
	CredentialsWeb CredentialsKind = "web"
	// CredentialsServiceAccount is a service account key file.
	CredentialsServiceAccount CredentialsKind = "service_account"
)

// OAuthClient holds the fields of an OAuth client entry in credentials.json.
type OAuthClient struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
	AuthURI      string   `json:"auth_uri"`
	TokenURI     string   `json:"token_uri"`
	ProjectID    string   `json:"project_id,omitempty"`
}

// ServiceAccountKey holds the identifying fields of a service account key.
// The raw JSON is kept alongside for signing.
type ServiceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	ClientID    string `json:"client_id"`
	TokenURI    string `json:"token_uri"`
}

// ClientSecrets is a parsed credentials.json.
type ClientSecrets struct {
	kind           CredentialsKind
	client         *OAuthClient
	serviceAccount *ServiceAccountKey
	raw            []byte
}

// ParseClientSecrets parses credentials.json content.
// It accepts "installed" and "web" OAuth client files and service account keys.
func ParseClientSecrets(data []byte) (*ClientSecrets, error) {
	var envelope struct {
		Type      string       `json:"type"`
		Installed *OAuthClient `json:"installed"`
		Web       *OAuthClient `json:"web"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cs := &ClientSecrets{raw: data}
	switch {
	case envelope.Type == string(CredentialsServiceAccount):
		var key ServiceAccountKey
		if err := json.Unmarshal(data, &key); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if key.ClientEmail == "" {
			return nil, fmt.Errorf("%w: service account key has no client_email", ErrInvalidInput)
		}
		cs.kind = CredentialsServiceAccount
		cs.serviceAccount = &key
	case envelope.Installed != nil:
		cs.kind = CredentialsInstalled
		cs.client = envelope.Installed
	case envelope.Web != nil:
		cs.kind = CredentialsWeb
		cs.client = envelope.Web
	default:
		return nil, ErrUnsupportedCredentials
	}

	if cs.client != nil && cs.client.ClientID == "" {
		return nil, fmt.Errorf("%w: OAuth client has no client_id", ErrInvalidInput)
	}
	return cs, nil
}

// Kind returns the credentials kind.
func (c *ClientSecrets) Kind() CredentialsKind {
	return c.kind
}

// IsServiceAccount returns true for service account keys.
func (c *ClientSecrets) IsServiceAccount() bool {
	return c.kind == CredentialsServiceAccount
}

// OAuthClient returns the OAuth client entry, or nil for service accounts.
func (c *ClientSecrets) OAuthClient() *OAuthClient {
	return c.client
}

// ServiceAccount returns the service account key, or nil for OAuth clients.
func (c *ClientSecrets) ServiceAccount() *ServiceAccountKey {
	return c.serviceAccount
}

// ClientID returns the identifier tokens are bound to.
func (c *ClientSecrets) ClientID() string {
	if c.client != nil {
		return c.client.ClientID
	}
	if c.serviceAccount != nil {
		return c.serviceAccount.ClientEmail
	}
	return ""
}

// Raw returns the original file content.
func (c *ClientSecrets) Raw() []byte {
	return c.raw
}

// RedirectURI returns the first registered redirect URI, or "http://localhost"
// which is what Google issues for installed apps.
func (c *OAuthClient) RedirectURI() string {
	if len(c.RedirectURIs) > 0 && c.RedirectURIs[0] != "" {
		return c.RedirectURIs[0]
	}
	return "http://localhost"
}
