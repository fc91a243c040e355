package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
	"github.com/custodia-labs/wsamples/internal/logger"
)

// Ensure Authenticator implements the interface.
var _ driving.AuthService = (*Authenticator)(nil)

// AuthenticatorConfig wires an Authenticator.
type AuthenticatorConfig struct {
	// CredentialsPath points at credentials.json.
	CredentialsPath string

	// Subject is the user a service account impersonates.
	Subject string

	Tokens     driven.TokenStore
	Authorizer driven.Authorizer
	Revoker    driven.TokenRevoker

	// HTTPClient is used for token endpoint and tokeninfo calls.
	// Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Authenticator turns credentials.json and token.json into authorized
// HTTP clients.
type Authenticator struct {
	credentialsPath string
	subject         string
	tokens          driven.TokenStore
	authorizer      driven.Authorizer
	revoker         driven.TokenRevoker
	httpClient      *http.Client
	now             func() time.Time
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(cfg AuthenticatorConfig) *Authenticator {
	return &Authenticator{
		credentialsPath: cfg.CredentialsPath,
		subject:         cfg.Subject,
		tokens:          cfg.Tokens,
		authorizer:      cfg.Authorizer,
		revoker:         cfg.Revoker,
		httpClient:      cfg.HTTPClient,
		now:             time.Now,
	}
}

// Credentials reads and parses credentials.json.
func (a *Authenticator) Credentials() (*domain.ClientSecrets, error) {
	data, err := os.ReadFile(a.credentialsPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no credentials file at %s", domain.ErrAuthRequired, a.credentialsPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	secrets, err := domain.ParseClientSecrets(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", a.credentialsPath, err)
	}
	return secrets, nil
}

// HTTPClient returns a client authorized for scopes.
// Service account keys sign their own tokens; user clients reuse token.json
// when it covers scopes and otherwise run the browser flow.
func (a *Authenticator) HTTPClient(ctx context.Context, scopes []string, mode domain.AuthMode) (*http.Client, error) {
	secrets, err := a.Credentials()
	if err != nil {
		return nil, err
	}
	if mode != "" && !mode.Accepts(secrets.Kind()) {
		return nil, fmt.Errorf("%w: %s credentials cannot be used where %s credentials are required",
			domain.ErrUnsupportedCredentials, secrets.Kind(), mode)
	}

	if secrets.IsServiceAccount() {
		return a.serviceAccountClient(ctx, secrets, scopes)
	}

	stored, err := a.loadToken(ctx)
	if err != nil {
		return nil, err
	}
	if !stored.Satisfies(secrets.ClientID(), scopes) {
		requested := scopes
		if stored != nil && stored.ClientID == secrets.ClientID() {
			requested = domain.MergeScopes(stored.Scopes, scopes)
		}
		logger.Debug("stored token does not cover %v, starting authorization", scopes)
		stored, err = a.authorize(ctx, secrets, requested)
		if err != nil {
			return nil, err
		}
	}
	return a.userClient(ctx, secrets, stored), nil
}

// Login runs the browser flow for scopes and stores the result.
func (a *Authenticator) Login(ctx context.Context, scopes []string) (*domain.StoredToken, error) {
	secrets, err := a.Credentials()
	if err != nil {
		return nil, err
	}
	if secrets.IsServiceAccount() {
		return nil, fmt.Errorf("%w: service account credentials do not use interactive login",
			domain.ErrUnsupportedCredentials)
	}
	return a.authorize(ctx, secrets, domain.MergeScopes(nil, scopes))
}

// Status describes the configured credentials and stored token.
func (a *Authenticator) Status(ctx context.Context, verify bool) (*domain.AuthStatus, error) {
	status := &domain.AuthStatus{CredentialsPath: a.credentialsPath}
	if a.tokens != nil {
		status.TokenPath = a.tokens.Path()
	}

	secrets, err := a.Credentials()
	if err != nil {
		return status, err
	}
	status.Kind = secrets.Kind()
	status.ClientID = secrets.ClientID()
	if secrets.IsServiceAccount() {
		status.Subject = a.subject
		return status, nil
	}

	stored, err := a.loadToken(ctx)
	if err != nil || stored == nil {
		return status, err
	}
	status.HasToken = true
	status.Scopes = stored.Scopes
	status.Expiry = stored.Token.Expiry
	status.Expired = stored.Token.IsExpired()
	status.CanRefresh = stored.Token.CanRefresh()

	if verify && stored.Token.Valid() {
		info, err := google.FetchTokenInfo(ctx, a.httpClient, stored.Token.AccessToken)
		if err != nil {
			logger.Warn("token verification failed: %v", err)
		} else {
			status.Email = info.Email
			status.LiveScopes = info.Scopes
		}
	}
	return status, nil
}

// Revoke invalidates the stored token at Google and deletes token.json.
// The local token is deleted even when Google rejects the revocation.
func (a *Authenticator) Revoke(ctx context.Context) error {
	stored, err := a.loadToken(ctx)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("%w: no stored token", domain.ErrNotFound)
	}

	var revokeErr error
	if a.revoker != nil {
		token := stored.Token.RefreshToken
		if token == "" {
			token = stored.Token.AccessToken
		}
		if err := a.revoker.Revoke(ctx, token); err != nil {
			revokeErr = fmt.Errorf("revoke token: %w", err)
		}
	}

	if err := a.tokens.Delete(ctx); err != nil {
		return errors.Join(revokeErr, fmt.Errorf("delete token: %w", err))
	}
	return revokeErr
}

// loadToken returns the stored token or nil when there is none.
func (a *Authenticator) loadToken(ctx context.Context) (*domain.StoredToken, error) {
	if a.tokens == nil {
		return nil, nil
	}
	stored, err := a.tokens.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return stored, nil
}

func (a *Authenticator) authorize(
	ctx context.Context, secrets *domain.ClientSecrets, scopes []string,
) (*domain.StoredToken, error) {
	if a.authorizer == nil {
		return nil, fmt.Errorf("%w: interactive authorization is not available", domain.ErrAuthRequired)
	}
	client := secrets.OAuthClient()

	tok, err := a.authorizer.Authorize(ctx, driven.AuthorizationRequest{
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		RedirectURI:  client.RedirectURI(),
		Scopes:       scopes,
		Endpoint:     endpointFor(client),
	})
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}

	now := a.now()
	stored := domain.StoredToken{
		ClientID:  client.ClientID,
		Scopes:    scopes,
		Token:     fromOAuth2(tok),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a.tokens != nil {
		if err := a.tokens.Save(ctx, stored); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
		logger.Info("token saved to %s", a.tokens.Path())
	}
	return &stored, nil
}

func (a *Authenticator) userClient(
	ctx context.Context, secrets *domain.ClientSecrets, stored *domain.StoredToken,
) *http.Client {
	client := secrets.OAuthClient()
	cfg := &oauth2.Config{
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		Endpoint:     endpointFor(client),
		Scopes:       stored.Scopes,
	}

	ctx = a.oauthContext(ctx)
	current := toOAuth2(stored.Token)
	saved := *stored
	ts := google.NewPersistingTokenSource(cfg.TokenSource(ctx, current), current,
		func(tok *oauth2.Token) error {
			if a.tokens == nil {
				return nil
			}
			saved.Token = fromOAuth2(tok)
			if saved.Token.RefreshToken == "" {
				saved.Token.RefreshToken = stored.Token.RefreshToken
			}
			saved.UpdatedAt = a.now()
			return a.tokens.Save(context.WithoutCancel(ctx), saved)
		},
		func(err error) {
			logger.Warn("could not persist refreshed token: %v", err)
		})
	return oauth2.NewClient(ctx, ts)
}

func (a *Authenticator) serviceAccountClient(
	ctx context.Context, secrets *domain.ClientSecrets, scopes []string,
) (*http.Client, error) {
	cfg, err := googleauth.JWTConfigFromJSON(secrets.Raw(), scopes...)
	if err != nil {
		return nil, fmt.Errorf("service account key: %w", err)
	}
	cfg.Subject = a.subject
	if a.subject != "" {
		logger.Debug("service account %s impersonating %s", cfg.Email, a.subject)
	}
	return cfg.Client(a.oauthContext(ctx)), nil
}

func (a *Authenticator) oauthContext(ctx context.Context) context.Context {
	if a.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
}

// endpointFor uses the URIs from credentials.json, falling back to Google's.
func endpointFor(client *domain.OAuthClient) oauth2.Endpoint {
	endpoint := googleauth.Endpoint
	if client.AuthURI != "" {
		endpoint.AuthURL = client.AuthURI
	}
	if client.TokenURI != "" {
		endpoint.TokenURL = client.TokenURI
	}
	return endpoint
}

func toOAuth2(t domain.OAuthToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func fromOAuth2(t *oauth2.Token) domain.OAuthToken {
	return domain.OAuthToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}
