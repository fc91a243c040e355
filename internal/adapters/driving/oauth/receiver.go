package oauth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
	"github.com/custodia-labs/wsamples/internal/logger"
)

// DefaultTimeout bounds how long Authorize waits for the browser flow.
const DefaultTimeout = 5 * time.Minute

var _ driven.Authorizer = (*Receiver)(nil)

// Receiver runs the authorization-code grant against a short-lived local
// listener: it opens the consent page, waits for a single callback and
// exchanges the code for tokens. One authorization may be in flight at a time.
type Receiver struct {
	timeout     time.Duration
	portStart   int
	portEnd     int
	openBrowser bool
	opener      func(string) error
	out         io.Writer
	httpClient  *http.Client

	inFlight atomic.Bool
}

// Option configures a Receiver.
type Option func(*Receiver)

// WithTimeout bounds the wait for the callback.
func WithTimeout(d time.Duration) Option {
	return func(r *Receiver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithPortRange sets the ports tried when the redirect URI has no port.
func WithPortRange(start, end int) Option {
	return func(r *Receiver) {
		r.portStart = start
		r.portEnd = end
	}
}

// WithOpener replaces the browser opener.
func WithOpener(open func(string) error) Option {
	return func(r *Receiver) {
		r.opener = open
	}
}

// WithoutBrowser only prints the authorization URL.
func WithoutBrowser() Option {
	return func(r *Receiver) {
		r.openBrowser = false
	}
}

// WithOutput sets where the authorization URL is printed.
func WithOutput(w io.Writer) Option {
	return func(r *Receiver) {
		r.out = w
	}
}

// WithHTTPClient sets the client used for the token exchange.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Receiver) {
		r.httpClient = c
	}
}

// NewReceiver creates a Receiver.
func NewReceiver(opts ...Option) *Receiver {
	r := &Receiver{
		timeout:     DefaultTimeout,
		openBrowser: true,
		opener:      OpenBrowser,
		out:         os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authorize obtains a token for req. It returns domain.ErrAuthorizationTimeout
// when the callback does not arrive in time and domain.ErrAuthorizationInProgress
// when another Authorize call on the same Receiver has not finished.
func (r *Receiver) Authorize(ctx context.Context, req driven.AuthorizationRequest) (*oauth2.Token, error) {
	tok, _, err := r.authorize(ctx, req)
	return tok, err
}

// AuthorizeClient runs Authorize and wraps the resulting token in an
// HTTP client that refreshes it as needed.
func (r *Receiver) AuthorizeClient(ctx context.Context, req driven.AuthorizationRequest) (*http.Client, error) {
	tok, cfg, err := r.authorize(ctx, req)
	if err != nil {
		return nil, err
	}
	return cfg.Client(r.exchangeContext(ctx), tok), nil
}

func (r *Receiver) authorize(
	ctx context.Context, req driven.AuthorizationRequest,
) (*oauth2.Token, *oauth2.Config, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, nil, domain.ErrAuthorizationInProgress
	}
	defer r.inFlight.Store(false)

	redirect, err := parseLoopbackRedirect(req.RedirectURI)
	if err != nil {
		return nil, nil, err
	}

	state, err := generateState()
	if err != nil {
		return nil, nil, fmt.Errorf("generate state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	server := NewCallbackServer(redirect, state)
	if redirect.Port() == "" {
		err = server.StartInRange(r.portStart, r.portEnd)
	} else {
		err = server.Start()
	}
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Warn("stopping callback server: %v", err)
		}
	}()

	endpoint := req.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	cfg := &oauth2.Config{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  server.RedirectURI(),
		Scopes:       req.Scopes,
	}

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	fmt.Fprintf(r.out, "Open the following URL in your browser to authorize access:\n\n  %s\n\n", authURL)
	if r.openBrowser && r.opener != nil {
		if err := r.opener(authURL); err != nil {
			logger.Warn("could not open browser: %v", err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	code, err := server.WaitForCode(waitCtx)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("authorization code received, exchanging for tokens")

	tok, err := cfg.Exchange(r.exchangeContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, cfg, nil
}

func (r *Receiver) exchangeContext(ctx context.Context) context.Context {
	if r.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
}

// parseLoopbackRedirect accepts only http redirect URIs on a loopback host.
func parseLoopbackRedirect(raw string) (*url.URL, error) {
	if raw == "" {
		raw = "http://localhost"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: redirect URI %q: %v", domain.ErrInvalidInput, raw, err)
	}
	if u.Scheme != "http" {
		return nil, fmt.Errorf("%w: redirect URI %q must use http", domain.ErrInvalidInput, raw)
	}
	host := u.Hostname()
	if !strings.EqualFold(host, "localhost") {
		ip := net.ParseIP(host)
		if ip == nil || !ip.IsLoopback() {
			return nil, fmt.Errorf("%w: redirect URI %q is not a loopback address", domain.ErrInvalidInput, raw)
		}
	}
	return u, nil
}
