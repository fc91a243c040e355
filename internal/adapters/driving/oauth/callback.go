// Package oauth provides the local OAuth2 callback receiver used to obtain
// user tokens through the authorization-code grant.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/logger"
)

// CallbackServer handles the OAuth redirect callback.
// It serves exactly one meaningful callback: the first request to the
// callback path decides the outcome, later ones are answered with 410 Gone.
type CallbackServer struct {
	mu            sync.Mutex
	redirect      url.URL
	path          string
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	handled       bool
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a callback server for the given loopback redirect URI.
// The expectedState is used to validate the callback matches the request.
func NewCallbackServer(redirect *url.URL, expectedState string) *CallbackServer {
	port, _ := strconv.Atoi(redirect.Port())
	path := redirect.Path
	if path == "" {
		path = "/"
	}
	return &CallbackServer{
		redirect:      *redirect,
		path:          path,
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// Start listens on the redirect URI's port. Port 0 picks a random free port.
func (s *CallbackServer) Start() error {
	addr := net.JoinHostPort(s.listenHost(), strconv.Itoa(s.port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.serve(listener)
}

// StartInRange listens on the first free port in [startPort, endPort].
// A zero range falls back to a random port.
func (s *CallbackServer) StartInRange(startPort, endPort int) error {
	if startPort <= 0 || endPort < startPort {
		s.port = 0
		return s.Start()
	}
	for port := startPort; port <= endPort; port++ {
		listener, err := net.Listen("tcp", net.JoinHostPort(s.listenHost(), strconv.Itoa(port)))
		if err == nil {
			return s.serve(listener)
		}
	}
	return fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}

// listenHost maps "localhost" to the IPv4 loopback address.
func (s *CallbackServer) listenHost() string {
	host := s.redirect.Hostname()
	if host == "" || host == "localhost" {
		return "127.0.0.1"
	}
	return host
}

func (s *CallbackServer) serve(listener net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listener = listener
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	s.server = &http.Server{
		Handler:      http.HandlerFunc(s.handleCallback),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	srv := s.server
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.deliver("", fmt.Errorf("callback server: %w", err))
		}
	}()

	logger.Infow("oauth callback listener started", "port", s.port, "path", s.path)
	return nil
}

// deliver records the outcome of the flow. Only the first call has any effect.
func (s *CallbackServer) deliver(code string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handled {
		return false
	}
	s.handled = true
	if err != nil {
		s.errChan <- err
	} else {
		s.codeChan <- code
	}
	return true
}

// handleCallback processes the OAuth callback request.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.path {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	handled := s.handled
	s.mu.Unlock()
	if handled {
		writePage(w, http.StatusGone, "Authorization already completed", "This callback has already been used.")
		return
	}

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		errDesc := query.Get("error_description")
		s.deliver("", fmt.Errorf("oauth error: %s - %s", errParam, errDesc))
		writePage(w, http.StatusOK, "Authorization failed: "+errDesc, "")
		return
	}

	if state := query.Get("state"); state != s.expectedState {
		s.deliver("", fmt.Errorf("%w: expected %s, got %s", domain.ErrStateMismatch, s.expectedState, state))
		writePage(w, http.StatusOK, "Authorization failed: invalid state parameter", "")
		return
	}

	code := query.Get("code")
	if code == "" {
		s.deliver("", domain.ErrMissingCode)
		writePage(w, http.StatusOK, "Authorization failed: no code received", "")
		return
	}

	if !s.deliver(code, nil) {
		writePage(w, http.StatusGone, "Authorization already completed", "This callback has already been used.")
		return
	}
	writePage(w, http.StatusOK, "Authorization successful!", "You can close this window and return to the terminal.")
}

// WaitForCode blocks until the authorization code arrives, the flow fails,
// or ctx is done. A context deadline is reported as domain.ErrAuthorizationTimeout.
func (s *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.ErrAuthorizationTimeout
		}
		return "", ctx.Err()
	}
}

// Stop shuts down the callback server. It is safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI returns the redirect URI including the bound port.
func (s *CallbackServer) RedirectURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.redirect
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(s.port))
	return u.String()
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = fmt.Fprint(w, callbackHTML(title, message))
}

//nolint:misspell // CSS properties use American spelling (center, color)
func callbackHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>wsamples - OAuth Callback</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #F8F9FA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 40px 60px;
            border-radius: 8px;
            border: 1px solid #DADCE0;
        }
        h1 { color: #202124; margin-bottom: 10px; font-size: 22px; }
        p { color: #5F6368; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}
