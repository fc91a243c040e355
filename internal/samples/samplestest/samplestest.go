// Package samplestest runs samples against a local fake of Google's REST endpoints.
package samplestest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Request is a request the fake received.
type Request struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

// Server is a fake Google API host. Routes match on method plus a path suffix.
type Server struct {
	*httptest.Server

	t        *testing.T
	mu       sync.Mutex
	routes   []route
	requests []Request
}

type route struct {
	method  string
	suffix  string
	handler http.HandlerFunc
}

// NewServer starts a fake closed at the end of the test.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{t: t}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers handler for method requests whose path ends with suffix.
// Earlier registrations win.
func (s *Server) Handle(method, suffix string, handler http.HandlerFunc) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route{method: method, suffix: suffix, handler: handler})
	return s
}

// JSON registers a route answering with v encoded as JSON.
func (s *Server) JSON(method, suffix string, v any) *Server {
	return s.Handle(method, suffix, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, v)
	})
}

// Requests returns what the fake received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the last request matching method and path suffix.
func (s *Server) Last(method, suffix string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && strings.HasSuffix(reqs[i].Path, suffix) {
			return reqs[i], true
		}
	}
	return Request{}, false
}

// Clients returns a client factory pointed at the fake with pacing disabled.
func (s *Server) Clients() *google.Clients {
	opts := []google.ClientsOption{google.WithBaseURL(s.URL)}
	for _, svc := range []google.ServiceType{
		google.ServiceDrive, google.ServiceSheets, google.ServiceSlides, google.ServiceChat,
		google.ServiceForms, google.ServiceDirectory, google.ServiceReports, google.ServiceReseller,
		google.ServiceCalendar, google.ServiceGmail, google.ServicePeople, google.ServiceClassroom,
		google.ServiceTasks, google.ServiceDocs, google.ServiceScript, google.ServiceMeet,
	} {
		opts = append(opts, google.WithRateLimiter(svc, google.Unlimited()))
	}
	return google.NewClients(s.Client(), opts...)
}

// Env returns a catalog environment using the fake.
func (s *Server) Env() catalog.Env {
	return catalog.Env{Clients: s.Clients(), WorkDir: s.t.TempDir()}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(s.t, err)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
	})
	routes := append([]route(nil), s.routes...)
	s.mu.Unlock()

	r.Body = io.NopCloser(strings.NewReader(string(body)))
	for _, rt := range routes {
		if rt.method == r.Method && strings.HasSuffix(r.URL.Path, rt.suffix) {
			rt.handler(w, r)
			return
		}
	}
	WriteJSON(w, http.StatusNotFound, map[string]any{
		"error": map[string]any{"code": http.StatusNotFound, "message": "no fake for " + r.Method + " " + r.URL.Path},
	})
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode unmarshals a recorded JSON request body.
func Decode(t *testing.T, req Request, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(req.Body, v))
}
