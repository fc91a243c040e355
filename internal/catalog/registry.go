package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// RunFunc executes a sample and returns a printable result.
type RunFunc func(ctx context.Context, env Env, args domain.Args) (any, error)

// Entry is a registered sample.
type Entry struct {
	domain.Sample
	Run RunFunc
}

// Registry holds the sample catalog. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry. Names must be unique and prefixed by the API.
func (r *Registry) Register(e Entry) error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: sample without name", domain.ErrInvalidInput)
	case !strings.HasPrefix(e.Name, string(e.API)+"."):
		return fmt.Errorf("%w: sample %q must be prefixed with %q", domain.ErrInvalidInput, e.Name, e.API+".")
	case e.Run == nil:
		return fmt.Errorf("%w: sample %q has no run function", domain.ErrInvalidInput, e.Name)
	case len(e.Scopes) == 0:
		return fmt.Errorf("%w: sample %q declares no scopes", domain.ErrInvalidInput, e.Name)
	}
	if e.Auth == "" {
		e.Auth = domain.AuthAny
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[e.Name]; exists {
		return fmt.Errorf("%w: sample %q registered twice", domain.ErrInvalidInput, e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// MustRegister registers entries and panics on the first error.
func (r *Registry) MustRegister(entries ...Entry) {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
}

// Get returns the named entry.
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownSample, name)
	}
	return e, nil
}

// Describe returns a copy of the named sample's description.
func (r *Registry) Describe(name string) (*domain.Sample, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	s := e.Sample
	return &s, nil
}

// List returns the samples of api sorted by name. An empty api lists all.
func (r *Registry) List(api domain.API) []domain.Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	samples := make([]domain.Sample, 0, len(r.entries))
	for _, e := range r.entries {
		if api == "" || e.API == api {
			samples = append(samples, e.Sample)
		}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples
}

// Search returns samples whose name or summary contains query, case-insensitively.
func (r *Registry) Search(query string) []domain.Sample {
	query = strings.ToLower(strings.TrimSpace(query))
	all := r.List("")
	if query == "" {
		return all
	}

	matches := all[:0]
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Name), query) || strings.Contains(strings.ToLower(s.Summary), query) {
			matches = append(matches, s)
		}
	}
	return matches
}

// APIs returns the APIs that have at least one sample, sorted.
func (r *Registry) APIs() []domain.API {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.API]bool)
	for _, e := range r.entries {
		seen[e.API] = true
	}
	apis := make([]domain.API, 0, len(seen))
	for api := range seen {
		apis = append(apis, api)
	}
	sort.Slice(apis, func(i, j int) bool { return apis[i] < apis[j] })
	return apis
}

// Len returns the number of registered samples.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
