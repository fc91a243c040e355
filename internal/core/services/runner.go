package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driven"
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
	"github.com/custodia-labs/wsamples/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.RunService = (*Runner)(nil)

// ClientSource hands out authorized HTTP clients.
type ClientSource interface {
	HTTPClient(ctx context.Context, scopes []string, mode domain.AuthMode) (*http.Client, error)
}

// Runner looks samples up in the catalog, authorizes them and records
// each run in the history store.
type Runner struct {
	registry   *catalog.Registry
	clients    ClientSource
	history    driven.HistoryStore
	clientOpts []google.ClientsOption
	workDir    string
	now        func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithHistory records runs in store. A nil store disables history.
func WithHistory(store driven.HistoryStore) RunnerOption {
	return func(r *Runner) {
		r.history = store
	}
}

// WithClientsOptions passes options to every google.Clients the runner builds.
func WithClientsOptions(opts ...google.ClientsOption) RunnerOption {
	return func(r *Runner) {
		r.clientOpts = append(r.clientOpts, opts...)
	}
}

// WithWorkDir sets the directory relative file arguments resolve against.
func WithWorkDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.workDir = dir
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner.
func NewRunner(registry *catalog.Registry, clients ClientSource, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: registry,
		clients:  clients,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the named sample. Unknown samples and invalid arguments
// fail before anything is recorded; everything after that is recorded
// whether it succeeds or not. Sample errors are wrapped with the sample name.
func (r *Runner) Run(ctx context.Context, name string, args domain.Args) (any, error) {
	entry, err := r.registry.Get(name)
	if err != nil {
		return nil, err
	}
	resolved, err := entry.Resolve(args)
	if err != nil {
		return nil, err
	}

	rec := domain.RunRecord{
		ID:        uuid.NewString(),
		Sample:    entry.Name,
		Args:      resolved,
		StartedAt: r.now(),
	}
	logger.Section(entry.Name)
	logger.Debug("run %s args=%v scopes=%v", rec.ID, resolved, entry.Scopes)

	result, err := r.execute(ctx, entry, resolved)

	rec.FinishedAt = r.now()
	rec.Status = domain.RunSucceeded
	if err != nil {
		rec.Status = domain.RunFailed
		rec.Error = err.Error()
	}
	r.record(ctx, rec)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Name, err)
	}
	logger.Infow("sample finished", "sample", entry.Name, "run_id", rec.ID, "duration", rec.Duration())
	return result, nil
}

func (r *Runner) execute(ctx context.Context, entry catalog.Entry, args domain.Args) (any, error) {
	httpClient, err := r.clients.HTTPClient(ctx, entry.Scopes, entry.Auth)
	if err != nil {
		return nil, err
	}
	env := catalog.Env{
		Clients: google.NewClients(httpClient, r.clientOpts...),
		WorkDir: r.workDir,
		Now:     r.now,
	}
	return entry.Run(ctx, env, args)
}

func (r *Runner) record(ctx context.Context, rec domain.RunRecord) {
	if r.history == nil {
		return
	}
	if err := r.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("could not record run %s: %v", rec.ID, err)
	}
}

// History returns recent runs, newest first.
func (r *Runner) History(ctx context.Context, sample string, limit int) ([]domain.RunRecord, error) {
	if r.history == nil {
		return nil, nil
	}
	return r.history.List(ctx, sample, limit)
}
