package driving

import (
	"context"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// RunService executes catalog samples.
type RunService interface {
	// Run executes the named sample and returns its result value.
	Run(ctx context.Context, name string, args domain.Args) (any, error)

	// History returns recent runs, newest first.
	History(ctx context.Context, sample string, limit int) ([]domain.RunRecord, error)
}
