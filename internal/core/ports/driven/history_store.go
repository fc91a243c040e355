package driven

import (
	"context"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// HistoryStore records sample runs.
type HistoryStore interface {
	// Record saves a finished run.
	Record(ctx context.Context, rec domain.RunRecord) error

	// List returns the most recent runs first, at most limit entries.
	// A sample filter of "" matches all samples.
	List(ctx context.Context, sample string, limit int) ([]domain.RunRecord, error)

	// Clear deletes all history.
	Clear(ctx context.Context) error
}
