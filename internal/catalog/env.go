package catalog

import (
	"path/filepath"
	"time"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Env is what a sample receives besides its arguments.
type Env struct {
	// Clients builds authenticated API services.
	Clients *google.Clients

	// WorkDir anchors relative file paths given as arguments.
	WorkDir string

	// Now returns the current time.
	Now func() time.Time
}

// Path resolves p against WorkDir.
func (e Env) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || e.WorkDir == "" {
		return p
	}
	return filepath.Join(e.WorkDir, p)
}

// Time returns Now() or the wall clock.
func (e Env) Time() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
