package mcp

import (
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server uses.
type Ports struct {
	// Catalog describes the available samples.
	Catalog driving.CatalogService

	// Runner executes samples and reports their history.
	Runner driving.RunService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalog
	}
	if p.Runner == nil {
		return ErrMissingRunner
	}
	return nil
}
