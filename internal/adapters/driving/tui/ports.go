// Package tui provides the interactive sample browser behind "wsamples browse".
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Catalog lists and describes samples.
	Catalog driving.CatalogService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(catalog driving.CatalogService) *Ports {
	return &Ports{Catalog: catalog}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Catalog == nil {
		return ErrMissingCatalog
	}
	return nil
}
