package driving

import "github.com/custodia-labs/wsamples/internal/core/domain"

// CatalogService describes the registered samples.
type CatalogService interface {
	// List returns the samples of api sorted by name. An empty api lists all.
	List(api domain.API) []domain.Sample

	// Search matches query against sample names and summaries.
	Search(query string) []domain.Sample

	// APIs returns the APIs that have samples.
	APIs() []domain.API

	// Describe returns one sample or domain.ErrUnknownSample.
	Describe(name string) (*domain.Sample, error)
}
