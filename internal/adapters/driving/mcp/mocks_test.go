package mcp

import (
	"context"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// mockCatalog is a mock implementation of driving.CatalogService.
type mockCatalog struct {
	samples []domain.Sample
}

func (m *mockCatalog) List(api domain.API) []domain.Sample {
	var out []domain.Sample
	for _, s := range m.samples {
		if api == "" || s.API == api {
			out = append(out, s)
		}
	}
	return out
}

func (m *mockCatalog) Search(query string) []domain.Sample {
	var out []domain.Sample
	for _, s := range m.samples {
		if query == "" || s.Name == query || s.Summary == query {
			out = append(out, s)
		}
	}
	return out
}

func (m *mockCatalog) APIs() []domain.API {
	return []domain.API{domain.APIDrive, domain.APISheets}
}

func (m *mockCatalog) Describe(name string) (*domain.Sample, error) {
	for _, s := range m.samples {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, domain.ErrUnknownSample
}

// mockRunner is a mock implementation of driving.RunService.
type mockRunner struct {
	name   string
	args   domain.Args
	result any
	err    error
	runs   []domain.RunRecord
}

func (m *mockRunner) Run(_ context.Context, name string, args domain.Args) (any, error) {
	m.name = name
	m.args = args
	return m.result, m.err
}

func (m *mockRunner) History(_ context.Context, _ string, _ int) ([]domain.RunRecord, error) {
	return m.runs, nil
}

func testSamples() []domain.Sample {
	return []domain.Sample{
		{
			Name:    "drive.quickstart",
			API:     domain.APIDrive,
			Summary: "List the first 10 files",
			Scopes:  []string{"https://www.googleapis.com/auth/drive.metadata.readonly"},
			Auth:    domain.AuthAny,
		},
		{
			Name:    "sheets.get-values",
			API:     domain.APISheets,
			Summary: "Read a range",
			Scopes:  []string{"https://www.googleapis.com/auth/spreadsheets.readonly"},
			Auth:    domain.AuthAny,
			Args: []domain.ArgSpec{
				{Name: "spreadsheet-id", Description: "spreadsheet to read", Required: true},
				{Name: "range", Default: "Sheet1!A1:B2"},
			},
		},
	}
}

func newTestServer(runner *mockRunner) (*Server, error) {
	return NewServer(&Ports{Catalog: &mockCatalog{samples: testSamples()}, Runner: runner})
}
