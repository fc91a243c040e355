package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for wsamples resources.
	uriScheme = "wsamples://"

	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "samples",
		Name:        "samples",
		Description: "Catalog of runnable Google Workspace API samples",
		MIMEType:    "application/json",
	}, s.handleSamplesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "samples/{name}",
		Name:        "sample",
		Description: "Scopes and arguments of one sample",
		MIMEType:    "application/json",
	}, s.handleSampleResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Most recent sample runs",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleSamplesResource returns the whole catalog.
func (s *Server) handleSamplesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	samples := s.ports.Catalog.List("")
	out := make([]SampleOutput, len(samples))
	for i := range samples {
		out[i] = toSampleOutput(&samples[i])
	}
	return jsonResource(req.Params.URI, out)
}

// handleSampleResource returns one sample.
func (s *Server) handleSampleResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractSampleName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	sample, err := s.ports.Catalog.Describe(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, toSampleOutput(sample))
}

// handleHistoryResource returns recent runs.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runs, err := s.ports.Runner.History(ctx, "", historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	if runs == nil {
		runs = []domain.RunRecord{}
	}
	return jsonResource(req.Params.URI, runs)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSampleName extracts the name from a URI like wsamples://samples/{name}.
func extractSampleName(uri string) string {
	const prefix = uriScheme + "samples/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
