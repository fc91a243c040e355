package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// ListSamplesInput is the input schema for the list_samples tool.
type ListSamplesInput struct {
	API   string `json:"api,omitempty" jsonschema:"only list samples of this API, e.g. drive or sheets"`
	Query string `json:"query,omitempty" jsonschema:"only list samples whose name or summary contains this text"`
}

// ListSamplesOutput is the output schema for the list_samples tool.
type ListSamplesOutput struct {
	Samples []SampleOutput `json:"samples"`
	Count   int            `json:"count"`
}

// SampleOutput describes one sample.
type SampleOutput struct {
	Name     string      `json:"name"`
	API      string      `json:"api"`
	Summary  string      `json:"summary"`
	Auth     string      `json:"auth"`
	Scopes   []string    `json:"scopes"`
	Args     []ArgOutput `json:"args,omitempty"`
	Required []string    `json:"required,omitempty"`
}

// ArgOutput describes one sample argument.
type ArgOutput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
}

// RunSampleInput is the input schema for the run_sample tool.
type RunSampleInput struct {
	Name string            `json:"name" jsonschema:"sample name as returned by list_samples, e.g. drive.quickstart"`
	Args map[string]string `json:"args,omitempty" jsonschema:"sample arguments by name"`
}

// RunSampleOutput is the output schema for the run_sample tool.
type RunSampleOutput struct {
	Sample string `json:"sample"`
	Result any    `json:"result"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_samples",
		Description: "List the Google Workspace API samples that can be run",
	}, s.handleListSamples)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "run_sample",
		Description: "Run a Google Workspace API sample and return its result. " +
			"The first run of a user sample may open a browser for Google sign-in.",
	}, s.handleRunSample)
}

// handleListSamples handles the list_samples tool invocation.
func (s *Server) handleListSamples(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListSamplesInput,
) (*mcp.CallToolResult, ListSamplesOutput, error) {
	var samples []domain.Sample
	if input.Query != "" {
		samples = s.ports.Catalog.Search(input.Query)
	} else {
		samples = s.ports.Catalog.List(domain.API(strings.ToLower(input.API)))
	}

	output := ListSamplesOutput{Samples: make([]SampleOutput, 0, len(samples))}
	for i := range samples {
		if input.API != "" && !strings.EqualFold(string(samples[i].API), input.API) {
			continue
		}
		output.Samples = append(output.Samples, toSampleOutput(&samples[i]))
	}
	output.Count = len(output.Samples)
	return nil, output, nil
}

// handleRunSample handles the run_sample tool invocation.
// Sample failures are reported as tool errors so the model can react to them.
func (s *Server) handleRunSample(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunSampleInput,
) (*mcp.CallToolResult, RunSampleOutput, error) {
	if input.Name == "" {
		return nil, RunSampleOutput{}, fmt.Errorf("%w: sample name is required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Runner.Run(ctx, input.Name, domain.Args(input.Args))
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}, RunSampleOutput{Sample: input.Name}, nil
	}

	output := RunSampleOutput{Sample: input.Name, Result: result}
	text, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, RunSampleOutput{}, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
	}, output, nil
}

func toSampleOutput(s *domain.Sample) SampleOutput {
	out := SampleOutput{
		Name:    s.Name,
		API:     string(s.API),
		Summary: s.Summary,
		Auth:    string(s.Auth),
		Scopes:  s.Scopes,
	}
	for _, a := range s.Args {
		out.Args = append(out.Args, ArgOutput{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
			Default:     a.Default,
		})
		if a.Required {
			out.Required = append(out.Required, a.Name)
		}
	}
	return out
}
