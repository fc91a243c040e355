// Package script holds the Apps Script v1 quickstart.
package script

import (
	"context"
	"fmt"

	"google.golang.org/api/script/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

const helloSource = "function helloWorld() {\n  console.log(\"Hello, world!\");\n}"

const manifest = `{"timeZone":"America/New_York","exceptionLogging":"CLOUD"}`

// Project is a created Apps Script project.
type Project struct {
	ScriptID string   `json:"scriptId" yaml:"scriptId"`
	URL      string   `json:"url" yaml:"url"`
	Files    []string `json:"files" yaml:"files"`
}

// CreateProject creates a standalone script project and uploads a hello
// world function with its manifest.
func CreateProject(ctx context.Context, svc *script.Service, title string) (*Project, error) {
	created, err := svc.Projects.Create(&script.CreateProjectRequest{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create project: %w", google.WrapError(err))
	}

	content, err := svc.Projects.UpdateContent(created.ScriptId, &script.Content{
		ScriptId: created.ScriptId,
		Files: []*script.File{
			{Name: "hello", Type: "SERVER_JS", Source: helloSource},
			{Name: "appsscript", Type: "JSON", Source: manifest},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update project content: %w", google.WrapError(err))
	}

	project := &Project{
		ScriptID: created.ScriptId,
		URL:      "https://script.google.com/d/" + created.ScriptId + "/edit",
	}
	for _, f := range content.Files {
		project.Files = append(project.Files, f.Name)
	}
	return project, nil
}

// Register adds the Apps Script samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(catalog.Entry{
		Sample: domain.Sample{
			Name:    "script.quickstart",
			API:     domain.APIScript,
			Summary: "Create a script project with a hello world function",
			Scopes:  []string{google.ScopeScriptProjects},
			Auth:    domain.AuthUser,
			Args:    []domain.ArgSpec{{Name: "title", Description: "project title", Default: "My Script"}},
		},
		Run: func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
			svc, err := env.Clients.Script(ctx)
			if err != nil {
				return nil, err
			}
			return CreateProject(ctx, svc, args.Get("title"))
		},
	})
}
