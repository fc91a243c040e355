// Package docs holds the Docs v1 quickstart.
package docs

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// ExampleDocumentID is Google's public quickstart document.
const ExampleDocumentID = "195j9eDD3ccgjQRttHhJPymLJUCOUjs-jmwTrekvdjFE"

// GetDocumentTitle returns the title of a document.
func GetDocumentTitle(ctx context.Context, svc *docs.Service, documentID string) (string, error) {
	doc, err := svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get document: %w", google.WrapError(err))
	}
	return doc.Title, nil
}

// Register adds the Docs samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(catalog.Entry{
		Sample: domain.Sample{
			Name:    "docs.quickstart",
			API:     domain.APIDocs,
			Summary: "Print the title of a document",
			Scopes:  []string{google.ScopeDocumentsReadonly},
			Args:    []domain.ArgSpec{{Name: "document-id", Description: "document to read", Default: ExampleDocumentID}},
		},
		Run: func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
			svc, err := env.Clients.Docs(ctx)
			if err != nil {
				return nil, err
			}
			title, err := GetDocumentTitle(ctx, svc, args.Get("document-id"))
			if err != nil {
				return nil, err
			}
			return map[string]string{"title": title}, nil
		},
	})
}
