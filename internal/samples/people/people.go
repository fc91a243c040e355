// Package people holds the People v1 quickstart.
package people

import (
	"context"
	"fmt"

	"google.golang.org/api/people/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Contact is a connection's display name and first email.
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ListConnections returns the first pageSize contacts of the user.
// Connections without a name are skipped.
func ListConnections(ctx context.Context, svc *people.Service, pageSize int64) ([]Contact, error) {
	resp, err := svc.People.Connections.List("people/me").
		PageSize(pageSize).
		PersonFields("names,emailAddresses").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", google.WrapError(err))
	}

	contacts := make([]Contact, 0, len(resp.Connections))
	for _, p := range resp.Connections {
		if len(p.Names) == 0 {
			continue
		}
		c := Contact{Name: p.Names[0].DisplayName}
		if len(p.EmailAddresses) > 0 {
			c.Email = p.EmailAddresses[0].Value
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// Register adds the People samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(catalog.Entry{
		Sample: domain.Sample{
			Name:    "people.quickstart",
			API:     domain.APIPeople,
			Summary: "List the names of your first 10 contacts",
			Scopes:  []string{google.ScopeContactsReadonly},
			Auth:    domain.AuthUser,
		},
		Run: func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
			svc, err := env.Clients.People(ctx)
			if err != nil {
				return nil, err
			}
			return ListConnections(ctx, svc, 10)
		},
	})
}
