// Package meet holds the Meet v2 quickstart.
package meet

import (
	"context"
	"fmt"

	"google.golang.org/api/meet/v2"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Space is a created meeting space.
type Space struct {
	Name        string `json:"name" yaml:"name"`
	MeetingURI  string `json:"meetingUri" yaml:"meetingUri"`
	MeetingCode string `json:"meetingCode" yaml:"meetingCode"`
}

// CreateSpace creates a meeting space and returns its join link.
func CreateSpace(ctx context.Context, svc *meet.Service) (*Space, error) {
	s, err := svc.Spaces.Create(&meet.Space{}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create space: %w", google.WrapError(err))
	}
	return &Space{Name: s.Name, MeetingURI: s.MeetingUri, MeetingCode: s.MeetingCode}, nil
}

// Register adds the Meet samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(catalog.Entry{
		Sample: domain.Sample{
			Name:    "meet.quickstart",
			API:     domain.APIMeet,
			Summary: "Create a meeting space",
			Scopes:  []string{google.ScopeMeetingSpaceCreated},
			Auth:    domain.AuthUser,
		},
		Run: func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
			svc, err := env.Clients.Meet(ctx)
			if err != nil {
				return nil, err
			}
			return CreateSpace(ctx, svc)
		},
	})
}
