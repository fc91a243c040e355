package chat

import (
	"context"
	"fmt"

	"google.golang.org/api/chat/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Membership is the subset of membership fields the samples print.
type Membership struct {
	Name   string `json:"name" yaml:"name"`
	Member string `json:"member,omitempty" yaml:"member,omitempty"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
	State  string `json:"state,omitempty" yaml:"state,omitempty"`
}

func fromMembership(m *chat.Membership) Membership {
	out := Membership{Name: m.Name, Role: m.Role, State: m.State}
	if m.Member != nil {
		out.Member = m.Member.Name
	}
	return out
}

// ListMemberships returns the members of space.
func ListMemberships(ctx context.Context, svc *chat.Service, limiter *google.RateLimiter, space string) ([]Membership, error) {
	var members []Membership
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		resp, err := svc.Spaces.Members.List(space).PageSize(100).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, m := range resp.Memberships {
			members = append(members, fromMembership(m))
		}
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return members, nil
}

// CreateMembership invites a human user ("users/123" or "users/user@example.com") to space.
func CreateMembership(ctx context.Context, svc *chat.Service, space, user string) (*Membership, error) {
	m, err := svc.Spaces.Members.Create(space, &chat.Membership{
		Member: &chat.User{Name: user, Type: "HUMAN"},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create membership: %w", google.WrapError(err))
	}
	out := fromMembership(m)
	return &out, nil
}
