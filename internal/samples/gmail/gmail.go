// Package gmail holds the Gmail v1 quickstart and a draft snippet.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Label is a mailbox label.
type Label struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ListLabels returns the labels of the authenticated user's mailbox.
func ListLabels(ctx context.Context, svc *gmail.Service) ([]Label, error) {
	resp, err := svc.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", google.WrapError(err))
	}
	labels := make([]Label, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		labels = append(labels, Label{ID: l.Id, Name: l.Name})
	}
	return labels, nil
}

// Draft is a created draft.
type Draft struct {
	ID        string `json:"id" yaml:"id"`
	MessageID string `json:"messageId" yaml:"messageId"`
}

// CreateDraft saves a plain text draft addressed to to.
func CreateDraft(ctx context.Context, svc *gmail.Service, to, subject, body string) (*Draft, error) {
	draft, err := svc.Users.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: encodeMessage(to, subject, body)},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create draft: %w", google.WrapError(err))
	}
	out := &Draft{ID: draft.Id}
	if draft.Message != nil {
		out.MessageID = draft.Message.Id
	}
	return out, nil
}

// encodeMessage builds an RFC 2822 message in the URL-safe base64 form the API expects.
func encodeMessage(to, subject, body string) string {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// Register adds the Gmail samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		catalog.Entry{
			Sample: domain.Sample{
				Name:    "gmail.quickstart",
				API:     domain.APIGmail,
				Summary: "List the labels in your mailbox",
				Scopes:  []string{google.ScopeGmailReadonly},
				Auth:    domain.AuthUser,
			},
			Run: func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
				svc, err := env.Clients.Gmail(ctx)
				if err != nil {
					return nil, err
				}
				return ListLabels(ctx, svc)
			},
		},
		catalog.Entry{
			Sample: domain.Sample{
				Name:    "gmail.create-draft",
				API:     domain.APIGmail,
				Summary: "Save a plain text draft",
				Scopes:  []string{google.ScopeGmailCompose},
				Auth:    domain.AuthUser,
				Args: []domain.ArgSpec{
					{Name: "to", Description: "recipient address", Required: true},
					{Name: "subject", Description: "subject line", Default: "Automated draft"},
					{Name: "body", Description: "message text", Default: "This is automated draft mail"},
				},
			},
			Run: func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Gmail(ctx)
				if err != nil {
					return nil, err
				}
				return CreateDraft(ctx, svc, args.Get("to"), args.Get("subject"), args.Get("body"))
			},
		},
	)
}
