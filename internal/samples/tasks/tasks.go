// Package tasks holds the Tasks v1 quickstart.
package tasks

import (
	"context"
	"fmt"

	"google.golang.org/api/tasks/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// TaskList is one of the user's task lists.
type TaskList struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// ListTaskLists returns the first maxResults task lists.
func ListTaskLists(ctx context.Context, svc *tasks.Service, maxResults int64) ([]TaskList, error) {
	resp, err := svc.Tasklists.List().MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", google.WrapError(err))
	}
	lists := make([]TaskList, 0, len(resp.Items))
	for _, l := range resp.Items {
		lists = append(lists, TaskList{ID: l.Id, Title: l.Title})
	}
	return lists, nil
}

// Register adds the Tasks samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(catalog.Entry{
		Sample: domain.Sample{
			Name:    "tasks.quickstart",
			API:     domain.APITasks,
			Summary: "List your first 10 task lists",
			Scopes:  []string{google.ScopeTasksReadonly},
			Auth:    domain.AuthUser,
		},
		Run: func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
			svc, err := env.Clients.Tasks(ctx)
			if err != nil {
				return nil, err
			}
			return ListTaskLists(ctx, svc, 10)
		},
	})
}
