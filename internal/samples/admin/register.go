package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var argMax = domain.ArgSpec{Name: "max", Description: "maximum number of results", Default: "10"}

// Register adds the Admin SDK samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		entry("admin.list-users", "List the first users of the domain (Directory API)",
			[]string{google.ScopeAdminDirectoryUserReadonly},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				limit, err := maxArg(args)
				if err != nil {
					return nil, err
				}
				svc, err := env.Clients.Directory(ctx)
				if err != nil {
					return nil, err
				}
				return ListUsers(ctx, svc, limit)
			}),
		entry("admin.list-login-activities", "List recent login events (Reports API)",
			[]string{google.ScopeAdminReportsAuditReadonly},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				limit, err := maxArg(args)
				if err != nil {
					return nil, err
				}
				svc, err := env.Clients.Reports(ctx)
				if err != nil {
					return nil, err
				}
				return ListLoginActivities(ctx, svc, limit)
			}),
		entry("admin.list-subscriptions", "List reseller subscriptions (Reseller API)",
			[]string{google.ScopeAppsOrder},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				limit, err := maxArg(args)
				if err != nil {
					return nil, err
				}
				svc, err := env.Clients.Reseller(ctx)
				if err != nil {
					return nil, err
				}
				return ListSubscriptions(ctx, svc, limit)
			}),
	)
}

func entry(name, summary string, scopes []string, run catalog.RunFunc) catalog.Entry {
	return catalog.Entry{
		Sample: domain.Sample{
			Name:    name,
			API:     domain.APIAdmin,
			Summary: summary,
			Scopes:  scopes,
			Args:    []domain.ArgSpec{argMax},
		},
		Run: run,
	}
}

func maxArg(args domain.Args) (int64, error) {
	n, err := strconv.ParseInt(args.Get("max"), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: max must be a positive number", domain.ErrInvalidInput)
	}
	return n, nil
}
