package forms

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var (
	argForm  = domain.ArgSpec{Name: "form-id", Description: "target form", Required: true}
	argWatch = domain.ArgSpec{Name: "watch-id", Description: "watch to act on", Required: true}
)

type serviceRun func(ctx context.Context, svc *forms.Service, env catalog.Env, args domain.Args) (any, error)

// Register adds the Forms samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		entry("forms.create-form", "Create a form with one question",
			[]string{google.ScopeFormsBody},
			[]domain.ArgSpec{{Name: "title", Description: "form title", Default: "My new quiz"}},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				return CreateForm(ctx, svc, args.Get("title"))
			})),
		entry("forms.get-form", "Get a form and its items",
			[]string{google.ScopeFormsBodyReadonly},
			[]domain.ArgSpec{argForm},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				return GetForm(ctx, svc, args.Get("form-id"))
			})),
		entry("forms.list-responses", "List the responses of a form",
			[]string{google.ScopeFormsResponsesReadonly},
			[]domain.ArgSpec{argForm},
			withService(func(ctx context.Context, svc *forms.Service, env catalog.Env, args domain.Args) (any, error) {
				return ListResponses(ctx, svc, env.Clients.Limiter(google.ServiceForms), args.Get("form-id"))
			})),
		entry("forms.get-response", "Get one response",
			[]string{google.ScopeFormsResponsesReadonly},
			[]domain.ArgSpec{argForm, {Name: "response-id", Description: "response to read", Required: true}},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				return GetResponse(ctx, svc, args.Get("form-id"), args.Get("response-id"))
			})),
		entry("forms.create-watch", "Send form events to a Pub/Sub topic",
			[]string{google.ScopeFormsResponsesReadonly},
			[]domain.ArgSpec{
				argForm,
				{Name: "topic", Description: "projects/<project>/topics/<topic>", Required: true},
				{Name: "event-type", Description: "RESPONSES or SCHEMA", Default: EventResponses},
			},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				return CreateWatch(ctx, svc, args.Get("form-id"), args.Get("topic"), args.Get("event-type"))
			})),
		entry("forms.list-watches", "List the watches on a form",
			[]string{google.ScopeFormsResponsesReadonly},
			[]domain.ArgSpec{argForm},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				return ListWatches(ctx, svc, args.Get("form-id"))
			})),
		entry("forms.renew-watch", "Extend a watch by seven days",
			[]string{google.ScopeFormsResponsesReadonly},
			[]domain.ArgSpec{argForm, argWatch},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				return RenewWatch(ctx, svc, args.Get("form-id"), args.Get("watch-id"))
			})),
		entry("forms.delete-watch", "Delete a watch",
			[]string{google.ScopeFormsResponsesReadonly},
			[]domain.ArgSpec{argForm, argWatch},
			withService(func(ctx context.Context, svc *forms.Service, _ catalog.Env, args domain.Args) (any, error) {
				if err := DeleteWatch(ctx, svc, args.Get("form-id"), args.Get("watch-id")); err != nil {
					return nil, err
				}
				return map[string]string{"deleted": args.Get("watch-id")}, nil
			})),
		entry("forms.update-publish-settings", "Publish a form and open or close it for responses",
			[]string{google.ScopeFormsBody},
			[]domain.ArgSpec{
				argForm,
				{Name: "published", Description: "true or false", Default: "true"},
				{Name: "accepting-responses", Description: "true or false", Default: "true"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				published, err := strconv.ParseBool(args.Get("published"))
				if err != nil {
					return nil, fmt.Errorf("%w: published must be true or false", domain.ErrInvalidInput)
				}
				accepting, err := strconv.ParseBool(args.Get("accepting-responses"))
				if err != nil {
					return nil, fmt.Errorf("%w: accepting-responses must be true or false", domain.ErrInvalidInput)
				}
				return UpdatePublishSettings(ctx, env.Clients, args.Get("form-id"), PublishSettings{
					IsPublished:          published,
					IsAcceptingResponses: accepting,
				})
			}),
	)
}

func withService(run serviceRun) catalog.RunFunc {
	return func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
		svc, err := env.Clients.Forms(ctx)
		if err != nil {
			return nil, err
		}
		return run(ctx, svc, env, args)
	}
}

func entry(name, summary string, scopes []string, args []domain.ArgSpec, run catalog.RunFunc) catalog.Entry {
	return catalog.Entry{
		Sample: domain.Sample{Name: name, API: domain.APIForms, Summary: summary, Scopes: scopes, Args: args},
		Run:    run,
	}
}
