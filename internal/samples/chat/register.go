package chat

import (
	"context"

	"google.golang.org/api/chat/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var (
	argSpace   = domain.ArgSpec{Name: "space", Description: `space name, e.g. "spaces/AAAA"`, Required: true}
	argMessage = domain.ArgSpec{Name: "message", Description: `message name, e.g. "spaces/AAAA/messages/BBBB"`, Required: true}
)

type serviceRun func(ctx context.Context, svc *chat.Service, env catalog.Env, args domain.Args) (any, error)

// Register adds the Chat samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		entry("chat.quickstart", "List the spaces you are a member of", domain.AuthUser,
			[]string{google.ScopeChatSpacesReadonly}, nil,
			withService(func(ctx context.Context, svc *chat.Service, env catalog.Env, _ domain.Args) (any, error) {
				return Quickstart(ctx, svc, env.Clients.Limiter(google.ServiceChat))
			})),
		entry("chat.get-space", "Get a space", domain.AuthAny,
			[]string{google.ScopeChatSpacesReadonly}, []domain.ArgSpec{argSpace},
			withService(func(ctx context.Context, svc *chat.Service, _ catalog.Env, args domain.Args) (any, error) {
				return GetSpace(ctx, svc, args.Get("space"))
			})),
		entry("chat.create-message", "Post a text message to a space", domain.AuthAny,
			[]string{google.ScopeChatMessagesCreate},
			[]domain.ArgSpec{argSpace, {Name: "text", Description: "message text", Default: "Hello, world!"}},
			withService(func(ctx context.Context, svc *chat.Service, _ catalog.Env, args domain.Args) (any, error) {
				return CreateMessage(ctx, svc, args.Get("space"), args.Get("text"))
			})),
		entry("chat.list-messages", "List the messages of a space", domain.AuthUser,
			[]string{google.ScopeChatMessagesReadonly}, []domain.ArgSpec{argSpace},
			withService(func(ctx context.Context, svc *chat.Service, env catalog.Env, args domain.Args) (any, error) {
				return ListMessages(ctx, svc, env.Clients.Limiter(google.ServiceChat), args.Get("space"))
			})),
		entry("chat.list-memberships", "List the members of a space", domain.AuthAny,
			[]string{google.ScopeChatMembershipsRead}, []domain.ArgSpec{argSpace},
			withService(func(ctx context.Context, svc *chat.Service, env catalog.Env, args domain.Args) (any, error) {
				return ListMemberships(ctx, svc, env.Clients.Limiter(google.ServiceChat), args.Get("space"))
			})),
		entry("chat.create-membership", "Invite a user to a space", domain.AuthUser,
			[]string{google.ScopeChatMemberships},
			[]domain.ArgSpec{argSpace, {Name: "user", Description: `user name, e.g. "users/123"`, Required: true}},
			withService(func(ctx context.Context, svc *chat.Service, _ catalog.Env, args domain.Args) (any, error) {
				return CreateMembership(ctx, svc, args.Get("space"), args.Get("user"))
			})),
		entry("chat.create-reaction", "React to a message", domain.AuthUser,
			[]string{google.ScopeChatMessagesReactions},
			[]domain.ArgSpec{argMessage, {Name: "emoji", Description: "unicode emoji", Default: "🙂"}},
			withService(func(ctx context.Context, svc *chat.Service, _ catalog.Env, args domain.Args) (any, error) {
				return CreateReaction(ctx, svc, args.Get("message"), args.Get("emoji"))
			})),
		entry("chat.list-reactions", "List the reactions on a message", domain.AuthUser,
			[]string{google.ScopeChatMessagesReactions},
			[]domain.ArgSpec{argMessage, {Name: "filter", Description: "reaction filter"}},
			withService(func(ctx context.Context, svc *chat.Service, env catalog.Env, args domain.Args) (any, error) {
				return ListReactions(ctx, svc, env.Clients.Limiter(google.ServiceChat), args.Get("message"), args.Get("filter"))
			})),
		entry("chat.list-space-events", "List membership and message events of a space", domain.AuthUser,
			[]string{google.ScopeChatMessagesReadonly, google.ScopeChatMembershipsRead},
			[]domain.ArgSpec{argSpace, {Name: "filter", Description: "event type filter", Default: DefaultEventFilter}},
			withService(func(ctx context.Context, svc *chat.Service, env catalog.Env, args domain.Args) (any, error) {
				return ListSpaceEvents(ctx, svc, env.Clients.Limiter(google.ServiceChat), args.Get("space"), args.Get("filter"))
			})),
		entry("chat.update-space-notification-setting", "Change how you are notified about a space", domain.AuthUser,
			[]string{google.ScopeChatUsersSpaceSettings},
			[]domain.ArgSpec{
				argSpace,
				{Name: "notification", Description: "ALL, MAIN_CONVERSATIONS, FOR_YOU or OFF", Default: "ALL"},
				{Name: "mute", Description: "UNMUTED or MUTED"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				return UpdateSpaceNotificationSetting(ctx, env.Clients, args.Get("space"), args.Get("notification"), args.Get("mute"))
			}),
	)
}

func withService(run serviceRun) catalog.RunFunc {
	return func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
		svc, err := env.Clients.Chat(ctx)
		if err != nil {
			return nil, err
		}
		return run(ctx, svc, env, args)
	}
}

func entry(name, summary string, auth domain.AuthMode, scopes []string, args []domain.ArgSpec, run catalog.RunFunc) catalog.Entry {
	return catalog.Entry{
		Sample: domain.Sample{Name: name, API: domain.APIChat, Summary: summary, Scopes: scopes, Args: args, Auth: auth},
		Run:    run,
	}
}
