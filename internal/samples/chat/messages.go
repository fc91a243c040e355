package chat

import (
	"context"
	"fmt"

	"google.golang.org/api/chat/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Message is the subset of message fields the samples print.
type Message struct {
	Name       string `json:"name" yaml:"name"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	CreateTime string `json:"createTime,omitempty" yaml:"createTime,omitempty"`
}

// CreateMessage posts a text message to space.
func CreateMessage(ctx context.Context, svc *chat.Service, space, text string) (*Message, error) {
	m, err := svc.Spaces.Messages.Create(space, &chat.Message{Text: text}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create message: %w", google.WrapError(err))
	}
	return &Message{Name: m.Name, Text: m.Text, CreateTime: m.CreateTime}, nil
}

// ListMessages returns every message of space.
func ListMessages(ctx context.Context, svc *chat.Service, limiter *google.RateLimiter, space string) ([]Message, error) {
	var messages []Message
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		resp, err := svc.Spaces.Messages.List(space).PageSize(100).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, m := range resp.Messages {
			messages = append(messages, Message{Name: m.Name, Text: m.Text, CreateTime: m.CreateTime})
		}
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// Reaction is an emoji reaction on a message.
type Reaction struct {
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
	User  string `json:"user,omitempty" yaml:"user,omitempty"`
}

func fromReaction(r *chat.Reaction) Reaction {
	out := Reaction{Name: r.Name}
	if r.Emoji != nil {
		out.Emoji = r.Emoji.Unicode
	}
	if r.User != nil {
		out.User = r.User.Name
	}
	return out
}

// CreateReaction adds an emoji reaction to message.
func CreateReaction(ctx context.Context, svc *chat.Service, message, emoji string) (*Reaction, error) {
	r, err := svc.Spaces.Messages.Reactions.Create(message, &chat.Reaction{
		Emoji: &chat.Emoji{Unicode: emoji},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create reaction: %w", google.WrapError(err))
	}
	out := fromReaction(r)
	return &out, nil
}

// ListReactions returns the reactions on message, optionally filtered
// (for example `emoji.unicode = "🙂"`).
func ListReactions(
	ctx context.Context, svc *chat.Service, limiter *google.RateLimiter, message, filter string,
) ([]Reaction, error) {
	var reactions []Reaction
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		call := svc.Spaces.Messages.Reactions.List(message).PageSize(100).PageToken(pageToken)
		if filter != "" {
			call = call.Filter(filter)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, r := range resp.Reactions {
			reactions = append(reactions, fromReaction(r))
		}
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return reactions, nil
}
