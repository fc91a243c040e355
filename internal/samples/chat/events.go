package chat

import (
	"context"
	"fmt"

	"google.golang.org/api/chat/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// DefaultEventFilter selects new memberships and messages.
const DefaultEventFilter = `event_types:"google.workspace.chat.membership.v1.created" OR ` +
	`event_types:"google.workspace.chat.message.v1.created"`

// SpaceEvent is one entry of a space's event log.
type SpaceEvent struct {
	Name      string `json:"name" yaml:"name"`
	EventType string `json:"eventType" yaml:"eventType"`
	EventTime string `json:"eventTime" yaml:"eventTime"`
}

// ListSpaceEvents returns the events of space matching filter. The API
// requires a filter naming at least one event type.
func ListSpaceEvents(
	ctx context.Context, svc *chat.Service, limiter *google.RateLimiter, space, filter string,
) ([]SpaceEvent, error) {
	if filter == "" {
		filter = DefaultEventFilter
	}

	var events []SpaceEvent
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		resp, err := svc.Spaces.SpaceEvents.List(space).Filter(filter).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, e := range resp.SpaceEvents {
			events = append(events, fromEvent(e))
		}
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list space events: %w", err)
	}
	return events, nil
}

func fromEvent(e *chat.SpaceEvent) SpaceEvent {
	return SpaceEvent{Name: e.Name, EventType: e.EventType, EventTime: e.EventTime}
}
