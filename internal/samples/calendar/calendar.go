// Package calendar holds the Google Calendar v3 quickstart and an event snippet.
package calendar

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Event is an upcoming calendar event. Start is a date for all-day events.
type Event struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Summary  string `json:"summary" yaml:"summary"`
	Start    string `json:"start" yaml:"start"`
	HTMLLink string `json:"htmlLink,omitempty" yaml:"htmlLink,omitempty"`
}

// ListUpcomingEvents returns the next maxResults events of the primary calendar.
func ListUpcomingEvents(ctx context.Context, svc *calendar.Service, now time.Time, maxResults int64) ([]Event, error) {
	resp, err := svc.Events.List("primary").
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(now.Format(time.RFC3339)).
		MaxResults(maxResults).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", google.WrapError(err))
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, Event{ID: item.Id, Summary: item.Summary, Start: startOf(item)})
	}
	return events, nil
}

// CreateEvent adds an event to the primary calendar.
func CreateEvent(ctx context.Context, svc *calendar.Service, summary string, start time.Time, length time.Duration) (*Event, error) {
	created, err := svc.Events.Insert("primary", &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: start.Add(length).Format(time.RFC3339)},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", google.WrapError(err))
	}
	return &Event{ID: created.Id, Summary: created.Summary, Start: startOf(created), HTMLLink: created.HtmlLink}, nil
}

func startOf(e *calendar.Event) string {
	if e.Start == nil {
		return ""
	}
	if e.Start.DateTime != "" {
		return e.Start.DateTime
	}
	return e.Start.Date
}

// Register adds the Calendar samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		catalog.Entry{
			Sample: domain.Sample{
				Name:    "calendar.quickstart",
				API:     domain.APICalendar,
				Summary: "List the next 10 events on your primary calendar",
				Scopes:  []string{google.ScopeCalendarReadonly},
				Args:    []domain.ArgSpec{{Name: "max", Description: "number of events", Default: "10"}},
			},
			Run: func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				n, err := strconv.ParseInt(args.Get("max"), 10, 64)
				if err != nil || n <= 0 {
					return nil, fmt.Errorf("%w: max must be a positive number", domain.ErrInvalidInput)
				}
				svc, err := env.Clients.Calendar(ctx)
				if err != nil {
					return nil, err
				}
				return ListUpcomingEvents(ctx, svc, env.Time(), n)
			},
		},
		catalog.Entry{
			Sample: domain.Sample{
				Name:    "calendar.create-event",
				API:     domain.APICalendar,
				Summary: "Add an event to your primary calendar",
				Scopes:  []string{google.ScopeCalendar},
				Args: []domain.ArgSpec{
					{Name: "summary", Description: "event title", Default: "Google I/O"},
					{Name: "start", Description: "RFC 3339 start time, defaults to an hour from now"},
					{Name: "duration", Description: "event length", Default: "1h"},
				},
			},
			Run: func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				start := env.Time().Add(time.Hour).Truncate(time.Minute)
				if s := args.Get("start"); s != "" {
					t, err := time.Parse(time.RFC3339, s)
					if err != nil {
						return nil, fmt.Errorf("%w: start: %v", domain.ErrInvalidInput, err)
					}
					start = t
				}
				length, err := time.ParseDuration(args.Get("duration"))
				if err != nil || length <= 0 {
					return nil, fmt.Errorf("%w: duration must be positive, e.g. 30m", domain.ErrInvalidInput)
				}
				svc, err := env.Clients.Calendar(ctx)
				if err != nil {
					return nil, err
				}
				return CreateEvent(ctx, svc, args.Get("summary"), start, length)
			},
		},
	)
}
