package forms

import (
	"context"
	"fmt"

	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Watch event types.
const (
	EventResponses = "RESPONSES"
	EventSchema    = "SCHEMA"
)

// Watch is a push notification subscription on a form.
type Watch struct {
	ID         string `json:"id" yaml:"id"`
	EventType  string `json:"eventType" yaml:"eventType"`
	Topic      string `json:"topic,omitempty" yaml:"topic,omitempty"`
	ExpireTime string `json:"expireTime,omitempty" yaml:"expireTime,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
}

func fromWatch(w *forms.Watch) Watch {
	out := Watch{ID: w.Id, EventType: w.EventType, ExpireTime: w.ExpireTime, State: w.State}
	if w.Target != nil && w.Target.Topic != nil {
		out.Topic = w.Target.Topic.TopicName
	}
	return out
}

// CreateWatch publishes eventType notifications for a form to a Cloud Pub/Sub topic.
func CreateWatch(ctx context.Context, svc *forms.Service, formID, topic, eventType string) (*Watch, error) {
	w, err := svc.Forms.Watches.Create(formID, &forms.CreateWatchRequest{
		Watch: &forms.Watch{
			EventType: eventType,
			Target: &forms.WatchTarget{
				Topic: &forms.CloudPubsubTopic{TopicName: topic},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create watch: %w", google.WrapError(err))
	}
	out := fromWatch(w)
	return &out, nil
}

// ListWatches returns the watches the caller owns on a form.
func ListWatches(ctx context.Context, svc *forms.Service, formID string) ([]Watch, error) {
	resp, err := svc.Forms.Watches.List(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list watches: %w", google.WrapError(err))
	}
	watches := make([]Watch, 0, len(resp.Watches))
	for _, w := range resp.Watches {
		watches = append(watches, fromWatch(w))
	}
	return watches, nil
}

// RenewWatch extends a watch by seven days.
func RenewWatch(ctx context.Context, svc *forms.Service, formID, watchID string) (*Watch, error) {
	w, err := svc.Forms.Watches.Renew(formID, watchID, &forms.RenewWatchRequest{}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("renew watch: %w", google.WrapError(err))
	}
	out := fromWatch(w)
	return &out, nil
}

// DeleteWatch removes a watch.
func DeleteWatch(ctx context.Context, svc *forms.Service, formID, watchID string) error {
	if _, err := svc.Forms.Watches.Delete(formID, watchID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete watch: %w", google.WrapError(err))
	}
	return nil
}
