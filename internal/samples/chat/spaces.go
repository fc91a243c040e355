package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/chat/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Space is the subset of space fields the samples print.
type Space struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	SpaceType   string `json:"spaceType,omitempty" yaml:"spaceType,omitempty"`
}

func fromSpace(s *chat.Space) Space {
	return Space{Name: s.Name, DisplayName: s.DisplayName, SpaceType: s.SpaceType}
}

// Quickstart lists every space the caller is a member of.
func Quickstart(ctx context.Context, svc *chat.Service, limiter *google.RateLimiter) ([]Space, error) {
	var spaces []Space
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		resp, err := svc.Spaces.List().PageSize(100).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, s := range resp.Spaces {
			spaces = append(spaces, fromSpace(s))
		}
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return spaces, nil
}

// GetSpace returns one space.
func GetSpace(ctx context.Context, svc *chat.Service, name string) (*Space, error) {
	s, err := svc.Spaces.Get(name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get space: %w", google.WrapError(err))
	}
	out := fromSpace(s)
	return &out, nil
}

// NotificationSetting is a user's notification preference for a space.
type NotificationSetting struct {
	Name                string `json:"name" yaml:"name"`
	NotificationSetting string `json:"notificationSetting,omitempty" yaml:"notificationSetting,omitempty"`
	MuteSetting         string `json:"muteSetting,omitempty" yaml:"muteSetting,omitempty"`
}

// UpdateSpaceNotificationSetting changes how the calling user is notified
// about space. It only works with user credentials.
func UpdateSpaceNotificationSetting(
	ctx context.Context, clients *google.Clients, space, notification, mute string,
) (*NotificationSetting, error) {
	spaceID := strings.TrimPrefix(space, "spaces/")
	name := "users/me/spaces/" + spaceID + "/spaceNotificationSetting"

	var mask []string
	body := NotificationSetting{Name: name}
	if notification != "" {
		body.NotificationSetting = notification
		mask = append(mask, "notificationSetting")
	}
	if mute != "" {
		body.MuteSetting = mute
		mask = append(mask, "muteSetting")
	}
	if len(mask) == 0 {
		return nil, fmt.Errorf("update notification setting: nothing to change")
	}

	path := "v1/" + name + "?updateMask=" + url.QueryEscape(strings.Join(mask, ","))
	var out NotificationSetting
	if err := clients.Call(ctx, google.ServiceChat, http.MethodPatch, path, body, &out); err != nil {
		return nil, fmt.Errorf("update notification setting: %w", err)
	}
	return &out, nil
}
