package drive

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// SharedDrive is the subset of shared drive metadata the samples print.
type SharedDrive struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// CreateSharedDrive creates a shared drive and returns its ID. The request
// ID makes the call idempotent if it has to be repeated by hand.
func CreateSharedDrive(ctx context.Context, svc *drive.Service, name string) (string, error) {
	created, err := svc.Drives.Create(uuid.NewString(), &drive.Drive{Name: name}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create shared drive: %w", google.WrapError(err))
	}
	return created.Id, nil
}

// RecoverSharedDrives finds shared drives without an organizer and adds
// user as organizer to each. It requires domain administrator access.
func RecoverSharedDrives(
	ctx context.Context, svc *drive.Service, limiter *google.RateLimiter, user string,
) ([]SharedDrive, error) {
	var orphaned []SharedDrive
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		page, err := svc.Drives.List().
			Q("organizerCount = 0").
			Fields("nextPageToken, drives(id, name)").
			UseDomainAdminAccess(true).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return "", err
		}
		for _, d := range page.Drives {
			orphaned = append(orphaned, SharedDrive{ID: d.Id, Name: d.Name})
		}
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list orphaned drives: %w", err)
	}

	for _, d := range orphaned {
		_, err := svc.Permissions.Create(d.ID, &drive.Permission{
			Type:         "user",
			Role:         "organizer",
			EmailAddress: user,
		}).UseDomainAdminAccess(true).SupportsAllDrives(true).Fields("id").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("add organizer to %s: %w", d.ID, google.WrapError(err))
		}
	}
	return orphaned, nil
}
