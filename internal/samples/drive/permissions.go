package drive

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// ShareFile grants write access to user and read access to everyone in
// domain, and returns the created permission IDs. Either may be empty.
// Permissions are created one after another; the first failure stops the sample.
func ShareFile(ctx context.Context, svc *drive.Service, fileID, user, domain string) ([]string, error) {
	var perms []*drive.Permission
	if user != "" {
		perms = append(perms, &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: user,
		})
	}
	if domain != "" {
		perms = append(perms, &drive.Permission{
			Type:   "domain",
			Role:   "reader",
			Domain: domain,
		})
	}

	ids := make([]string, 0, len(perms))
	for _, p := range perms {
		created, err := svc.Permissions.Create(fileID, p).Fields("id").Context(ctx).Do()
		if err != nil {
			return ids, fmt.Errorf("create %s permission: %w", p.Type, google.WrapError(err))
		}
		ids = append(ids, created.Id)
	}
	return ids, nil
}
