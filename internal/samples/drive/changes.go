package drive

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Changes is the result of walking the change log.
type Changes struct {
	FileIDs           []string `json:"fileIds" yaml:"fileIds"`
	NewStartPageToken string   `json:"newStartPageToken" yaml:"newStartPageToken"`
}

// FetchStartPageToken returns the token for the current head of the change log.
func FetchStartPageToken(ctx context.Context, svc *drive.Service) (string, error) {
	tok, err := svc.Changes.GetStartPageToken().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get start page token: %w", google.WrapError(err))
	}
	return tok.StartPageToken, nil
}

// FetchChanges lists changed file IDs since savedToken and returns the
// token to resume from next time.
func FetchChanges(
	ctx context.Context, svc *drive.Service, limiter *google.RateLimiter, savedToken string,
) (*Changes, error) {
	result := &Changes{}
	pageToken := savedToken

	// The changes feed puts the cursor in the page token itself, so the
	// first request starts from savedToken rather than "".
	err := google.Paginate(ctx, limiter, func(string) (string, error) {
		page, err := svc.Changes.List(pageToken).Spaces("drive").Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, c := range page.Changes {
			result.FileIDs = append(result.FileIDs, c.FileId)
		}
		if page.NewStartPageToken != "" {
			result.NewStartPageToken = page.NewStartPageToken
		}
		pageToken = page.NextPageToken
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	return result, nil
}
