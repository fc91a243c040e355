package forms

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Response is a submitted form response with text answers keyed by question ID.
type Response struct {
	ResponseID        string              `json:"responseId" yaml:"responseId"`
	RespondentEmail   string              `json:"respondentEmail,omitempty" yaml:"respondentEmail,omitempty"`
	LastSubmittedTime string              `json:"lastSubmittedTime,omitempty" yaml:"lastSubmittedTime,omitempty"`
	Answers           map[string][]string `json:"answers,omitempty" yaml:"answers,omitempty"`
}

func fromResponse(r *forms.FormResponse) Response {
	out := Response{
		ResponseID:        r.ResponseId,
		RespondentEmail:   r.RespondentEmail,
		LastSubmittedTime: r.LastSubmittedTime,
	}
	for questionID, answer := range r.Answers {
		if answer.TextAnswers == nil {
			continue
		}
		if out.Answers == nil {
			out.Answers = make(map[string][]string)
		}
		for _, a := range answer.TextAnswers.Answers {
			out.Answers[questionID] = append(out.Answers[questionID], a.Value)
		}
	}
	return out
}

// ListResponses returns every response of a form, oldest first.
func ListResponses(ctx context.Context, svc *forms.Service, limiter *google.RateLimiter, formID string) ([]Response, error) {
	var responses []Response
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		resp, err := svc.Forms.Responses.List(formID).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return "", err
		}
		for _, r := range resp.Responses {
			responses = append(responses, fromResponse(r))
		}
		return resp.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].LastSubmittedTime < responses[j].LastSubmittedTime
	})
	return responses, nil
}

// GetResponse returns one response.
func GetResponse(ctx context.Context, svc *forms.Service, formID, responseID string) (*Response, error) {
	r, err := svc.Forms.Responses.Get(formID, responseID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get response: %w", google.WrapError(err))
	}
	out := fromResponse(r)
	return &out, nil
}
