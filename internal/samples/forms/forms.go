package forms

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Form is the subset of form fields the samples print.
type Form struct {
	FormID       string   `json:"formId" yaml:"formId"`
	Title        string   `json:"title" yaml:"title"`
	ResponderURI string   `json:"responderUri,omitempty" yaml:"responderUri,omitempty"`
	Items        []string `json:"items,omitempty" yaml:"items,omitempty"`
}

func fromAPI(f *forms.Form) *Form {
	out := &Form{FormID: f.FormId, ResponderURI: f.ResponderUri}
	if f.Info != nil {
		out.Title = f.Info.Title
	}
	for _, item := range f.Items {
		out.Items = append(out.Items, item.Title)
	}
	return out
}

// CreateForm creates a form and adds a single radio question to it. New
// forms only accept a title, so the question needs a separate batchUpdate.
func CreateForm(ctx context.Context, svc *forms.Service, title string) (*Form, error) {
	created, err := svc.Forms.Create(&forms.Form{
		Info: &forms.Info{Title: title, DocumentTitle: title},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create form: %w", google.WrapError(err))
	}

	update := &forms.BatchUpdateFormRequest{
		Requests: []*forms.Request{{
			CreateItem: &forms.CreateItemRequest{
				Item: &forms.Item{
					Title: "In what year did the United States land a mission on the moon?",
					QuestionItem: &forms.QuestionItem{
						Question: &forms.Question{
							Required: true,
							ChoiceQuestion: &forms.ChoiceQuestion{
								Type:    "RADIO",
								Shuffle: true,
								Options: []*forms.Option{
									{Value: "1965"}, {Value: "1967"}, {Value: "1969"}, {Value: "1971"},
								},
							},
						},
					},
				},
				Location: &forms.Location{Index: 0, ForceSendFields: []string{"Index"}},
			},
		}},
	}
	if _, err := svc.Forms.BatchUpdate(created.FormId, update).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("add question: %w", google.WrapError(err))
	}

	out := fromAPI(created)
	out.Items = append(out.Items, update.Requests[0].CreateItem.Item.Title)
	return out, nil
}

// GetForm returns a form with its item titles.
func GetForm(ctx context.Context, svc *forms.Service, formID string) (*Form, error) {
	f, err := svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get form: %w", google.WrapError(err))
	}
	return fromAPI(f), nil
}

// PublishSettings is the publish state of a form.
type PublishSettings struct {
	IsPublished          bool `json:"isPublished" yaml:"isPublished"`
	IsAcceptingResponses bool `json:"isAcceptingResponses" yaml:"isAcceptingResponses"`
}

type publishRequest struct {
	PublishSettings struct {
		PublishState PublishSettings `json:"publishState"`
	} `json:"publishSettings"`
	UpdateMask string `json:"updateMask"`
}

type publishResponse struct {
	FormID          string `json:"formId"`
	PublishSettings struct {
		PublishState PublishSettings `json:"publishState"`
	} `json:"publishSettings"`
}

// UpdatePublishSettings publishes or unpublishes a form and controls
// whether it accepts responses.
func UpdatePublishSettings(ctx context.Context, clients *google.Clients, formID string, settings PublishSettings) (*PublishSettings, error) {
	var req publishRequest
	req.PublishSettings.PublishState = settings
	req.UpdateMask = "publishState"

	var resp publishResponse
	path := "v1/forms/" + formID + ":setPublishSettings"
	if err := clients.Call(ctx, google.ServiceForms, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("set publish settings: %w", err)
	}
	return &resp.PublishSettings.PublishState, nil
}
