package forms

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/forms/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/samples/samplestest"
)

func newService(t *testing.T, fake *samplestest.Server) *forms.Service {
	t.Helper()
	svc, err := fake.Clients().Forms(context.Background())
	require.NoError(t, err)
	return svc
}

func TestCreateForm(t *testing.T) {
	fake := samplestest.NewServer(t).
		JSON(http.MethodPost, "/v1/forms", map[string]any{
			"formId": "f-1", "responderUri": "https://docs.google.com/forms/f-1/viewform",
			"info": map[string]string{"title": "Quiz"},
		}).
		JSON(http.MethodPost, "f-1:batchUpdate", map[string]any{"replies": []any{map[string]any{}}})

	form, err := CreateForm(context.Background(), newService(t, fake), "Quiz")

	require.NoError(t, err)
	assert.Equal(t, "f-1", form.FormID)
	assert.Equal(t, "Quiz", form.Title)
	require.Len(t, form.Items, 1)

	req, ok := fake.Last(http.MethodPost, "f-1:batchUpdate")
	require.True(t, ok)
	var body struct {
		Requests []struct {
			CreateItem struct {
				Location map[string]any `json:"location"`
				Item     struct {
					QuestionItem struct {
						Question struct {
							ChoiceQuestion struct {
								Type    string `json:"type"`
								Options []struct {
									Value string `json:"value"`
								} `json:"options"`
							} `json:"choiceQuestion"`
						} `json:"question"`
					} `json:"questionItem"`
				} `json:"item"`
			} `json:"createItem"`
		} `json:"requests"`
	}
	samplestest.Decode(t, req, &body)
	item := body.Requests[0].CreateItem
	assert.Equal(t, map[string]any{"index": float64(0)}, item.Location)
	assert.Equal(t, "RADIO", item.Item.QuestionItem.Question.ChoiceQuestion.Type)
	assert.Len(t, item.Item.QuestionItem.Question.ChoiceQuestion.Options, 4)
}

func TestCreateForm_BatchUpdateFails(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "/v1/forms", map[string]any{"formId": "f-1"})

	_, err := CreateForm(context.Background(), newService(t, fake), "Quiz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "add question")
	assert.True(t, google.IsNotFound(err))
}

func TestGetForm(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodGet, "/v1/forms/f-1", map[string]any{
		"formId": "f-1",
		"info":   map[string]string{"title": "Quiz"},
		"items":  []map[string]string{{"itemId": "i1", "title": "Q1"}, {"itemId": "i2", "title": "Q2"}},
	})

	form, err := GetForm(context.Background(), newService(t, fake), "f-1")

	require.NoError(t, err)
	assert.Equal(t, &Form{FormID: "f-1", Title: "Quiz", Items: []string{"Q1", "Q2"}}, form)
}

func TestResponses(t *testing.T) {
	response := func(id, at, answer string) map[string]any {
		return map[string]any{
			"responseId":        id,
			"lastSubmittedTime": at,
			"answers": map[string]any{
				"q1": map[string]any{
					"questionId":  "q1",
					"textAnswers": map[string]any{"answers": []map[string]string{{"value": answer}}},
				},
			},
		}
	}
	fake := samplestest.NewServer(t).
		JSON(http.MethodGet, "/responses/r-1", response("r-1", "2024-01-01T00:00:00Z", "1969")).
		JSON(http.MethodGet, "/v1/forms/f-1/responses", map[string]any{
			"responses": []any{
				response("r-2", "2024-02-01T00:00:00Z", "1971"),
				response("r-1", "2024-01-01T00:00:00Z", "1969"),
			},
		})
	svc := newService(t, fake)

	list, err := ListResponses(context.Background(), svc, google.Unlimited(), "f-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r-1", list[0].ResponseID)
	assert.Equal(t, map[string][]string{"q1": {"1969"}}, list[0].Answers)

	one, err := GetResponse(context.Background(), svc, "f-1", "r-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", one.LastSubmittedTime)
}

func TestWatches(t *testing.T) {
	watch := map[string]any{
		"id":         "w-1",
		"eventType":  EventResponses,
		"state":      "ACTIVE",
		"expireTime": "2024-01-08T00:00:00Z",
		"target":     map[string]any{"topic": map[string]string{"topicName": "projects/p/topics/t"}},
	}
	fake := samplestest.NewServer(t).
		JSON(http.MethodPost, "/watches/w-1:renew", watch).
		JSON(http.MethodPost, "/v1/forms/f-1/watches", watch).
		JSON(http.MethodGet, "/v1/forms/f-1/watches", map[string]any{"watches": []any{watch}}).
		JSON(http.MethodDelete, "/v1/forms/f-1/watches/w-1", map[string]any{})
	svc := newService(t, fake)
	ctx := context.Background()
	want := Watch{ID: "w-1", EventType: EventResponses, Topic: "projects/p/topics/t", ExpireTime: "2024-01-08T00:00:00Z", State: "ACTIVE"}

	created, err := CreateWatch(ctx, svc, "f-1", "projects/p/topics/t", EventResponses)
	require.NoError(t, err)
	assert.Equal(t, want, *created)
	req, _ := fake.Last(http.MethodPost, "/v1/forms/f-1/watches")
	assert.Contains(t, string(req.Body), `"topicName":"projects/p/topics/t"`)

	list, err := ListWatches(ctx, svc, "f-1")
	require.NoError(t, err)
	assert.Equal(t, []Watch{want}, list)

	renewed, err := RenewWatch(ctx, svc, "f-1", "w-1")
	require.NoError(t, err)
	assert.Equal(t, "w-1", renewed.ID)

	require.NoError(t, DeleteWatch(ctx, svc, "f-1", "w-1"))
	_, ok := fake.Last(http.MethodDelete, "/watches/w-1")
	assert.True(t, ok)
}

func TestUpdatePublishSettings(t *testing.T) {
	fake := samplestest.NewServer(t).Handle(http.MethodPost, "f-1:setPublishSettings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forms/f-1:setPublishSettings", r.URL.Path)
		samplestest.WriteJSON(w, http.StatusOK, map[string]any{
			"formId": "f-1",
			"publishSettings": map[string]any{
				"publishState": map[string]bool{"isPublished": true, "isAcceptingResponses": false},
			},
		})
	})

	got, err := UpdatePublishSettings(context.Background(), fake.Clients(), "f-1",
		PublishSettings{IsPublished: true, IsAcceptingResponses: false})

	require.NoError(t, err)
	assert.Equal(t, &PublishSettings{IsPublished: true}, got)
	req, _ := fake.Last(http.MethodPost, "f-1:setPublishSettings")
	var body map[string]any
	samplestest.Decode(t, req, &body)
	assert.Equal(t, "publishState", body["updateMask"])
	assert.Equal(t, map[string]any{
		"publishState": map[string]any{"isPublished": true, "isAcceptingResponses": false},
	}, body["publishSettings"])
}

func TestRegister(t *testing.T) {
	r := catalog.NewRegistry()
	Register(r)
	assert.Len(t, r.List(domain.APIForms), 9)

	e, err := r.Get("forms.update-publish-settings")
	require.NoError(t, err)
	_, err = e.Run(context.Background(), samplestest.NewServer(t).Env(), domain.Args{
		"form-id": "f-1", "published": "maybe", "accepting-responses": "true",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
