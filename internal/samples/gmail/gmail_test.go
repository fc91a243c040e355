package gmail

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/wsamples/internal/samples/samplestest"
)

func newService(t *testing.T, fake *samplestest.Server) *gmail.Service {
	t.Helper()
	svc, err := fake.Clients().Gmail(context.Background())
	require.NoError(t, err)
	return svc
}

func TestListLabels(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodGet, "/users/me/labels", map[string]any{
		"labels": []map[string]string{{"id": "INBOX", "name": "INBOX"}, {"id": "Label_1", "name": "Receipts"}},
	})

	labels, err := ListLabels(context.Background(), newService(t, fake))

	require.NoError(t, err)
	assert.Equal(t, []Label{{ID: "INBOX", Name: "INBOX"}, {ID: "Label_1", Name: "Receipts"}}, labels)
}

func TestListLabels_Empty(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodGet, "/users/me/labels", map[string]any{})

	labels, err := ListLabels(context.Background(), newService(t, fake))

	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestCreateDraft(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "/users/me/drafts", map[string]any{
		"id": "d-1", "message": map[string]string{"id": "m-1"},
	})

	draft, err := CreateDraft(context.Background(), newService(t, fake), "ada@example.com", "Hi", "Hello Ada")

	require.NoError(t, err)
	assert.Equal(t, &Draft{ID: "d-1", MessageID: "m-1"}, draft)

	req, _ := fake.Last(http.MethodPost, "/users/me/drafts")
	var body struct {
		Message struct {
			Raw string `json:"raw"`
		} `json:"message"`
	}
	samplestest.Decode(t, req, &body)
	raw, err := base64.URLEncoding.DecodeString(body.Message.Raw)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "To: ada@example.com\r\n")
	assert.Contains(t, string(raw), "Subject: Hi\r\n")
	assert.Contains(t, string(raw), "\r\n\r\nHello Ada")
}
