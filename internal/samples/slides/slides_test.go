package slides

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/logger"
	"github.com/custodia-labs/wsamples/internal/samples/samplestest"
)

func newService(t *testing.T, fake *samplestest.Server) *slides.Service {
	t.Helper()
	svc, err := fake.Clients().Slides(context.Background())
	require.NoError(t, err)
	return svc
}

func mergeFake(t *testing.T, fake *samplestest.Server) MergeServices {
	t.Helper()
	svcs, err := mergeServices(context.Background(), fake.Env())
	require.NoError(t, err)
	return svcs
}

type batchBody struct {
	Requests []map[string]map[string]any `json:"requests"`
}

func lastBatch(t *testing.T, fake *samplestest.Server, presentationID string) batchBody {
	t.Helper()
	req, ok := fake.Last(http.MethodPost, presentationID+":batchUpdate")
	require.True(t, ok, "no batchUpdate for %s", presentationID)
	var body batchBody
	samplestest.Decode(t, req, &body)
	return body
}

func TestQuickstart(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodGet, "/presentations/p-1", map[string]any{
		"title": "Deck",
		"slides": []map[string]any{
			{"objectId": "s1", "pageElements": []map[string]any{{"objectId": "e1"}, {"objectId": "e2"}}},
			{"objectId": "s2"},
		},
	})

	summary, err := Quickstart(context.Background(), newService(t, fake), "p-1")

	require.NoError(t, err)
	assert.Equal(t, &Summary{
		Title:  "Deck",
		Slides: []SlideSummary{{ObjectID: "s1", Elements: 2}, {ObjectID: "s2", Elements: 0}},
	}, summary)
}

func TestCreatePresentation(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "/v1/presentations", map[string]string{"presentationId": "p-new"})

	id, err := CreatePresentation(context.Background(), newService(t, fake), "Title")

	require.NoError(t, err)
	assert.Equal(t, "p-new", id)
}

func TestCopyPresentation(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "/files/p-1/copy", map[string]string{"id": "p-copy"})

	id, err := CopyPresentation(context.Background(), mergeFake(t, fake).Drive, "p-1", "Copy Title")

	require.NoError(t, err)
	assert.Equal(t, "p-copy", id)
	req, _ := fake.Last(http.MethodPost, "/files/p-1/copy")
	assert.Contains(t, string(req.Body), `"name":"Copy Title"`)
}

func TestCreateSlide(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{
		"replies": []map[string]any{{"createSlide": map[string]string{"objectId": "MyNewSlide_001"}}},
	})

	id, err := CreateSlide(context.Background(), newService(t, fake), "p-1", "MyNewSlide_001")

	require.NoError(t, err)
	assert.Equal(t, "MyNewSlide_001", id)
	body := lastBatch(t, fake, "p-1")
	require.Len(t, body.Requests, 1)
	create := body.Requests[0]["createSlide"]
	assert.EqualValues(t, 1, create["insertionIndex"])
	assert.Equal(t, map[string]any{"predefinedLayout": "TITLE_AND_TWO_COLUMNS"}, create["slideLayoutReference"])
}

func TestCreateSlide_GeneratesID(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{"replies": []any{}})

	id, err := CreateSlide(context.Background(), newService(t, fake), "p-1", "")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "slide_"))
	assert.LessOrEqual(t, len(id), 50)
}

func TestCreateTextboxWithText(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{
		"replies": []map[string]any{{"createShape": map[string]string{"objectId": "box"}}, {}},
	})

	id, err := CreateTextboxWithText(context.Background(), newService(t, fake), "p-1", "page-1", "Hello")

	require.NoError(t, err)
	assert.Equal(t, "box", id)
	body := lastBatch(t, fake, "p-1")
	require.Len(t, body.Requests, 2)
	shape := body.Requests[0]["createShape"]
	assert.Equal(t, "TEXT_BOX", shape["shapeType"])
	assert.Equal(t, "page-1", shape["elementProperties"].(map[string]any)["pageObjectId"])
	insert := body.Requests[1]["insertText"]
	assert.Equal(t, "Hello", insert["text"])
	assert.Equal(t, shape["objectId"], insert["objectId"])
}

func TestCreateImage(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{
		"replies": []map[string]any{{"createImage": map[string]string{"objectId": "img"}}},
	})

	id, err := CreateImage(context.Background(), newService(t, fake), "p-1", "page-1", "https://example.com/logo.png")

	require.NoError(t, err)
	assert.Equal(t, "img", id)
	image := lastBatch(t, fake, "p-1").Requests[0]["createImage"]
	assert.Equal(t, "https://example.com/logo.png", image["url"])
}

func TestSimpleTextReplace(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{"replies": []any{}})

	err := SimpleTextReplace(context.Background(), newService(t, fake), "p-1", "shape-1", "New")

	require.NoError(t, err)
	body := lastBatch(t, fake, "p-1")
	require.Len(t, body.Requests, 2)
	assert.Equal(t, map[string]any{"type": "ALL"}, body.Requests[0]["deleteText"]["textRange"])
	assert.Equal(t, "New", body.Requests[1]["insertText"]["text"])
}

func TestTextStyleUpdate(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{"replies": []any{}})

	err := TextStyleUpdate(context.Background(), newService(t, fake), "p-1", "shape-1")

	require.NoError(t, err)
	body := lastBatch(t, fake, "p-1")
	require.Len(t, body.Requests, 3)
	first := body.Requests[0]["updateTextStyle"]
	assert.Equal(t, "bold,italic", first["fields"])
	// A zero start index must still be sent.
	assert.Equal(t, map[string]any{"type": "FIXED_RANGE", "startIndex": float64(0), "endIndex": float64(5)}, first["textRange"])
	assert.Equal(t, "link", body.Requests[2]["updateTextStyle"]["fields"])
}

func TestCreateBulletedText(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{"replies": []any{}})

	err := CreateBulletedText(context.Background(), newService(t, fake), "p-1", "shape-1")

	require.NoError(t, err)
	bullets := lastBatch(t, fake, "p-1").Requests[0]["createParagraphBullets"]
	assert.Equal(t, "BULLET_ARROW_DIAMOND_DISC", bullets["bulletPreset"])
}

func TestSheetsChart(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "p-1:batchUpdate", map[string]any{
		"replies": []map[string]any{{"createSheetsChart": map[string]string{"objectId": "chart-el"}}},
	})
	svc := newService(t, fake)

	id, err := CreateSheetsChart(context.Background(), svc, "p-1", "page-1", "ss-1", 42)
	require.NoError(t, err)
	assert.Equal(t, "chart-el", id)
	chart := lastBatch(t, fake, "p-1").Requests[0]["createSheetsChart"]
	assert.Equal(t, "LINKED", chart["linkingMode"])
	assert.EqualValues(t, 42, chart["chartId"])

	require.NoError(t, RefreshSheetsChart(context.Background(), svc, "p-1", id))
	refresh := lastBatch(t, fake, "p-1").Requests[0]["refreshSheetsChart"]
	assert.Equal(t, "chart-el", refresh["objectId"])
}

func TestTextMerging_SkipsFailedRecords(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	var copies atomic.Int32
	fake := samplestest.NewServer(t).
		JSON(http.MethodGet, "/values/Customers!A2:M6", map[string]any{
			"values": [][]any{
				{"Acme", "", "", "", "", "Case A", "", "", "", "", "", "$1M"},
				{"Broken", "", "", "", "", "Case B", "", "", "", "", "", "$2M"},
				{"Contoso", "", "", "", "", "Case C", "", "", "", "", "", "$3M"},
			},
		}).
		Handle(http.MethodPost, "/copy", func(w http.ResponseWriter, _ *http.Request) {
			n := copies.Add(1)
			if n == 2 {
				samplestest.WriteJSON(w, http.StatusForbidden, map[string]any{
					"error": map[string]any{"code": 403, "message": "quota exceeded"},
				})
				return
			}
			samplestest.WriteJSON(w, http.StatusOK, map[string]any{"id": "copy-" + string(rune('0'+n))})
		}).
		JSON(http.MethodPost, ":batchUpdate", map[string]any{
			"replies": []map[string]any{
				{"replaceAllText": map[string]int{"occurrencesChanged": 1}},
				{"replaceAllText": map[string]int{"occurrencesChanged": 2}},
				{"replaceAllText": map[string]int{"occurrencesChanged": 1}},
			},
		})

	results, err := TextMerging(context.Background(), mergeFake(t, fake), "template", "data")

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, Merged{Customer: "Acme", PresentationID: "copy-1", Replaced: 4}, results[0])
	assert.Equal(t, "Broken", results[1].Customer)
	assert.Empty(t, results[1].PresentationID)
	assert.Contains(t, results[1].Error, "quota exceeded")
	assert.Equal(t, Merged{Customer: "Contoso", PresentationID: "copy-3", Replaced: 4}, results[2])
	assert.Contains(t, logs.String(), `merge record "Broken"`)

	body := lastBatch(t, fake, "copy-3")
	var replaced []string
	for _, r := range body.Requests {
		replaced = append(replaced, r["replaceAllText"]["replaceText"].(string))
	}
	assert.ElementsMatch(t, []string{"Contoso", "Case C", "$3M"}, replaced)
}

func TestTextMerging_FailedFillKeepsCopyID(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	var copies atomic.Int32
	fake := samplestest.NewServer(t).
		JSON(http.MethodGet, "/values/Customers!A2:M6", map[string]any{
			"values": [][]any{
				{"Acme", "", "", "", "", "Case A", "", "", "", "", "", "$1M"},
				{"Contoso", "", "", "", "", "Case C", "", "", "", "", "", "$3M"},
			},
		}).
		Handle(http.MethodPost, "/copy", func(w http.ResponseWriter, _ *http.Request) {
			n := copies.Add(1)
			samplestest.WriteJSON(w, http.StatusOK, map[string]any{"id": "copy-" + string(rune('0'+n))})
		}).
		Handle(http.MethodPost, "copy-1:batchUpdate", func(w http.ResponseWriter, _ *http.Request) {
			samplestest.WriteJSON(w, http.StatusBadRequest, map[string]any{
				"error": map[string]any{"code": 400, "message": "invalid requests"},
			})
		}).
		JSON(http.MethodPost, ":batchUpdate", map[string]any{
			"replies": []map[string]any{{"replaceAllText": map[string]int{"occurrencesChanged": 1}}},
		})

	results, err := TextMerging(context.Background(), mergeFake(t, fake), "template", "data")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "copy-1", results[0].PresentationID)
	assert.Zero(t, results[0].Replaced)
	assert.Contains(t, results[0].Error, "invalid requests")
	assert.Equal(t, Merged{Customer: "Contoso", PresentationID: "copy-2", Replaced: 1}, results[1])
	assert.Contains(t, logs.String(), `merge record "Acme"`)
}

func TestImageMerging(t *testing.T) {
	fake := samplestest.NewServer(t).
		JSON(http.MethodPost, "/copy", map[string]string{"id": "copy-1"}).
		JSON(http.MethodPost, "copy-1:batchUpdate", map[string]any{
			"replies": []map[string]any{
				{"replaceAllShapesWithImage": map[string]int{"occurrencesChanged": 2}},
				{"replaceAllText": map[string]int{"occurrencesChanged": 1}},
			},
		})

	merged, err := ImageMerging(context.Background(), mergeFake(t, fake), "template", "https://example.com/logo.png", "Acme")

	require.NoError(t, err)
	assert.Equal(t, &Merged{Customer: "Acme", PresentationID: "copy-1", Replaced: 3}, merged)
	body := lastBatch(t, fake, "copy-1")
	assert.Equal(t, "CENTER_INSIDE", body.Requests[0]["replaceAllShapesWithImage"]["imageReplaceMethod"])
}

func TestRegister(t *testing.T) {
	r := catalog.NewRegistry()
	Register(r)

	assert.Len(t, r.List(domain.APISlides), 13)
}

func TestRegister_ChartIDMustBeNumeric(t *testing.T) {
	r := catalog.NewRegistry()
	Register(r)
	e, err := r.Get("slides.create-sheets-chart")
	require.NoError(t, err)

	_, err = e.Run(context.Background(), samplestest.NewServer(t).Env(), domain.Args{
		"presentation-id": "p", "page-id": "s", "spreadsheet-id": "ss", "chart-id": "abc",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
