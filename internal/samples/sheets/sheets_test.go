package sheets

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/samples/samplestest"
)

func newService(t *testing.T, fake *samplestest.Server) *sheets.Service {
	t.Helper()
	svc, err := fake.Clients().Sheets(context.Background())
	require.NoError(t, err)
	return svc
}

func TestQuickstart(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodGet, "/values/Class Data!A2:E", map[string]any{
		"range": "'Class Data'!A2:E4",
		"values": [][]any{
			{"Alexandra", "Female", "4. Senior", "CA", "English"},
			{"Andrew", "Male", "1. Freshman", "SD"},
			{"Anna", "Female", "1. Freshman", "NC", "Art"},
		},
	})

	students, err := Quickstart(context.Background(), newService(t, fake), ExampleSpreadsheetID)

	require.NoError(t, err)
	want := []Student{
		{Name: "Alexandra", Major: "English"},
		{Name: "Andrew", Major: ""},
		{Name: "Anna", Major: "Art"},
	}
	if diff := cmp.Diff(want, students); diff != "" {
		t.Errorf("students mismatch (-want +got):\n%s", diff)
	}
	req, ok := fake.Last(http.MethodGet, "/values/Class Data!A2:E")
	require.True(t, ok)
	assert.Contains(t, req.Path, ExampleSpreadsheetID)
}

func TestQuickstart_Forbidden(t *testing.T) {
	fake := samplestest.NewServer(t).Handle(http.MethodGet, "/values/Class Data!A2:E", func(w http.ResponseWriter, _ *http.Request) {
		samplestest.WriteJSON(w, http.StatusForbidden, map[string]any{
			"error": map[string]any{"code": 403, "message": "The caller does not have permission"},
		})
	})

	_, err := Quickstart(context.Background(), newService(t, fake), "private")

	require.Error(t, err)
	assert.True(t, google.IsForbidden(err))
}

func TestCreate(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "/v4/spreadsheets", map[string]string{"spreadsheetId": "ss-1"})

	id, err := Create(context.Background(), newService(t, fake), "Sales")

	require.NoError(t, err)
	assert.Equal(t, "ss-1", id)
	req, _ := fake.Last(http.MethodPost, "/v4/spreadsheets")
	var body map[string]map[string]string
	samplestest.Decode(t, req, &body)
	assert.Equal(t, "Sales", body["properties"]["title"])
}

func TestBatchGetValues(t *testing.T) {
	fake := samplestest.NewServer(t).Handle(http.MethodGet, "/values:batchGet", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"A1:A2", "B1:B2"}, r.URL.Query()["ranges"])
		samplestest.WriteJSON(w, http.StatusOK, map[string]any{
			"valueRanges": []map[string]any{
				{"range": "Sheet1!A1:A2", "values": [][]any{{"a"}, {"b"}}},
				{"range": "Sheet1!B1:B2", "values": [][]any{{"c"}, {"d"}}},
			},
		})
	})

	ranges, err := BatchGetValues(context.Background(), newService(t, fake), "ss-1", []string{"A1:A2", "B1:B2"})

	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, "Sheet1!B1:B2", ranges[1].Range)
	assert.Equal(t, [][]any{{"c"}, {"d"}}, ranges[1].Values)
}

func TestUpdateValues(t *testing.T) {
	fake := samplestest.NewServer(t).Handle(http.MethodPut, "/values/Sheet1!A1:B2", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, InputRaw, r.URL.Query().Get("valueInputOption"))
		samplestest.WriteJSON(w, http.StatusOK, map[string]any{"updatedCells": 4})
	})

	n, err := UpdateValues(context.Background(), newService(t, fake), "ss-1", "Sheet1!A1:B2", InputRaw,
		[][]any{{"A", "B"}, {"C", "D"}})

	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	req, _ := fake.Last(http.MethodPut, "/values/Sheet1!A1:B2")
	var body struct {
		Values [][]string `json:"values"`
	}
	samplestest.Decode(t, req, &body)
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, body.Values)
}

func TestBatchUpdateValues(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "/values:batchUpdate", map[string]any{"totalUpdatedCells": 8})

	n, err := BatchUpdateValues(context.Background(), newService(t, fake), "ss-1", InputUserEntered, []Range{
		{Range: "A1:B2", Values: [][]any{{1, 2}, {3, 4}}},
		{Range: "D1:E2", Values: [][]any{{1, 2}, {3, 4}}},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 8, n)
	req, _ := fake.Last(http.MethodPost, "/values:batchUpdate")
	var body struct {
		ValueInputOption string `json:"valueInputOption"`
		Data             []struct {
			Range string `json:"range"`
		} `json:"data"`
	}
	samplestest.Decode(t, req, &body)
	assert.Equal(t, InputUserEntered, body.ValueInputOption)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "D1:E2", body.Data[1].Range)
}

func TestAppendValues_ReportsUpdatedCells(t *testing.T) {
	fake := samplestest.NewServer(t).Handle(http.MethodPost, "/values/Sheet1!A1:append", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, InputUserEntered, r.URL.Query().Get("valueInputOption"))
		samplestest.WriteJSON(w, http.StatusOK, map[string]any{
			"spreadsheetId": "ss-1",
			"updates":       map[string]any{"updatedRange": "Sheet1!A3:B4", "updatedCells": 4},
		})
	})

	n, err := AppendValues(context.Background(), newService(t, fake), "ss-1", "Sheet1!A1", InputUserEntered,
		[][]any{{"A", "B"}, {"C", "D"}})

	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestBatchUpdate(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "ss-1:batchUpdate", map[string]any{
		"replies": []map[string]any{
			{},
			{"findReplace": map[string]any{"occurrencesChanged": 3}},
		},
	})

	n, err := BatchUpdate(context.Background(), newService(t, fake), "ss-1", "Renamed", "foo", "bar")

	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	req, _ := fake.Last(http.MethodPost, "ss-1:batchUpdate")
	var body struct {
		Requests []map[string]map[string]any `json:"requests"`
	}
	samplestest.Decode(t, req, &body)
	require.Len(t, body.Requests, 2)
	assert.Equal(t, "title", body.Requests[0]["updateSpreadsheetProperties"]["fields"])
	assert.Equal(t, "foo", body.Requests[1]["findReplace"]["find"])
	assert.Equal(t, true, body.Requests[1]["findReplace"]["allSheets"])
}

func TestPivotTable(t *testing.T) {
	calls := 0
	fake := samplestest.NewServer(t).Handle(http.MethodPost, "ss-1:batchUpdate", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			samplestest.WriteJSON(w, http.StatusOK, map[string]any{
				"replies": []map[string]any{
					{"addSheet": map[string]any{"properties": map[string]any{"sheetId": 11}}},
					{"addSheet": map[string]any{"properties": map[string]any{"sheetId": 12}}},
				},
			})
			return
		}
		samplestest.WriteJSON(w, http.StatusOK, map[string]any{"replies": []map[string]any{{}}})
	})

	target, err := PivotTable(context.Background(), newService(t, fake), "ss-1")

	require.NoError(t, err)
	assert.EqualValues(t, 12, target)
	assert.Equal(t, 2, calls)

	req, _ := fake.Last(http.MethodPost, "ss-1:batchUpdate")
	var body struct {
		Requests []struct {
			UpdateCells struct {
				Fields string `json:"fields"`
				Start  struct {
					SheetID int64 `json:"sheetId"`
				} `json:"start"`
				Rows []struct {
					Values []struct {
						PivotTable struct {
							Source struct {
								SheetID int64 `json:"sheetId"`
							} `json:"source"`
						} `json:"pivotTable"`
					} `json:"values"`
				} `json:"rows"`
			} `json:"updateCells"`
		} `json:"requests"`
	}
	samplestest.Decode(t, req, &body)
	cells := body.Requests[0].UpdateCells
	assert.Equal(t, "pivotTable", cells.Fields)
	assert.EqualValues(t, 12, cells.Start.SheetID)
	assert.EqualValues(t, 11, cells.Rows[0].Values[0].PivotTable.Source.SheetID)
}

func TestConditionalFormatting(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, "ss-1:batchUpdate", map[string]any{
		"replies": []map[string]any{{}, {}},
	})

	n, err := ConditionalFormatting(context.Background(), newService(t, fake), "ss-1")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	req, _ := fake.Last(http.MethodPost, "ss-1:batchUpdate")
	assert.Contains(t, string(req.Body), "CUSTOM_FORMULA")
}

func TestExportXLSX(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodGet, "/values/Data!A1:B3", map[string]any{
		"range":  "Data!A1:B3",
		"values": [][]any{{"name", "score"}, {"ada", "10"}, {"alan", "9"}},
	})
	path := filepath.Join(t.TempDir(), "out.xlsx")

	export, err := ExportXLSX(context.Background(), newService(t, fake), "ss-1", "Data!A1:B3", path)

	require.NoError(t, err)
	assert.Equal(t, &Export{Path: path, Sheet: "Data", Rows: 3}, export)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Data", "B2")
	require.NoError(t, err)
	assert.Equal(t, "10", v)
	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestSheetName(t *testing.T) {
	tests := map[string]string{
		"A1:B2":             "Sheet1",
		"Data!A1":           "Data",
		"'Class Data'!A2:E": "Class Data",
		"!A1":               "Sheet1",
	}
	for in, want := range tests {
		assert.Equal(t, want, sheetName(in), in)
	}
}

func TestRegister(t *testing.T) {
	r := catalog.NewRegistry()
	Register(r)

	assert.Len(t, r.List(domain.APISheets), 11)
}

func TestRegister_AppendParsesValues(t *testing.T) {
	fake := samplestest.NewServer(t).JSON(http.MethodPost, ":append", map[string]any{
		"updates": map[string]any{"updatedCells": 4},
	})
	r := catalog.NewRegistry()
	Register(r)
	e, err := r.Get("sheets.append-values")
	require.NoError(t, err)
	args, err := e.Resolve(domain.Args{"spreadsheet-id": "ss-1"})
	require.NoError(t, err)

	out, err := e.Run(context.Background(), fake.Env(), args)

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"updatedCells": 4}, out)
}

func TestRegister_BadValues(t *testing.T) {
	r := catalog.NewRegistry()
	Register(r)
	e, err := r.Get("sheets.update-values")
	require.NoError(t, err)

	_, err = e.Run(context.Background(), samplestest.NewServer(t).Env(), domain.Args{
		"spreadsheet-id": "ss-1", "range": "A1", "values": "not json",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
