package sheets

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var (
	argSpreadsheet = domain.ArgSpec{Name: "spreadsheet-id", Description: "target spreadsheet", Required: true}
	argInput       = domain.ArgSpec{Name: "input", Description: "RAW or USER_ENTERED", Default: InputUserEntered}
	argValues      = domain.ArgSpec{
		Name:        "values",
		Description: `rows as a JSON array, e.g. [["A","B"],["C","D"]]`,
		Default:     `[["A","B"],["C","D"]]`,
	}
)

// Register adds the Sheets samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		entry("sheets.quickstart", "Print names and majors from the class data spreadsheet",
			[]string{google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{{Name: "spreadsheet-id", Description: "class data spreadsheet", Default: ExampleSpreadsheetID}},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				return Quickstart(ctx, svc, args.Get("spreadsheet-id"))
			})),
		entry("sheets.create", "Create a spreadsheet",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{{Name: "title", Description: "spreadsheet title", Default: "Sales"}},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				id, err := Create(ctx, svc, args.Get("title"))
				if err != nil {
					return nil, err
				}
				return map[string]string{"spreadsheetId": id}, nil
			})),
		entry("sheets.get-values", "Read a range of values",
			[]string{google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{argSpreadsheet, {Name: "range", Description: "A1 range", Default: "Sheet1!A1:C5"}},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				return GetValues(ctx, svc, args.Get("spreadsheet-id"), args.Get("range"))
			})),
		entry("sheets.batch-get-values", "Read several ranges at once",
			[]string{google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{argSpreadsheet, {Name: "ranges", Description: "comma separated A1 ranges", Default: "Sheet1!A1:A3,Sheet1!B1:B3"}},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				return BatchGetValues(ctx, svc, args.Get("spreadsheet-id"), args.List("ranges"))
			})),
		entry("sheets.update-values", "Overwrite a range of values",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{argSpreadsheet, {Name: "range", Description: "A1 range", Default: "Sheet1!A1:B2"}, argInput, argValues},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				values, err := parseValues(args.Get("values"))
				if err != nil {
					return nil, err
				}
				n, err := UpdateValues(ctx, svc, args.Get("spreadsheet-id"), args.Get("range"), args.Get("input"), values)
				return cells(n), err
			})),
		entry("sheets.batch-update-values", "Overwrite the same values into several ranges",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{argSpreadsheet, {Name: "ranges", Description: "comma separated A1 ranges", Default: "Sheet1!A1:B2,Sheet1!D1:E2"}, argInput, argValues},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				values, err := parseValues(args.Get("values"))
				if err != nil {
					return nil, err
				}
				var data []Range
				for _, rng := range args.List("ranges") {
					data = append(data, Range{Range: rng, Values: values})
				}
				n, err := BatchUpdateValues(ctx, svc, args.Get("spreadsheet-id"), args.Get("input"), data)
				return cells(n), err
			})),
		entry("sheets.append-values", "Append rows after a table",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{argSpreadsheet, {Name: "range", Description: "A1 range of the table", Default: "Sheet1!A1"}, argInput, argValues},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				values, err := parseValues(args.Get("values"))
				if err != nil {
					return nil, err
				}
				n, err := AppendValues(ctx, svc, args.Get("spreadsheet-id"), args.Get("range"), args.Get("input"), values)
				return cells(n), err
			})),
		entry("sheets.batch-update", "Rename a spreadsheet and find/replace text",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{
				argSpreadsheet,
				{Name: "title", Description: "new title", Default: "New title"},
				{Name: "find", Description: "text to find", Required: true},
				{Name: "replacement", Description: "replacement text", Required: true},
			},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				n, err := BatchUpdate(ctx, svc, args.Get("spreadsheet-id"), args.Get("title"), args.Get("find"), args.Get("replacement"))
				if err != nil {
					return nil, err
				}
				return map[string]int64{"occurrencesChanged": n}, nil
			})),
		entry("sheets.pivot-table", "Add a pivot table over new source data",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{argSpreadsheet},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				id, err := PivotTable(ctx, svc, args.Get("spreadsheet-id"))
				if err != nil {
					return nil, err
				}
				return map[string]int64{"pivotSheetId": id}, nil
			})),
		entry("sheets.conditional-formatting", "Add conditional formatting rules",
			[]string{google.ScopeSpreadsheets},
			[]domain.ArgSpec{argSpreadsheet},
			withService(func(ctx context.Context, svc *sheets.Service, _ catalog.Env, args domain.Args) (any, error) {
				n, err := ConditionalFormatting(ctx, svc, args.Get("spreadsheet-id"))
				if err != nil {
					return nil, err
				}
				return map[string]int{"rulesAdded": n}, nil
			})),
		entry("sheets.export-xlsx", "Save a range as a local Excel workbook",
			[]string{google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{
				argSpreadsheet,
				{Name: "range", Description: "A1 range", Default: "Sheet1!A1:Z1000"},
				{Name: "out", Description: "workbook path", Default: "export.xlsx"},
			},
			withService(func(ctx context.Context, svc *sheets.Service, env catalog.Env, args domain.Args) (any, error) {
				return ExportXLSX(ctx, svc, args.Get("spreadsheet-id"), args.Get("range"), env.Path(args.Get("out")))
			})),
	)
}

type serviceRun func(ctx context.Context, svc *sheets.Service, env catalog.Env, args domain.Args) (any, error)

func withService(run serviceRun) catalog.RunFunc {
	return func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
		svc, err := env.Clients.Sheets(ctx)
		if err != nil {
			return nil, err
		}
		return run(ctx, svc, env, args)
	}
}

func entry(name, summary string, scopes []string, args []domain.ArgSpec, run catalog.RunFunc) catalog.Entry {
	return catalog.Entry{
		Sample: domain.Sample{Name: name, API: domain.APISheets, Summary: summary, Scopes: scopes, Args: args},
		Run:    run,
	}
}

func parseValues(raw string) ([][]any, error) {
	var values [][]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: values must be a JSON array of rows: %v", domain.ErrInvalidInput, err)
	}
	return values, nil
}

func cells(n int64) map[string]int64 {
	return map[string]int64{"updatedCells": n}
}
