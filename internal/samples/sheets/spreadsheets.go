package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Create creates an empty spreadsheet and returns its ID.
func Create(ctx context.Context, svc *sheets.Service, title string) (string, error) {
	created, err := svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", google.WrapError(err))
	}
	return created.SpreadsheetId, nil
}

// BatchUpdate renames the spreadsheet and replaces every occurrence of find
// with replacement. It returns the number of replaced occurrences.
func BatchUpdate(ctx context.Context, svc *sheets.Service, spreadsheetID, title, find, replacement string) (int64, error) {
	requests := []*sheets.Request{
		{
			UpdateSpreadsheetProperties: &sheets.UpdateSpreadsheetPropertiesRequest{
				Properties: &sheets.SpreadsheetProperties{Title: title},
				Fields:     "title",
			},
		},
		{
			FindReplace: &sheets.FindReplaceRequest{
				Find:        find,
				Replacement: replacement,
				AllSheets:   true,
			},
		},
	}

	resp, err := batch(ctx, svc, spreadsheetID, requests)
	if err != nil {
		return 0, err
	}
	for _, reply := range resp.Replies {
		if reply != nil && reply.FindReplace != nil {
			return reply.FindReplace.OccurrencesChanged, nil
		}
	}
	return 0, nil
}

// PivotTable adds a source and a target sheet and places a pivot table
// over the source data in the target. It returns the target sheet ID.
func PivotTable(ctx context.Context, svc *sheets.Service, spreadsheetID string) (int64, error) {
	added, err := batch(ctx, svc, spreadsheetID, []*sheets.Request{
		{AddSheet: &sheets.AddSheetRequest{}},
		{AddSheet: &sheets.AddSheetRequest{}},
	})
	if err != nil {
		return 0, err
	}
	if len(added.Replies) < 2 || added.Replies[0].AddSheet == nil || added.Replies[1].AddSheet == nil {
		return 0, fmt.Errorf("add sheets: expected two replies, got %d", len(added.Replies))
	}
	source := added.Replies[0].AddSheet.Properties.SheetId
	target := added.Replies[1].AddSheet.Properties.SheetId

	pivot := &sheets.PivotTable{
		Source: &sheets.GridRange{
			SheetId:          source,
			StartRowIndex:    0,
			StartColumnIndex: 0,
			EndRowIndex:      20,
			EndColumnIndex:   7,
		},
		Rows: []*sheets.PivotGroup{
			{SourceColumnOffset: 1, ShowTotals: true, SortOrder: "ASCENDING"},
		},
		Columns: []*sheets.PivotGroup{
			{SourceColumnOffset: 4, SortOrder: "ASCENDING", ShowTotals: true},
		},
		Values: []*sheets.PivotValue{
			{SummarizeFunction: "COUNTA", SourceColumnOffset: 4},
		},
		ValueLayout: "HORIZONTAL",
	}

	_, err = batch(ctx, svc, spreadsheetID, []*sheets.Request{
		{
			UpdateCells: &sheets.UpdateCellsRequest{
				Rows: []*sheets.RowData{
					{Values: []*sheets.CellData{{PivotTable: pivot}}},
				},
				Start:  &sheets.GridCoordinate{SheetId: target},
				Fields: "pivotTable",
			},
		},
	})
	if err != nil {
		return 0, err
	}
	return target, nil
}

// ConditionalFormatting adds two rules to A1:D1000 of the first sheet and
// returns the number of replies.
func ConditionalFormatting(ctx context.Context, svc *sheets.Service, spreadsheetID string) (int, error) {
	cells := []*sheets.GridRange{{
		SheetId:          0,
		StartRowIndex:    1,
		EndRowIndex:      1000,
		StartColumnIndex: 0,
		EndColumnIndex:   4,
	}}

	requests := []*sheets.Request{
		{
			AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
				Rule: &sheets.ConditionalFormatRule{
					Ranges: cells,
					BooleanRule: &sheets.BooleanRule{
						Condition: &sheets.BooleanCondition{
							Type:   "CUSTOM_FORMULA",
							Values: []*sheets.ConditionValue{{UserEnteredValue: "=GT($D2,median($D$2:$D$11))"}},
						},
						Format: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{
								ForegroundColor: &sheets.Color{Red: 0.8},
							},
						},
					},
				},
			},
		},
		{
			AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
				Rule: &sheets.ConditionalFormatRule{
					Ranges: cells,
					BooleanRule: &sheets.BooleanRule{
						Condition: &sheets.BooleanCondition{
							Type:   "CUSTOM_FORMULA",
							Values: []*sheets.ConditionValue{{UserEnteredValue: "=LT($D2,median($D$2:$D$11))"}},
						},
						Format: &sheets.CellFormat{
							BackgroundColor: &sheets.Color{Red: 1, Green: 0.4, Blue: 0.4},
						},
					},
				},
			},
		},
	}

	resp, err := batch(ctx, svc, spreadsheetID, requests)
	if err != nil {
		return 0, err
	}
	return len(resp.Replies), nil
}

func batch(
	ctx context.Context, svc *sheets.Service, spreadsheetID string, requests []*sheets.Request,
) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	resp, err := svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("batch update: %w", google.WrapError(err))
	}
	return resp, nil
}
