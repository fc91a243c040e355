package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Value input options accepted by the values endpoints.
const (
	InputRaw         = "RAW"
	InputUserEntered = "USER_ENTERED"
)

// ExampleSpreadsheetID is Google's public class data spreadsheet.
const ExampleSpreadsheetID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

// Student is one row of the class data spreadsheet.
type Student struct {
	Name  string `json:"name" yaml:"name"`
	Major string `json:"major" yaml:"major"`
}

// Range is a named block of cell values.
type Range struct {
	Range  string  `json:"range" yaml:"range"`
	Values [][]any `json:"values" yaml:"values"`
}

// Quickstart prints the names and majors of students in a sample spreadsheet.
// Column A holds the name and column E the major.
func Quickstart(ctx context.Context, svc *sheets.Service, spreadsheetID string) ([]Student, error) {
	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, "Class Data!A2:E").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get class data: %w", google.WrapError(err))
	}

	students := make([]Student, 0, len(resp.Values))
	for _, row := range resp.Values {
		students = append(students, Student{Name: cell(row, 0), Major: cell(row, 4)})
	}
	return students, nil
}

// cell returns row[i] as text, or "" when the row is shorter.
func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

// GetValues returns the values of one range.
func GetValues(ctx context.Context, svc *sheets.Service, spreadsheetID, rng string) (*Range, error) {
	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values: %w", google.WrapError(err))
	}
	return &Range{Range: resp.Range, Values: resp.Values}, nil
}

// BatchGetValues returns the values of several ranges in one call.
func BatchGetValues(ctx context.Context, svc *sheets.Service, spreadsheetID string, ranges []string) ([]Range, error) {
	resp, err := svc.Spreadsheets.Values.BatchGet(spreadsheetID).Ranges(ranges...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("batch get values: %w", google.WrapError(err))
	}

	out := make([]Range, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		out = append(out, Range{Range: vr.Range, Values: vr.Values})
	}
	return out, nil
}

// UpdateValues overwrites rng and returns the number of updated cells.
func UpdateValues(
	ctx context.Context, svc *sheets.Service, spreadsheetID, rng, inputOption string, values [][]any,
) (int64, error) {
	resp, err := svc.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(inputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("update values: %w", google.WrapError(err))
	}
	return resp.UpdatedCells, nil
}

// BatchUpdateValues overwrites several ranges and returns the total number
// of updated cells.
func BatchUpdateValues(
	ctx context.Context, svc *sheets.Service, spreadsheetID, inputOption string, data []Range,
) (int64, error) {
	req := &sheets.BatchUpdateValuesRequest{ValueInputOption: inputOption}
	for _, d := range data {
		req.Data = append(req.Data, &sheets.ValueRange{Range: d.Range, Values: d.Values})
	}

	resp, err := svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("batch update values: %w", google.WrapError(err))
	}
	return resp.TotalUpdatedCells, nil
}

// AppendValues appends rows after the table found in rng and returns the
// number of cells written.
func AppendValues(
	ctx context.Context, svc *sheets.Service, spreadsheetID, rng, inputOption string, values [][]any,
) (int64, error) {
	resp, err := svc.Spreadsheets.Values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(inputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append values: %w", google.WrapError(err))
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return resp.Updates.UpdatedCells, nil
}
