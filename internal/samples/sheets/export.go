package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/sheets/v4"
)

// Export describes a written workbook.
type Export struct {
	Path  string `json:"path" yaml:"path"`
	Sheet string `json:"sheet" yaml:"sheet"`
	Rows  int    `json:"rows" yaml:"rows"`
}

// ExportXLSX reads rng and writes its values to a local .xlsx workbook.
func ExportXLSX(ctx context.Context, svc *sheets.Service, spreadsheetID, rng, path string) (*Export, error) {
	values, err := GetValues(ctx, svc, spreadsheetID, rng)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(rng)
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}

	for i, row := range values.Values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	return &Export{Path: path, Sheet: sheet, Rows: len(values.Values)}, nil
}

// sheetName extracts the sheet part of an A1 range ("'Class Data'!A1:E").
func sheetName(rng string) string {
	name, _, ok := strings.Cut(rng, "!")
	if !ok || name == "" {
		return "Sheet1"
	}
	name = strings.Trim(name, "'")
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
