package slides

import (
	"context"

	"google.golang.org/api/slides/v1"
)

// CreateSheetsChart embeds a linked chart from a spreadsheet on pageID and
// returns the chart element's object ID.
func CreateSheetsChart(
	ctx context.Context, svc *slides.Service, presentationID, pageID, spreadsheetID string, chartID int64,
) (string, error) {
	elementID := newObjectID("chart")
	resp, err := batch(ctx, svc, presentationID, &slides.Request{
		CreateSheetsChart: &slides.CreateSheetsChartRequest{
			ObjectId:          elementID,
			SpreadsheetId:     spreadsheetID,
			ChartId:           chartID,
			LinkingMode:       "LINKED",
			ElementProperties: elementProperties(pageID, "EMU", 4000000, 4000000, 100000, 100000),
		},
	})
	if err != nil {
		return "", err
	}
	if r := reply(resp, 0); r != nil && r.CreateSheetsChart != nil {
		return r.CreateSheetsChart.ObjectId, nil
	}
	return elementID, nil
}

// RefreshSheetsChart pulls the latest data into a linked chart.
func RefreshSheetsChart(ctx context.Context, svc *slides.Service, presentationID, chartObjectID string) error {
	_, err := batch(ctx, svc, presentationID, &slides.Request{
		RefreshSheetsChart: &slides.RefreshSheetsChartRequest{ObjectId: chartObjectID},
	})
	return err
}
