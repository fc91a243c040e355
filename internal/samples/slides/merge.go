package slides

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/logger"
)

// CustomersRange is where TextMerging reads its records.
const CustomersRange = "Customers!A2:M6"

// Column offsets of the merge fields in CustomersRange.
const (
	colCustomerName    = 0
	colCaseDescription = 5
	colTotalPortfolio  = 11
)

// Merged is the outcome of merging one record into a template copy.
type Merged struct {
	Customer       string `json:"customer" yaml:"customer"`
	PresentationID string `json:"presentationId,omitempty" yaml:"presentationId,omitempty"`
	Replaced       int64  `json:"replaced" yaml:"replaced"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
}

// MergeServices are the APIs a merge touches.
type MergeServices struct {
	Slides *slides.Service
	Drive  *drive.Service
	Sheets *sheets.Service
}

// TextMerging creates one copy of templateID per customer row of the data
// spreadsheet and fills its placeholders. A failing record is logged and
// skipped; copies made for earlier records are kept. A record whose copy
// was made before the failure reports the copy's ID.
func TextMerging(ctx context.Context, svcs MergeServices, templateID, dataSpreadsheetID string) ([]Merged, error) {
	data, err := svcs.Sheets.Spreadsheets.Values.Get(dataSpreadsheetID, CustomersRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read customers: %w", google.WrapError(err))
	}

	results := make([]Merged, 0, len(data.Values))
	for _, row := range data.Values {
		name := cell(row, colCustomerName)
		merged := Merged{Customer: name}

		id, replaced, err := mergeRecord(ctx, svcs, templateID, map[string]string{
			"{{customer-name}}":    name,
			"{{case-description}}": cell(row, colCaseDescription),
			"{{total-portfolio}}":  cell(row, colTotalPortfolio),
		}, name+" presentation")
		merged.PresentationID = id
		if err != nil {
			logger.Error("merge record %q: %v", name, err)
			merged.Error = err.Error()
			results = append(results, merged)
			continue
		}

		merged.Replaced = replaced
		results = append(results, merged)
	}
	return results, nil
}

// ImageMerging copies templateID, swaps shapes containing {{company-logo}}
// for the image at imageURL and fills {{customer-name}}.
func ImageMerging(ctx context.Context, svcs MergeServices, templateID, imageURL, customerName string) (*Merged, error) {
	id, err := CopyPresentation(ctx, svcs.Drive, templateID, customerName+" presentation")
	if err != nil {
		return nil, err
	}

	resp, err := batch(ctx, svcs.Slides, id,
		&slides.Request{
			ReplaceAllShapesWithImage: &slides.ReplaceAllShapesWithImageRequest{
				ImageUrl:           imageURL,
				ImageReplaceMethod: "CENTER_INSIDE",
				ContainsText:       &slides.SubstringMatchCriteria{Text: "{{company-logo}}", MatchCase: true},
			},
		},
		&slides.Request{
			ReplaceAllText: &slides.ReplaceAllTextRequest{
				ContainsText: &slides.SubstringMatchCriteria{Text: "{{customer-name}}", MatchCase: true},
				ReplaceText:  customerName,
			},
		},
	)
	if err != nil {
		return nil, err
	}

	var replaced int64
	for _, r := range resp.Replies {
		switch {
		case r == nil:
		case r.ReplaceAllShapesWithImage != nil:
			replaced += r.ReplaceAllShapesWithImage.OccurrencesChanged
		case r.ReplaceAllText != nil:
			replaced += r.ReplaceAllText.OccurrencesChanged
		}
	}
	return &Merged{Customer: customerName, PresentationID: id, Replaced: replaced}, nil
}

func mergeRecord(
	ctx context.Context, svcs MergeServices, templateID string, fields map[string]string, title string,
) (string, int64, error) {
	id, err := CopyPresentation(ctx, svcs.Drive, templateID, title)
	if err != nil {
		return "", 0, err
	}

	requests := make([]*slides.Request, 0, len(fields))
	for _, placeholder := range sortedKeys(fields) {
		requests = append(requests, &slides.Request{
			ReplaceAllText: &slides.ReplaceAllTextRequest{
				ContainsText: &slides.SubstringMatchCriteria{Text: placeholder, MatchCase: true},
				ReplaceText:  fields[placeholder],
			},
		})
	}

	resp, err := batch(ctx, svcs.Slides, id, requests...)
	if err != nil {
		return id, 0, err
	}

	var replaced int64
	for _, r := range resp.Replies {
		if r != nil && r.ReplaceAllText != nil {
			replaced += r.ReplaceAllText.OccurrencesChanged
		}
	}
	return id, replaced, nil
}

func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
