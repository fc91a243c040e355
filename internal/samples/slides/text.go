package slides

import (
	"context"

	"google.golang.org/api/slides/v1"
)

// SimpleTextReplace replaces all text in a shape.
func SimpleTextReplace(ctx context.Context, svc *slides.Service, presentationID, shapeID, text string) error {
	_, err := batch(ctx, svc, presentationID,
		&slides.Request{
			DeleteText: &slides.DeleteTextRequest{
				ObjectId:  shapeID,
				TextRange: &slides.Range{Type: "ALL"},
			},
		},
		&slides.Request{
			InsertText: &slides.InsertTextRequest{
				ObjectId:       shapeID,
				InsertionIndex: 0,
				Text:           text,
			},
		},
	)
	return err
}

// TextStyleUpdate styles three ranges of a shape's text: bold and italic
// for characters 0-5, a blue Times New Roman for 5-10 and a link for 10-15.
func TextStyleUpdate(ctx context.Context, svc *slides.Service, presentationID, shapeID string) error {
	_, err := batch(ctx, svc, presentationID,
		&slides.Request{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId:  shapeID,
				TextRange: fixedRange(0, 5),
				Style: &slides.TextStyle{
					Bold:   true,
					Italic: true,
				},
				Fields: "bold,italic",
			},
		},
		&slides.Request{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId:  shapeID,
				TextRange: fixedRange(5, 10),
				Style: &slides.TextStyle{
					FontFamily: "Times New Roman",
					FontSize:   &slides.Dimension{Magnitude: 14, Unit: "PT"},
					ForegroundColor: &slides.OptionalColor{
						OpaqueColor: &slides.OpaqueColor{
							RgbColor: &slides.RgbColor{Blue: 1, Green: 0.1, Red: 0},
						},
					},
				},
				Fields: "foregroundColor,fontFamily,fontSize",
			},
		},
		&slides.Request{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId:  shapeID,
				TextRange: fixedRange(10, 15),
				Style: &slides.TextStyle{
					Link: &slides.Link{Url: "https://www.example.com"},
				},
				Fields: "link",
			},
		},
	)
	return err
}

// CreateBulletedText turns every paragraph of a shape into a bullet.
func CreateBulletedText(ctx context.Context, svc *slides.Service, presentationID, shapeID string) error {
	_, err := batch(ctx, svc, presentationID, &slides.Request{
		CreateParagraphBullets: &slides.CreateParagraphBulletsRequest{
			ObjectId:     shapeID,
			TextRange:    &slides.Range{Type: "ALL"},
			BulletPreset: "BULLET_ARROW_DIAMOND_DISC",
		},
	})
	return err
}

func fixedRange(start, end int64) *slides.Range {
	return &slides.Range{
		Type:       "FIXED_RANGE",
		StartIndex: &start,
		EndIndex:   &end,
	}
}
