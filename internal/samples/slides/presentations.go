package slides

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// ExamplePresentationID is Google's public quickstart presentation.
const ExamplePresentationID = "1EAYk18WDjIG-zp_0vLm3CsfQh_i8eXc67Jo2O9C6Vuc"

// Summary describes a presentation.
type Summary struct {
	Title  string         `json:"title" yaml:"title"`
	Slides []SlideSummary `json:"slides" yaml:"slides"`
}

// SlideSummary describes one slide.
type SlideSummary struct {
	ObjectID string `json:"objectId" yaml:"objectId"`
	Elements int    `json:"elements" yaml:"elements"`
}

// Quickstart reports the number of slides and the number of elements on each.
func Quickstart(ctx context.Context, svc *slides.Service, presentationID string) (*Summary, error) {
	p, err := svc.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get presentation: %w", google.WrapError(err))
	}

	summary := &Summary{Title: p.Title, Slides: make([]SlideSummary, 0, len(p.Slides))}
	for _, s := range p.Slides {
		summary.Slides = append(summary.Slides, SlideSummary{ObjectID: s.ObjectId, Elements: len(s.PageElements)})
	}
	return summary, nil
}

// CreatePresentation creates an empty presentation and returns its ID.
func CreatePresentation(ctx context.Context, svc *slides.Service, title string) (string, error) {
	p, err := svc.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create presentation: %w", google.WrapError(err))
	}
	return p.PresentationId, nil
}

// CopyPresentation duplicates a presentation through Drive and returns the copy's ID.
func CopyPresentation(ctx context.Context, svc *drive.Service, presentationID, title string) (string, error) {
	copied, err := svc.Files.Copy(presentationID, &drive.File{Name: title}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("copy presentation: %w", google.WrapError(err))
	}
	return copied.Id, nil
}

// CreateSlide inserts a two column slide at index 1 and returns its object ID.
func CreateSlide(ctx context.Context, svc *slides.Service, presentationID, pageID string) (string, error) {
	if pageID == "" {
		pageID = newObjectID("slide")
	}
	resp, err := batch(ctx, svc, presentationID, &slides.Request{
		CreateSlide: &slides.CreateSlideRequest{
			ObjectId:       pageID,
			InsertionIndex: 1,
			SlideLayoutReference: &slides.LayoutReference{
				PredefinedLayout: "TITLE_AND_TWO_COLUMNS",
			},
		},
	})
	if err != nil {
		return "", err
	}
	if r := reply(resp, 0); r != nil && r.CreateSlide != nil {
		return r.CreateSlide.ObjectId, nil
	}
	return pageID, nil
}

// CreateTextboxWithText adds a text box to pageID and fills it.
func CreateTextboxWithText(ctx context.Context, svc *slides.Service, presentationID, pageID, text string) (string, error) {
	boxID := newObjectID("textbox")
	resp, err := batch(ctx, svc, presentationID,
		&slides.Request{
			CreateShape: &slides.CreateShapeRequest{
				ObjectId:          boxID,
				ShapeType:         "TEXT_BOX",
				ElementProperties: elementProperties(pageID, "PT", 350, 350, 350, 100),
			},
		},
		&slides.Request{
			InsertText: &slides.InsertTextRequest{
				ObjectId:       boxID,
				InsertionIndex: 0,
				Text:           text,
			},
		},
	)
	if err != nil {
		return "", err
	}
	if r := reply(resp, 0); r != nil && r.CreateShape != nil {
		return r.CreateShape.ObjectId, nil
	}
	return boxID, nil
}

// CreateImage places the image at imageURL on pageID and returns its object ID.
func CreateImage(ctx context.Context, svc *slides.Service, presentationID, pageID, imageURL string) (string, error) {
	imageID := newObjectID("image")
	resp, err := batch(ctx, svc, presentationID, &slides.Request{
		CreateImage: &slides.CreateImageRequest{
			ObjectId:          imageID,
			Url:               imageURL,
			ElementProperties: elementProperties(pageID, "EMU", 4000000, 4000000, 100000, 100000),
		},
	})
	if err != nil {
		return "", err
	}
	if r := reply(resp, 0); r != nil && r.CreateImage != nil {
		return r.CreateImage.ObjectId, nil
	}
	return imageID, nil
}

// elementProperties places a width x height element at (x, y) on pageID.
func elementProperties(pageID, unit string, width, height, x, y float64) *slides.PageElementProperties {
	return &slides.PageElementProperties{
		PageObjectId: pageID,
		Size: &slides.Size{
			Width:  &slides.Dimension{Magnitude: width, Unit: unit},
			Height: &slides.Dimension{Magnitude: height, Unit: unit},
		},
		Transform: &slides.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: x,
			TranslateY: y,
			Unit:       unit,
		},
	}
}

func batch(
	ctx context.Context, svc *slides.Service, presentationID string, requests ...*slides.Request,
) (*slides.BatchUpdatePresentationResponse, error) {
	resp, err := svc.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("batch update: %w", google.WrapError(err))
	}
	return resp, nil
}

func reply(resp *slides.BatchUpdatePresentationResponse, i int) *slides.Response {
	if resp == nil || i >= len(resp.Replies) {
		return nil
	}
	return resp.Replies[i]
}

// newObjectID returns an ID valid for page elements (5 to 50 word characters).
func newObjectID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
