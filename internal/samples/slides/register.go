package slides

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/slides/v1"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

var (
	argPresentation = domain.ArgSpec{Name: "presentation-id", Description: "target presentation", Required: true}
	argPage         = domain.ArgSpec{Name: "page-id", Description: "slide object ID", Required: true}
	argShape        = domain.ArgSpec{Name: "shape-id", Description: "shape object ID", Required: true}
)

// Register adds the Slides samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		entry("slides.quickstart", "Count the slides and elements of a presentation",
			[]string{google.ScopePresentationsReadonly},
			[]domain.ArgSpec{{Name: "presentation-id", Description: "presentation to inspect", Default: ExamplePresentationID}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				return Quickstart(ctx, svc, args.Get("presentation-id"))
			})),
		entry("slides.create-presentation", "Create a presentation",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{{Name: "title", Description: "presentation title", Default: "Title"}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				id, err := CreatePresentation(ctx, svc, args.Get("title"))
				return idResult("presentationId", id, err)
			})),
		entry("slides.copy-presentation", "Copy a presentation through Drive",
			[]string{google.ScopeDrive},
			[]domain.ArgSpec{argPresentation, {Name: "title", Description: "title of the copy", Default: "Copy Title"}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := CopyPresentation(ctx, svc, args.Get("presentation-id"), args.Get("title"))
				return idResult("presentationId", id, err)
			}),
		entry("slides.create-slide", "Insert a two column slide",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{argPresentation, {Name: "page-id", Description: "object ID for the new slide"}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				id, err := CreateSlide(ctx, svc, args.Get("presentation-id"), args.Get("page-id"))
				return idResult("objectId", id, err)
			})),
		entry("slides.create-textbox-with-text", "Add a text box with text to a slide",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{argPresentation, argPage, {Name: "text", Description: "text to insert", Default: "New Box Text Inserted!"}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				id, err := CreateTextboxWithText(ctx, svc, args.Get("presentation-id"), args.Get("page-id"), args.Get("text"))
				return idResult("objectId", id, err)
			})),
		entry("slides.create-image", "Add an image to a slide",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{argPresentation, argPage, {Name: "image-url", Description: "public image URL", Required: true}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				id, err := CreateImage(ctx, svc, args.Get("presentation-id"), args.Get("page-id"), args.Get("image-url"))
				return idResult("objectId", id, err)
			})),
		entry("slides.text-merging", "Create one filled copy of a template per spreadsheet row",
			[]string{google.ScopePresentations, google.ScopeDrive, google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{
				{Name: "template-id", Description: "template presentation", Required: true},
				{Name: "spreadsheet-id", Description: "spreadsheet with a Customers sheet", Required: true},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svcs, err := mergeServices(ctx, env)
				if err != nil {
					return nil, err
				}
				return TextMerging(ctx, svcs, args.Get("template-id"), args.Get("spreadsheet-id"))
			}),
		entry("slides.image-merging", "Copy a template and replace its logo placeholder",
			[]string{google.ScopePresentations, google.ScopeDrive},
			[]domain.ArgSpec{
				{Name: "template-id", Description: "template presentation", Required: true},
				{Name: "image-url", Description: "logo image URL", Required: true},
				{Name: "customer", Description: "customer name", Default: "Fake Customer"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svcs, err := mergeServices(ctx, env)
				if err != nil {
					return nil, err
				}
				return ImageMerging(ctx, svcs, args.Get("template-id"), args.Get("image-url"), args.Get("customer"))
			}),
		entry("slides.simple-text-replace", "Replace all text in a shape",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{argPresentation, argShape, {Name: "text", Description: "replacement text", Default: "Replaced text"}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				return done(SimpleTextReplace(ctx, svc, args.Get("presentation-id"), args.Get("shape-id"), args.Get("text")))
			})),
		entry("slides.text-style-update", "Style ranges of a shape's text",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{argPresentation, argShape},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				return done(TextStyleUpdate(ctx, svc, args.Get("presentation-id"), args.Get("shape-id")))
			})),
		entry("slides.create-bulleted-text", "Turn a shape's paragraphs into bullets",
			[]string{google.ScopePresentations},
			[]domain.ArgSpec{argPresentation, argShape},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				return done(CreateBulletedText(ctx, svc, args.Get("presentation-id"), args.Get("shape-id")))
			})),
		entry("slides.create-sheets-chart", "Embed a linked Sheets chart",
			[]string{google.ScopePresentations, google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{
				argPresentation,
				argPage,
				{Name: "spreadsheet-id", Description: "spreadsheet holding the chart", Required: true},
				{Name: "chart-id", Description: "chart ID inside the spreadsheet", Required: true},
			},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				chartID, err := strconv.ParseInt(args.Get("chart-id"), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: chart-id must be a number", domain.ErrInvalidInput)
				}
				id, err := CreateSheetsChart(ctx, svc, args.Get("presentation-id"), args.Get("page-id"), args.Get("spreadsheet-id"), chartID)
				return idResult("objectId", id, err)
			})),
		entry("slides.refresh-sheets-chart", "Refresh a linked Sheets chart",
			[]string{google.ScopePresentations, google.ScopeSpreadsheetsReadonly},
			[]domain.ArgSpec{argPresentation, {Name: "chart-object-id", Description: "chart element object ID", Required: true}},
			withService(func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error) {
				return done(RefreshSheetsChart(ctx, svc, args.Get("presentation-id"), args.Get("chart-object-id")))
			})),
	)
}

func withService(run func(ctx context.Context, svc *slides.Service, args domain.Args) (any, error)) catalog.RunFunc {
	return func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
		svc, err := env.Clients.Slides(ctx)
		if err != nil {
			return nil, err
		}
		return run(ctx, svc, args)
	}
}

func mergeServices(ctx context.Context, env catalog.Env) (MergeServices, error) {
	var (
		svcs MergeServices
		err  error
	)
	if svcs.Slides, err = env.Clients.Slides(ctx); err != nil {
		return svcs, err
	}
	if svcs.Drive, err = env.Clients.Drive(ctx); err != nil {
		return svcs, err
	}
	if svcs.Sheets, err = env.Clients.Sheets(ctx); err != nil {
		return svcs, err
	}
	return svcs, nil
}

func entry(name, summary string, scopes []string, args []domain.ArgSpec, run catalog.RunFunc) catalog.Entry {
	return catalog.Entry{
		Sample: domain.Sample{Name: name, API: domain.APISlides, Summary: summary, Scopes: scopes, Args: args},
		Run:    run,
	}
}

func idResult(key, id string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]string{key: id}, nil
}

func done(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}
