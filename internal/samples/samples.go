// Package samples assembles the full sample catalog.
package samples

import (
	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/samples/admin"
	"github.com/custodia-labs/wsamples/internal/samples/calendar"
	"github.com/custodia-labs/wsamples/internal/samples/chat"
	"github.com/custodia-labs/wsamples/internal/samples/classroom"
	"github.com/custodia-labs/wsamples/internal/samples/docs"
	"github.com/custodia-labs/wsamples/internal/samples/drive"
	"github.com/custodia-labs/wsamples/internal/samples/forms"
	"github.com/custodia-labs/wsamples/internal/samples/gmail"
	"github.com/custodia-labs/wsamples/internal/samples/meet"
	"github.com/custodia-labs/wsamples/internal/samples/people"
	"github.com/custodia-labs/wsamples/internal/samples/script"
	"github.com/custodia-labs/wsamples/internal/samples/sheets"
	"github.com/custodia-labs/wsamples/internal/samples/slides"
	"github.com/custodia-labs/wsamples/internal/samples/tasks"
)

// Register adds every sample to r.
func Register(r *catalog.Registry) {
	drive.Register(r)
	sheets.Register(r)
	slides.Register(r)
	chat.Register(r)
	forms.Register(r)
	admin.Register(r)
	calendar.Register(r)
	gmail.Register(r)
	people.Register(r)
	classroom.Register(r)
	tasks.Register(r)
	docs.Register(r)
	script.Register(r)
	meet.Register(r)
}

// NewRegistry returns a registry holding the full catalog.
func NewRegistry() *catalog.Registry {
	r := catalog.NewRegistry()
	Register(r)
	return r
}
