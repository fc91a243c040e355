// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// APISelected is sent when an API is picked from the API menu.
// An empty API means all samples.
type APISelected struct {
	API domain.API
}

// SampleSelected is sent when a sample is picked from the sample list.
type SampleSelected struct {
	Sample domain.Sample
}

// ArgsSubmitted is sent when the argument form is confirmed.
type ArgsSubmitted struct {
	Args domain.Args
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Quit is sent to leave the browser without a selection.
type Quit struct{}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAPIs is the API menu.
	ViewAPIs ViewType = iota
	// ViewSamples is the filterable sample list.
	ViewSamples
	// ViewArgs is the argument form for the chosen sample.
	ViewArgs
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAPIs:
		return "apis"
	case ViewSamples:
		return "samples"
	case ViewArgs:
		return "args"
	default:
		return "unknown"
	}
}
