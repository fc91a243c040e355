// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// ArgInput wraps a bubbles textinput for one sample argument.
type ArgInput struct {
	spec      domain.ArgSpec
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewArgInput creates an input for spec. The argument default is shown as placeholder.
func NewArgInput(spec domain.ArgSpec, s *styles.Styles) *ArgInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = spec.Default
	if ti.Placeholder == "" {
		ti.Placeholder = spec.Description
	}
	ti.CharLimit = 1024
	ti.Width = 50

	return &ArgInput{
		spec:      spec,
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (a *ArgInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (a *ArgInput) Update(msg tea.Msg) (*ArgInput, tea.Cmd) {
	var cmd tea.Cmd
	a.textinput, cmd = a.textinput.Update(msg)
	return a, cmd
}

// View renders the label, the description and the field.
func (a *ArgInput) View() string {
	label := a.styles.Normal.Render(a.spec.Name)
	if a.spec.Required {
		label += a.styles.Required.Render(" *")
	}
	if a.spec.Description != "" {
		label += "  " + a.styles.Muted.Render(a.spec.Description)
	}

	field := a.styles.InputField
	if a.textinput.Focused() {
		field = a.styles.FocusedField
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, field.Render(a.textinput.View()))
}

// Spec returns the argument this input edits.
func (a *ArgInput) Spec() domain.ArgSpec {
	return a.spec
}

// Value returns the current input value.
func (a *ArgInput) Value() string {
	return a.textinput.Value()
}

// SetValue sets the input value.
func (a *ArgInput) SetValue(value string) {
	a.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (a *ArgInput) Focus() tea.Cmd {
	return a.textinput.Focus()
}

// Blur removes focus from the input.
func (a *ArgInput) Blur() {
	a.textinput.Blur()
}

// Focused returns whether the input is focused.
func (a *ArgInput) Focused() bool {
	return a.textinput.Focused()
}

// SetWidth sets the width of the input.
func (a *ArgInput) SetWidth(width int) {
	a.width = width
	// Account for border and padding
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	a.textinput.Width = inputWidth
}

// Width returns the current width.
func (a *ArgInput) Width() int {
	return a.width
}
