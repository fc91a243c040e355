// Package args provides the argument form shown before a sample runs.
package args

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// View is a form with one field per sample argument.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	sample domain.Sample
	fields []*input.ArgInput
	focus  int
	err    error
	width  int
}

// NewView creates an empty form.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, keymap: keymap.DefaultKeyMap(), width: 80}
}

// SetSample rebuilds the form for sample, prefilled with values.
func (v *View) SetSample(sample domain.Sample, values domain.Args) tea.Cmd {
	v.sample = sample
	v.err = nil
	v.focus = 0
	v.fields = make([]*input.ArgInput, len(sample.Args))
	for i, spec := range sample.Args {
		f := input.NewArgInput(spec, v.styles)
		f.SetWidth(v.width)
		f.SetValue(values[spec.Name])
		v.fields[i] = f
	}
	if len(v.fields) == 0 {
		return nil
	}
	return v.fields[0].Focus()
}

// Init initialises the form.
func (v *View) Init() tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	return v.fields[v.focus].Init()
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, v.updateFocused(msg)
	}

	switch k := keyMsg.String(); {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSamples}
		}
	case keymap.Matches(k, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(k, v.keymap.Next):
		return v, v.moveFocus(1)
	case keymap.Matches(k, v.keymap.Prev):
		return v, v.moveFocus(-1)
	}
	return v, v.updateFocused(msg)
}

func (v *View) updateFocused(msg tea.Msg) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return cmd
}

func (v *View) moveFocus(delta int) tea.Cmd {
	if len(v.fields) == 0 {
		return nil
	}
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	return v.fields[v.focus].Focus()
}

// submit validates the form and emits ArgsSubmitted. Empty fields are left
// out so sample defaults apply.
func (v *View) submit() tea.Cmd {
	values := v.Values()
	if _, err := v.sample.Resolve(values); err != nil {
		v.err = err
		for i, f := range v.fields {
			if f.Spec().Required && values[f.Spec().Name] == "" {
				v.fields[v.focus].Blur()
				v.focus = i
				return f.Focus()
			}
		}
		return nil
	}
	v.err = nil
	return func() tea.Msg {
		return messages.ArgsSubmitted{Args: values}
	}
}

// Values returns the non-empty field values.
func (v *View) Values() domain.Args {
	values := make(domain.Args, len(v.fields))
	for _, f := range v.fields {
		if val := strings.TrimSpace(f.Value()); val != "" {
			values[f.Spec().Name] = val
		}
	}
	return values
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.sample.Name))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.sample.Summary))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("scopes: %s", strings.Join(v.sample.Scopes, " "))))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Sample returns the sample the form is for.
func (v *View) Sample() domain.Sample {
	return v.sample
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focus
}

// Err returns the last validation error.
func (v *View) Err() error {
	return v.err
}
