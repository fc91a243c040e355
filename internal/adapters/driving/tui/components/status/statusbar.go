// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/styles"
)

// Bar displays a message on the left and keybinding hints on the right.
type Bar struct {
	styles  *styles.Styles
	hints   []key.Binding
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s, width: 80}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch {
	case s.isError:
		return s.styles.Error.Render(s.message)
	case s.message != "":
		return s.styles.Normal.Render(s.message)
	default:
		return ""
	}
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetHints sets the keybindings shown on the right.
func (s *Bar) SetHints(bindings []key.Binding) {
	s.hints = bindings
}

// SetMessage shows an informational message.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.isError = false
}

// SetError shows an error message.
func (s *Bar) SetError(message string) {
	s.message = message
	s.isError = true
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// IsError reports whether the current message is an error.
func (s *Bar) IsError() bool {
	return s.isError
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear removes the message.
func (s *Bar) Clear() {
	s.message = ""
	s.isError = false
}
