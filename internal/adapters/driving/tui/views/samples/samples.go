// Package samples provides the filterable sample list of the browser.
package samples

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Item adapts a sample to the bubbles list.
type Item struct {
	Sample domain.Sample
}

// Title implements list.DefaultItem.
func (i Item) Title() string { return i.Sample.Name }

// Description implements list.DefaultItem.
func (i Item) Description() string {
	if i.Sample.Auth == domain.AuthServiceAccount {
		return i.Sample.Summary + " [service account]"
	}
	return i.Sample.Summary
}

// FilterValue implements list.Item.
func (i Item) FilterValue() string { return i.Sample.Name + " " + i.Sample.Summary }

// View wraps a bubbles list of samples.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	list   list.Model
}

// NewView creates an empty sample list.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	theme := s.Theme()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Primary).
		BorderLeftForeground(theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Muted).
		BorderLeftForeground(theme.Primary)

	l := list.New(nil, delegate, 80, 20)
	l.Title = "Samples"
	l.Styles.Title = s.Title
	l.SetShowHelp(false)
	l.SetStatusBarItemName("sample", "samples")
	l.DisableQuitKeybindings()

	return &View{styles: s, keymap: keymap.DefaultKeyMap(), list: l}
}

// SetSamples replaces the list content and clears any filter.
func (v *View) SetSamples(api domain.API, samples []domain.Sample) tea.Cmd {
	items := make([]list.Item, len(samples))
	for i := range samples {
		items[i] = Item{Sample: samples[i]}
	}

	v.list.ResetFilter()
	v.list.Title = "Samples"
	if api != "" {
		v.list.Title = fmt.Sprintf("%s samples", api)
	}
	cmd := v.list.SetItems(items)
	v.list.Select(0)
	return cmd
}

// Init initialises the list view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the list view. While the filter prompt is
// open every key goes to the list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && v.list.FilterState() != list.Filtering {
		switch k := keyMsg.String(); {
		case keymap.Matches(k, v.keymap.Select):
			item, ok := v.list.SelectedItem().(Item)
			if !ok {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.SampleSelected{Sample: item.Sample}
			}
		case keymap.Matches(k, v.keymap.Back) && v.list.FilterState() == list.Unfiltered:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewAPIs}
			}
		case k == "q":
			return v, func() tea.Msg {
				return messages.Quit{}
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the list.
func (v *View) View() string {
	return v.list.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetSize(width, height)
}

// Selected returns the highlighted sample, or nil if the list is empty.
func (v *View) Selected() *domain.Sample {
	item, ok := v.list.SelectedItem().(Item)
	if !ok {
		return nil
	}
	return &item.Sample
}

// Len returns the number of samples in the list.
func (v *View) Len() int {
	return len(v.list.Items())
}

// Title returns the list title.
func (v *View) Title() string {
	return v.list.Title
}

// Filtering reports whether the filter prompt is open.
func (v *View) Filtering() bool {
	return v.list.FilterState() == list.Filtering
}
