// Package apis provides the API menu that opens the sample browser.
package apis

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wsamples/internal/core/domain"
	"github.com/custodia-labs/wsamples/internal/core/ports/driving"
)

// Item is one menu entry. An empty API stands for all samples.
type Item struct {
	API   domain.API
	Count int
}

// Label returns the text shown for the item.
func (i Item) Label() string {
	if i.API == "" {
		return "All samples"
	}
	return string(i.API)
}

// View represents the API menu.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
}

// NewView creates the menu from the APIs in catalog.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	items := []Item{{Count: len(catalog.List(""))}}
	for _, api := range catalog.APIs() {
		items = append(items, Item{API: api, Count: len(catalog.List(api))})
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch k := keyMsg.String(); {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.items)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		api := v.items[v.selected].API
		return v, func() tea.Msg {
			return messages.APISelected{API: api}
		}
	case keymap.Matches(k, v.keymap.Quit), keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}
	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Google Workspace samples"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Choose an API"))
	b.WriteString("\n\n")

	// Keep the cursor visible on short terminals.
	visible := v.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.items))

	for i := start; i < end; i++ {
		item := v.items[i]
		cursor, style := "  ", v.styles.Normal
		if i == v.selected {
			cursor, style = "> ", v.styles.Selected
		}
		b.WriteString(cursor + style.Render(fmt.Sprintf("%-12s", item.Label())) + " ")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("(%d)", item.Count)))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
