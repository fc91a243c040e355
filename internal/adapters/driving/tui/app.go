package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/views/apis"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/views/args"
	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/views/samples"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Selection is the sample and arguments chosen in the browser.
type Selection struct {
	Sample domain.Sample
	Args   domain.Args
}

// App is the sample browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	styles *styles.Styles
	keymap *keymap.KeyMap

	apisView    *apis.View
	samplesView *samples.View
	argsView    *args.View
	statusBar   *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// selection is set once the user confirms a sample.
	selection *Selection

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s)
	bar.SetHints(km.ShortHelp())

	return &App{
		ports:       ports,
		styles:      s,
		keymap:      km,
		apisView:    apis.NewView(s, ports.Catalog),
		samplesView: samples.NewView(s),
		argsView:    args.NewView(s),
		statusBar:   bar,
		currentView: messages.ViewAPIs,
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("wsamples")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.APISelected:
		a.statusBar.Clear()
		a.statusBar.SetHints(a.keymap.ListHelp())
		cmd := a.samplesView.SetSamples(msg.API, a.ports.Catalog.List(msg.API))
		a.statusBar.SetMessage(fmt.Sprintf("%d samples", a.samplesView.Len()))
		a.currentView = messages.ViewSamples
		return a, cmd

	case messages.SampleSelected:
		if len(msg.Sample.Args) == 0 {
			return a, a.finish(msg.Sample, domain.Args{})
		}
		a.statusBar.Clear()
		a.statusBar.SetHints(a.keymap.FormHelp())
		a.currentView = messages.ViewArgs
		return a, a.argsView.SetSample(msg.Sample, nil)

	case messages.ArgsSubmitted:
		return a, a.finish(a.argsView.Sample(), msg.Args)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.statusBar.Clear()
		switch msg.View {
		case messages.ViewAPIs:
			a.statusBar.SetHints(a.keymap.ShortHelp())
		case messages.ViewSamples:
			a.statusBar.SetHints(a.keymap.ListHelp())
		case messages.ViewArgs:
			a.statusBar.SetHints(a.keymap.FormHelp())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (filter results, cursor blinks) to the active view.
	return a, a.updateCurrent(msg)
}

func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewAPIs:
		a.apisView, cmd = a.apisView.Update(msg)
	case messages.ViewSamples:
		a.samplesView, cmd = a.samplesView.Update(msg)
	case messages.ViewArgs:
		a.argsView, cmd = a.argsView.Update(msg)
		if err := a.argsView.Err(); err != nil {
			a.statusBar.SetError(err.Error())
		}
	}
	return cmd
}

func (a *App) finish(sample domain.Sample, values domain.Args) tea.Cmd {
	a.selection = &Selection{Sample: sample, Args: values}
	return tea.Quit
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSamples:
		body = a.samplesView.View()
	case messages.ViewArgs:
		body = a.argsView.View()
	default:
		body = a.apisView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// Browse runs the browser until a sample is chosen. It returns ErrCancelled
// when the user quits first.
func Browse(ctx context.Context, ports *Ports, opts ...tea.ProgramOption) (*Selection, error) {
	app, err := NewApp(ports)
	if err != nil {
		return nil, err
	}

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}
	if app.selection == nil {
		return nil, ErrCancelled
	}
	return app.selection, nil
}

// Selection returns the confirmed sample, or nil.
func (a *App) Selection() *Selection {
	return a.selection
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// One line is reserved for the status bar.
	a.apisView.SetDimensions(width, height-1)
	a.samplesView.SetDimensions(width, height-1)
	a.argsView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
