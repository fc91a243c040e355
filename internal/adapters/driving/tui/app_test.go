package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func newTestPorts() *Ports {
	run := func(context.Context, catalog.Env, domain.Args) (any, error) { return nil, nil }
	reg := catalog.NewRegistry()
	reg.MustRegister(
		catalog.Entry{Sample: domain.Sample{
			Name:    "drive.quickstart",
			API:     domain.APIDrive,
			Summary: "List the first files",
			Scopes:  []string{"https://www.googleapis.com/auth/drive.metadata.readonly"},
		}, Run: run},
		catalog.Entry{Sample: domain.Sample{
			Name:    "drive.copy-file",
			API:     domain.APIDrive,
			Summary: "Copy a file",
			Scopes:  []string{"https://www.googleapis.com/auth/drive"},
			Args:    []domain.ArgSpec{{Name: "fileId", Required: true}},
		}, Run: run},
		catalog.Entry{Sample: domain.Sample{
			Name:    "sheets.quickstart",
			API:     domain.APISheets,
			Summary: "Read a range",
			Scopes:  []string{"https://www.googleapis.com/auth/spreadsheets.readonly"},
		}, Run: run},
	)
	return NewPorts(reg)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	app.SetDimensions(80, 30)
	return app
}

// send delivers msg and returns the resulting command.
func send(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingCatalog)
	assert.Nil(t, app)

	_, err = NewApp(nil)
	assert.ErrorIs(t, err, ErrMissingCatalog)
}

func TestNewApp_StartsOnAPIMenu(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	assert.Equal(t, messages.ViewAPIs, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := send(app, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Google Workspace samples")
	assert.Contains(t, app.View(), "q: quit")
}

func TestApp_SelectSampleWithoutArgs(t *testing.T) {
	app := newTestApp(t)

	// Down to "drive", then open it.
	send(app, tea.KeyMsg{Type: tea.KeyDown})
	msg := send(app, tea.KeyMsg{Type: tea.KeyEnter})()
	assert.Equal(t, messages.APISelected{API: domain.APIDrive}, msg)

	send(app, msg)
	assert.Equal(t, messages.ViewSamples, app.CurrentView())
	assert.Contains(t, app.View(), "2 samples")

	// Samples are sorted by name, so drive.quickstart is second.
	send(app, tea.KeyMsg{Type: tea.KeyDown})
	msg = send(app, tea.KeyMsg{Type: tea.KeyEnter})()
	isQuit(t, send(app, msg))

	require.NotNil(t, app.Selection())
	assert.Equal(t, "drive.quickstart", app.Selection().Sample.Name)
	assert.Empty(t, app.Selection().Args)
}

func TestApp_SelectSampleWithArgs(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.APISelected{API: domain.APIDrive})

	msg := send(app, tea.KeyMsg{Type: tea.KeyEnter})()
	require.Equal(t, "drive.copy-file", msg.(messages.SampleSelected).Sample.Name)
	send(app, msg)
	assert.Equal(t, messages.ViewArgs, app.CurrentView())
	assert.Nil(t, app.Selection())

	// Submitting without the required argument keeps the form open.
	send(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewArgs, app.CurrentView())
	assert.Contains(t, app.View(), "fileId")

	send(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	msg = send(app, tea.KeyMsg{Type: tea.KeyEnter})()
	isQuit(t, send(app, msg))

	require.NotNil(t, app.Selection())
	assert.Equal(t, "drive.copy-file", app.Selection().Sample.Name)
	assert.Equal(t, domain.Args{"fileId": "abc"}, app.Selection().Args)
}

func TestApp_BackNavigation(t *testing.T) {
	app := newTestApp(t)
	send(app, messages.APISelected{API: ""})
	assert.Contains(t, app.View(), "3 samples")

	send(app, messages.SampleSelected{Sample: domain.Sample{
		Name: "drive.copy-file",
		Args: []domain.ArgSpec{{Name: "fileId", Required: true}},
	}})
	require.Equal(t, messages.ViewArgs, app.CurrentView())

	send(app, send(app, tea.KeyMsg{Type: tea.KeyEsc})())
	assert.Equal(t, messages.ViewSamples, app.CurrentView())

	send(app, send(app, tea.KeyMsg{Type: tea.KeyEsc})())
	assert.Equal(t, messages.ViewAPIs, app.CurrentView())
}

func TestApp_QuitWithoutSelection(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			cmd := send(app, tt.key)
			if tt.name == "q" {
				cmd = send(app, cmd())
			}

			isQuit(t, cmd)
			assert.Nil(t, app.Selection())
		})
	}
}

func TestBrowse_InvalidPorts(t *testing.T) {
	sel, err := Browse(context.Background(), &Ports{})

	assert.ErrorIs(t, err, ErrMissingCatalog)
	assert.Nil(t, sel)
}
