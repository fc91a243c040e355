package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/tui/keymap"
)

func TestBar_ViewShowsMessageAndHints(t *testing.T) {
	bar := NewBar(nil)
	bar.SetHints(keymap.DefaultKeyMap().ListHelp())
	bar.SetMessage("12 samples")

	view := bar.View()

	assert.Contains(t, view, "12 samples")
	assert.Contains(t, view, "/: filter")
	assert.Contains(t, view, "esc: back")
}

func TestBar_ErrorAndClear(t *testing.T) {
	bar := NewBar(nil)

	bar.SetError("missing argument: fileId")
	assert.True(t, bar.IsError())
	assert.Contains(t, bar.View(), "missing argument: fileId")

	bar.Clear()
	assert.False(t, bar.IsError())
	assert.Empty(t, bar.Message())
}

func TestBar_SetMessageResetsError(t *testing.T) {
	bar := NewBar(nil)
	bar.SetError("boom")

	bar.SetMessage("ok")

	assert.False(t, bar.IsError())
}
