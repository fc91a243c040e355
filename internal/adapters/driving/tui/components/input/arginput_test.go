package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/wsamples/internal/core/domain"
)

func TestNewArgInput_Placeholder(t *testing.T) {
	tests := []struct {
		name string
		spec domain.ArgSpec
		want string
	}{
		{"default wins", domain.ArgSpec{Name: "size", Description: "page size", Default: "10"}, "10"},
		{"description fallback", domain.ArgSpec{Name: "name", Description: "file name"}, "file name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewArgInput(tt.spec, nil)

			assert.Equal(t, tt.want, in.textinput.Placeholder)
			assert.Equal(t, tt.spec, in.Spec())
		})
	}
}

func TestArgInput_TypingUpdatesValue(t *testing.T) {
	in := NewArgInput(domain.ArgSpec{Name: "name"}, nil)
	in.Focus()

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("report")})

	assert.Equal(t, "report", in.Value())
}

func TestArgInput_FocusAndBlur(t *testing.T) {
	in := NewArgInput(domain.ArgSpec{Name: "name"}, nil)
	assert.False(t, in.Focused())

	in.Focus()
	assert.True(t, in.Focused())

	in.Blur()
	assert.False(t, in.Focused())
}

func TestArgInput_ViewMarksRequired(t *testing.T) {
	required := NewArgInput(domain.ArgSpec{Name: "fileId", Required: true, Description: "file to copy"}, nil)
	optional := NewArgInput(domain.ArgSpec{Name: "size"}, nil)

	assert.Contains(t, required.View(), "fileId")
	assert.Contains(t, required.View(), "*")
	assert.Contains(t, required.View(), "file to copy")
	assert.NotContains(t, optional.View(), "*")
}

func TestArgInput_SetWidthHasMinimum(t *testing.T) {
	in := NewArgInput(domain.ArgSpec{Name: "name"}, nil)

	in.SetWidth(10)

	assert.Equal(t, 10, in.Width())
	assert.Equal(t, 20, in.textinput.Width)
}
