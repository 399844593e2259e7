package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestHost_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Save", Host.Save, []string{"ctrl+s"}},
		{"ForceQuit", Host.ForceQuit, []string{"ctrl+q"}},
		{"ToggleLog", Host.ToggleLog, []string{"ctrl+g"}},
		{"Redraw", Host.Redraw, []string{"ctrl+l"}},
		{"Prompt.Open", Prompt.Open, []string{":"}},
		{"Prompt.Search", Prompt.Search, []string{"/"}},
		{"Prompt.Cancel", Prompt.Cancel, []string{"esc", "ctrl+c"}},
		{"Prompt.Erase", Prompt.Erase, []string{"backspace", "ctrl+h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestHost_Matches(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, Host.Save))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlQ}, Host.ForceQuit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}}, Prompt.Open))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, Prompt.Cancel))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, Host.Save))

	// Ctrl-X reaches the editor as decrement.
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlX}, Host.ToggleLog))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlG}, Host.ToggleLog))
}

func TestHost_Help(t *testing.T) {
	require.Len(t, Host.ShortHelp(), 2)
	require.Len(t, Host.FullHelp(), 2)
}
