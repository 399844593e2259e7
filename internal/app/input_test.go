package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/videre/internal/editor"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []editor.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, []editor.Key{"x"}},
		{"wide rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("界")}, []editor.Key{"界"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}, []editor.Key{editor.KeyEscape, "j"}},
		{"burst", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []editor.Key{"a", "b"}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\tb\r\nc"), Paste: true},
			[]editor.Key{"a", editor.KeyTab, "b", editor.KeyEnter, editor.KeyEnter, "c"}},
		{"empty runes", tea.KeyMsg{Type: tea.KeyRunes}, nil},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, []editor.Key{" "}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []editor.Key{editor.KeyEnter}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []editor.Key{editor.KeyTab}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []editor.Key{editor.KeyBackspace}},
		{"ctrl+h", tea.KeyMsg{Type: tea.KeyCtrlH}, []editor.Key{editor.KeyBackspace}},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, []editor.Key{editor.KeyDelete}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []editor.Key{editor.KeyEscape}},
		{"ctrl+a", tea.KeyMsg{Type: tea.KeyCtrlA}, []editor.Key{editor.KeyCtrlA}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []editor.Key{editor.KeyCtrlC}},
		{"ctrl+r", tea.KeyMsg{Type: tea.KeyCtrlR}, []editor.Key{editor.KeyCtrlR}},
		{"ctrl+v", tea.KeyMsg{Type: tea.KeyCtrlV}, []editor.Key{editor.KeyCtrlV}},
		{"ctrl+x", tea.KeyMsg{Type: tea.KeyCtrlX}, []editor.Key{editor.KeyCtrlX}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []editor.Key{editor.KeyUp}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, []editor.Key{editor.KeyDown}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []editor.Key{editor.KeyLeft}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, []editor.Key{editor.KeyRight}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, []editor.Key{editor.KeyHome}},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, []editor.Key{editor.KeyEnd}},
		{"unmapped", tea.KeyMsg{Type: tea.KeyF5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, translateKey(tt.msg))
		})
	}
}

func TestDropLastGrapheme(t *testing.T) {
	require.Equal(t, "", dropLastGrapheme(""))
	require.Equal(t, "", dropLastGrapheme("a"))
	require.Equal(t, "ab", dropLastGrapheme("abc"))
	require.Equal(t, "w", dropLastGrapheme("wé"), "combining mark goes with its base")
	require.Equal(t, "x", dropLastGrapheme("x👍🏽"), "emoji modifier sequence is one character")
}
