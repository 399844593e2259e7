package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/videre/internal/editor"
)

// translateKey converts a Bubble Tea key event into editor keys. Pasted or
// multi-rune input becomes one key per rune so the editor sees it as typed.
// Unknown keys yield nil.
func translateKey(msg tea.KeyMsg) []editor.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return nil
		}
		if len(msg.Runes) == 1 && !msg.Paste {
			k := editor.Key(string(msg.Runes))
			if msg.Alt {
				// Meta sends escape first, as a terminal would.
				return []editor.Key{editor.KeyEscape, k}
			}
			return []editor.Key{k}
		}
		out := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, runeKey(r))
		}
		return out
	case tea.KeySpace:
		return []editor.Key{" "}
	case tea.KeyEnter:
		return []editor.Key{editor.KeyEnter}
	case tea.KeyTab:
		return []editor.Key{editor.KeyTab}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []editor.Key{editor.KeyBackspace}
	case tea.KeyDelete:
		return []editor.Key{editor.KeyDelete}
	case tea.KeyEscape:
		return []editor.Key{editor.KeyEscape}
	case tea.KeyCtrlA:
		return []editor.Key{editor.KeyCtrlA}
	case tea.KeyCtrlC:
		return []editor.Key{editor.KeyCtrlC}
	case tea.KeyCtrlR:
		return []editor.Key{editor.KeyCtrlR}
	case tea.KeyCtrlV:
		return []editor.Key{editor.KeyCtrlV}
	case tea.KeyCtrlX:
		return []editor.Key{editor.KeyCtrlX}
	case tea.KeyUp:
		return []editor.Key{editor.KeyUp}
	case tea.KeyDown:
		return []editor.Key{editor.KeyDown}
	case tea.KeyLeft:
		return []editor.Key{editor.KeyLeft}
	case tea.KeyRight:
		return []editor.Key{editor.KeyRight}
	case tea.KeyHome:
		return []editor.Key{editor.KeyHome}
	case tea.KeyEnd:
		return []editor.Key{editor.KeyEnd}
	}
	return nil
}

func runeKey(r rune) editor.Key {
	switch r {
	case '\n', '\r':
		return editor.KeyEnter
	case '\t':
		return editor.KeyTab
	}
	return editor.Key(string(r))
}
