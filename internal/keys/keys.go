// Package keys contains the host keybindings that sit in front of the
// modal editor. Everything not bound here is passed to the editor.
package keys

import "github.com/charmbracelet/bubbles/key"

// HostKeys are active in every editor mode.
type HostKeys struct {
	Save      key.Binding
	ForceQuit key.Binding
	ToggleLog key.Binding
	Redraw    key.Binding
}

// PromptKeys drive the ":" command line and the "/" search line.
type PromptKeys struct {
	Open   key.Binding
	Search key.Binding
	Submit key.Binding
	Cancel key.Binding
	Erase  key.Binding
	Clear  key.Binding
}

// Host is the global binding set.
var Host = HostKeys{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "write file"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("ctrl+q", "quit without saving"),
	),
	ToggleLog: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "toggle debug log"),
	),
	Redraw: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "redraw"),
	),
}

// Prompt is the command line binding set.
var Prompt = PromptKeys{
	Open: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "command line"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search forward"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run command"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Erase: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("backspace", "delete character"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear line"),
	),
}

// ShortHelp lists the host bindings for the help line.
func (k HostKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.ForceQuit}
}

// FullHelp groups every host binding.
func (k HostKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.ForceQuit, k.Redraw}, {k.ToggleLog}}
}
