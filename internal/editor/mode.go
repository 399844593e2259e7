package editor

import "github.com/zjrosen/videre/internal/buffer"

// Mode represents the editor's modal state.
type Mode int

const (
	// ModeNormal is for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is for typing text.
	ModeInsert
	// ModeVisual is character-wise visual selection (v).
	ModeVisual
	// ModeVisualLine is line-wise visual selection (V).
	ModeVisualLine
	// ModeVisualBlock is block visual selection (Ctrl+V). Only the two
	// corners are tracked; the span between them is treated character-wise.
	ModeVisualBlock
)

// String returns the mode indicator shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL LINE"
	case ModeVisualBlock:
		return "VISUAL BLOCK"
	default:
		return "UNKNOWN"
	}
}

// IsVisual reports whether m is one of the visual modes.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}

// Key is one unit of input. Printable input is the literal text of a
// single key press; special keys use the constants below.
type Key string

const (
	KeyEscape    Key = "\x1b"
	KeyCtrlA     Key = "\x01"
	KeyCtrlC     Key = "\x03"
	KeyCtrlR     Key = "\x12"
	KeyCtrlV     Key = "\x16"
	KeyCtrlX     Key = "\x18"
	KeyEnter     Key = "\r"
	KeyTab       Key = "\t"
	KeyBackspace Key = "\x7f"
	KeyDelete    Key = "<delete>"
	KeyUp        Key = "<up>"
	KeyDown      Key = "<down>"
	KeyLeft      Key = "<left>"
	KeyRight     Key = "<right>"
	KeyHome      Key = "<home>"
	KeyEnd       Key = "<end>"
)

// Handler is the behavior of one mode.
type Handler interface {
	// Enter is called when the mode becomes active.
	Enter()
	// Exit is called when the mode stops being active.
	Exit()
	// HandleInput processes one key and reports whether it was handled.
	HandleInput(k Key) bool
}

// SelectionHandler is a Handler that maintains a selection.
type SelectionHandler interface {
	Handler
	// SelectionRange returns the ordered, inclusive selection bounds.
	SelectionRange() (start, end buffer.Position)
}
