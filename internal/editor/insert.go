package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/videre/internal/buffer"
)

// insertHandler types text at the cursor.
type insertHandler struct {
	e *Editor
}

func newInsertHandler(e *Editor) *insertHandler {
	return &insertHandler{e: e}
}

func (h *insertHandler) Enter() {
	h.e.ClampCursorForInsert()
}

// Exit steps back onto the last typed scalar, as vim does.
func (h *insertHandler) Exit() {
	if h.e.cursor.Position.Column > 0 {
		h.e.cursor.Position.Column--
	}
	h.e.cursor.PreferredColumn = h.e.cursor.Position.Column
}

func (h *insertHandler) HandleInput(k Key) bool {
	e := h.e
	switch k {
	case KeyEscape, KeyCtrlC:
		e.SetMode(ModeNormal)
	case KeyEnter:
		h.insert("\n")
	case KeyTab:
		h.insert(strings.Repeat(" ", e.opts.TabWidth))
	case KeyBackspace:
		h.backspace()
	case KeyDelete:
		h.deleteForward()
	case KeyLeft:
		e.MoveCursorLeft(1)
	case KeyRight:
		e.MoveCursorRight(1)
	case KeyUp:
		e.MoveCursorUp(1)
	case KeyDown:
		e.MoveCursorDown(1)
	case KeyHome:
		e.MoveCursorTo(buffer.Pos(e.cursor.Position.Line, 0))
	case KeyEnd:
		e.MoveCursorTo(buffer.Pos(e.cursor.Position.Line, e.buf.LineLength(e.cursor.Position.Line)))
	default:
		if !printable(k) {
			return false
		}
		h.insert(string(k))
	}
	return true
}

func (h *insertHandler) insert(text string) {
	e := h.e
	e.SetCursor(e.buf.Insert(e.cursor.Position, text))
	e.MarkDirty()
}

// backspace deletes the scalar left of the cursor, joining with the
// previous line at column 0.
func (h *insertHandler) backspace() {
	e := h.e
	p := e.cursor.Position
	switch {
	case p.Column > 0:
		at := buffer.Pos(p.Line, p.Column-1)
		e.buf.DeleteRange(at, at)
		e.SetCursor(at)
	case p.Line > 0:
		prevLen := e.buf.LineLength(p.Line - 1)
		e.buf.DeleteRange(buffer.Pos(p.Line-1, prevLen), buffer.Pos(p.Line, -1))
		e.SetCursor(buffer.Pos(p.Line-1, prevLen))
	default:
		return
	}
	e.MarkDirty()
}

// deleteForward deletes the scalar under the cursor, joining with the
// next line at the end of a line.
func (h *insertHandler) deleteForward() {
	e := h.e
	p := e.cursor.Position
	switch {
	case p.Column < e.buf.LineLength(p.Line):
		e.buf.DeleteRange(p, p)
	case p.Line < e.buf.LineCount()-1:
		e.buf.DeleteRange(p, buffer.Pos(p.Line+1, -1))
	default:
		return
	}
	e.MarkDirty()
}

// printable reports whether k is literal text rather than a control key.
func printable(k Key) bool {
	if k == "" || namedKeys[k] || !utf8.ValidString(string(k)) {
		return false
	}
	for _, r := range string(k) {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

var namedKeys = map[Key]bool{
	KeyDelete: true, KeyUp: true, KeyDown: true, KeyLeft: true,
	KeyRight: true, KeyHome: true, KeyEnd: true,
}
