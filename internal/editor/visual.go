package editor

import (
	"strings"
	"unicode"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/motion"
	"github.com/zjrosen/videre/internal/register"
)

// visualHandler builds a selection anchored where the mode was entered.
// One instance exists per visual variant.
type visualHandler struct {
	e         *Editor
	kind      Mode
	start     buffer.Position
	active    bool
	forcedEnd *buffer.Position
	pendingG  bool
}

func newVisualHandler(e *Editor, kind Mode) *visualHandler {
	return &visualHandler{e: e, kind: kind}
}

func (v *visualHandler) Enter() {
	v.start = v.e.cursor.Position
	v.active = true
	v.forcedEnd = nil
	v.pendingG = false
}

func (v *visualHandler) Exit() {
	v.start = buffer.Position{}
	v.active = false
	v.forcedEnd = nil
	v.pendingG = false
}

func (v *visualHandler) isLineVisual() bool  { return v.kind == ModeVisualLine }
func (v *visualHandler) isBlockVisual() bool { return v.kind == ModeVisualBlock }

// SelectionRange orders the anchor and the live end. Line-wise selection
// widens to whole lines. Block selection uses the two corners as-is.
func (v *visualHandler) SelectionRange() (buffer.Position, buffer.Position) {
	end := v.e.cursor.Position
	if v.forcedEnd != nil {
		end = *v.forcedEnd
	}
	start, end := buffer.Order(v.start, end)
	if v.isLineVisual() {
		start.Column = 0
		end.Column = max(0, v.e.buf.LineLength(end.Line)-1)
	}
	return start, end
}

func (v *visualHandler) HandleInput(k Key) bool {
	v.forcedEnd = nil
	e := v.e

	if v.pendingG {
		v.pendingG = false
		if k == "g" {
			e.MoveCursorTo(motion.FileStart(e.buf, e.cursor.Position))
			return true
		}
	}

	switch k {
	case KeyEscape, KeyCtrlC:
		e.SetMode(ModeNormal)
	case "h", KeyLeft:
		e.MoveCursorLeft(1)
	case "l", KeyRight:
		e.MoveCursorRight(1)
	case "j", KeyDown:
		e.MoveCursorDown(1)
	case "k", KeyUp:
		e.MoveCursorUp(1)
	case "w":
		v.move(motion.NextWord)
	case "b":
		v.move(motion.PreviousWord)
	case "e":
		v.move(motion.EndOfWord)
	case "W":
		v.move(motion.NextBigWord)
	case "B":
		v.move(motion.PreviousBigWord)
	case "E":
		v.move(motion.EndOfBigWord)
	case "%":
		if to, ok := motion.MatchBracket(e.buf, e.cursor.Position); ok {
			e.MoveCursorTo(to)
		}
	case "0", KeyHome:
		v.move(motion.LineStart)
	case "$", KeyEnd:
		v.move(motion.LineEnd)
	case "^":
		v.move(motion.FirstNonBlank)
	case "G":
		v.move(motion.FileEnd)
	case "g":
		v.pendingG = true
	case "o":
		v.start, e.cursor.Position = e.cursor.Position, v.start
		e.cursor.PreferredColumn = e.cursor.Position.Column
	case "v":
		v.switchTo(ModeVisual)
	case "V":
		v.switchTo(ModeVisualLine)
	case KeyCtrlV:
		v.switchTo(ModeVisualBlock)
	case "d", "x", KeyDelete:
		v.delete()
		e.SetMode(ModeNormal)
	case "c":
		v.delete()
		e.SetMode(ModeInsert)
	case "y":
		v.yank()
		e.SetMode(ModeNormal)
	case ">", "<":
		start, end := v.SelectionRange()
		e.SetMode(ModeNormal)
		e.shiftLines(start.Line, end.Line, k == ">")
	case "~":
		v.mapCase(toggleCase)
	case "U":
		v.mapCase(unicode.ToUpper)
	case "u":
		v.mapCase(unicode.ToLower)
	default:
		return false
	}
	return true
}

func (v *visualHandler) move(f motion.Func) {
	v.e.MoveCursorTo(f(v.e.buf, v.e.cursor.Position))
}

// switchTo changes visual variant keeping the anchor, or leaves visual
// mode when the current variant is requested again.
func (v *visualHandler) switchTo(kind Mode) {
	if kind == v.kind {
		v.e.SetMode(ModeNormal)
		return
	}
	anchor := v.start
	v.e.SetMode(kind)
	if next, ok := v.e.handlers[kind].(*visualHandler); ok {
		next.start = anchor
	}
}

// delete removes the selection and leaves the cursor at its start.
func (v *visualHandler) delete() {
	e := v.e
	start, end := v.SelectionRange()
	e.SaveUndo()
	text := e.buf.Substring(start, end)
	e.buf.DeleteRange(start, end)
	e.SetCursor(start)
	e.MarkDirty()
	e.regs.Set(register.SmallDelete, v.content(text))
}

// yank copies the selection into the unnamed register.
func (v *visualHandler) yank() {
	start, end := v.SelectionRange()
	v.e.storeRegister(0, register.Characters(v.e.buf.Substring(start, end)), false)
}

// mapCase rewrites the case of the selection and returns to Normal mode
// at its start.
func (v *visualHandler) mapCase(f func(rune) rune) {
	e := v.e
	start, end := v.SelectionRange()
	e.mapRange(start, end, f)
	e.SetMode(ModeNormal)
	e.MoveCursorTo(start)
}

func (v *visualHandler) content(text string) register.Content {
	if v.isLineVisual() {
		return register.Lines(strings.Split(text, "\n"))
	}
	return register.Characters(text)
}
