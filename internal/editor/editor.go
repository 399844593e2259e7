// Package editor is the modal editing core: it owns the buffer, the cursor,
// the active mode and the undo history, and dispatches keys to per-mode
// handlers that mutate them.
//
// All state changes happen synchronously inside HandleInput, so an Editor
// needs no locking when driven from a single event loop.
package editor

import (
	"fmt"
	"unicode"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/log"
	"github.com/zjrosen/videre/internal/register"
)

// Cursor is the current position plus the column vertical moves aim for.
type Cursor struct {
	Position        buffer.Position
	PreferredColumn int
}

// Options tunes editing behavior.
type Options struct {
	// TabWidth is the number of spaces Tab inserts in Insert mode.
	TabWidth int
	// UndoLevels caps the undo history. Zero means unlimited.
	UndoLevels int
	// SyncClipboard also copies every yank to the + register.
	SyncClipboard bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		TabWidth:   4,
		UndoLevels: 1000,
	}
}

// Editor is the state of one open document.
type Editor struct {
	buf      *buffer.Buffer
	cursor   Cursor
	regs     *register.Manager
	mode     Mode
	handlers map[Mode]Handler
	history  *history
	dirty    bool
	opts     Options
	message  string
	marks    map[rune]buffer.Position
	request  Request
}

// Request is an action the editor asks its host to carry out, such as
// writing the file and quitting on ZZ.
type Request int

const (
	RequestNone Request = iota
	// RequestWriteQuit saves the document and exits (ZZ).
	RequestWriteQuit
	// RequestQuit exits without saving (ZQ).
	RequestQuit
)

// New creates an editor in Normal mode with the cursor at the start of buf.
func New(buf *buffer.Buffer, regs *register.Manager, opts Options) *Editor {
	if regs == nil {
		regs = register.NewManager()
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultOptions().TabWidth
	}
	e := &Editor{
		buf:     buf,
		regs:    regs,
		mode:    ModeNormal,
		history: newHistory(opts.UndoLevels),
		opts:    opts,
		marks:   make(map[rune]buffer.Position),
	}
	e.handlers = map[Mode]Handler{
		ModeNormal:      newNormalHandler(e),
		ModeInsert:      newInsertHandler(e),
		ModeVisual:      newVisualHandler(e, ModeVisual),
		ModeVisualLine:  newVisualHandler(e, ModeVisualLine),
		ModeVisualBlock: newVisualHandler(e, ModeVisualBlock),
	}
	e.handlers[ModeNormal].Enter()
	return e
}

// Buffer returns the document buffer.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Registers returns the register store.
func (e *Editor) Registers() *register.Manager { return e.regs }

// Cursor returns the cursor state.
func (e *Editor) Cursor() Cursor { return e.cursor }

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// Dirty reports whether the buffer changed since the last MarkClean.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkDirty flags the buffer as modified.
func (e *Editor) MarkDirty() { e.dirty = true }

// MarkClean clears the modified flag, typically after a save.
func (e *Editor) MarkClean() { e.dirty = false }

// Handler returns the handler registered for m.
func (e *Editor) Handler(m Mode) Handler { return e.handlers[m] }

// HandleInput dispatches k to the active mode.
func (e *Editor) HandleInput(k Key) bool {
	e.message = ""
	return e.handlers[e.mode].HandleInput(k)
}

// TakeRequest returns the pending host request and clears it.
func (e *Editor) TakeRequest() Request {
	r := e.request
	e.request = RequestNone
	return r
}

// Message returns feedback from the last key, such as "Already at oldest change".
func (e *Editor) Message() string { return e.message }

func (e *Editor) setMessage(format string, args ...any) {
	e.message = fmt.Sprintf(format, args...)
}

// SetMode exits the current mode and enters m.
func (e *Editor) SetMode(m Mode) {
	next, ok := e.handlers[m]
	if !ok {
		return
	}
	prev := e.mode
	e.handlers[prev].Exit()
	e.mode = m
	next.Enter()
	log.Debug(log.CatMode, "Mode changed", "from", prev, "to", m)
}

// Selection returns the active selection, if a visual mode is active.
func (e *Editor) Selection() (start, end buffer.Position, ok bool) {
	h, isSel := e.handlers[e.mode].(SelectionHandler)
	if !isSel || !e.mode.IsVisual() {
		return buffer.Position{}, buffer.Position{}, false
	}
	start, end = h.SelectionRange()
	return start, end, true
}

// SetSelectionEnd pins the selection end at pos independently of the
// cursor, e.g. for a mouse drag. The next key press releases it.
func (e *Editor) SetSelectionEnd(pos buffer.Position) {
	if v, ok := e.handlers[e.mode].(*visualHandler); ok && e.mode.IsVisual() {
		v.forcedEnd = &pos
	}
}

// ReplaceBuffer swaps in new content, e.g. after reloading from disk.
// History is kept so the reload can be undone.
func (e *Editor) ReplaceBuffer(buf *buffer.Buffer) {
	e.SaveUndo()
	e.buf = buf
	e.ClampCursorToBufferForRender()
}

// maxColumn is the last column the cursor may occupy on line in the
// current mode. Insert mode may sit one past the last scalar.
func (e *Editor) maxColumn(line int) int {
	n := e.buf.LineLength(line)
	if e.mode == ModeInsert {
		return n
	}
	return max(n-1, 0)
}

// MoveCursorLeft moves count columns left without leaving the line.
func (e *Editor) MoveCursorLeft(count int) {
	e.cursor.Position.Column = max(e.cursor.Position.Column-max(count, 1), 0)
	e.cursor.PreferredColumn = e.cursor.Position.Column
}

// MoveCursorRight moves count columns right without leaving the line.
func (e *Editor) MoveCursorRight(count int) {
	p := &e.cursor.Position
	p.Column = min(p.Column+max(count, 1), e.maxColumn(p.Line))
	e.cursor.PreferredColumn = p.Column
}

// MoveCursorUp moves count lines up, stopping at the first line.
func (e *Editor) MoveCursorUp(count int) {
	if e.cursor.Position.Line == 0 {
		return
	}
	e.moveVertical(max(e.cursor.Position.Line-max(count, 1), 0))
}

// MoveCursorDown moves count lines down, stopping at the last line.
// Moving down from the last line does nothing.
func (e *Editor) MoveCursorDown(count int) {
	last := e.buf.LineCount() - 1
	if e.cursor.Position.Line >= last {
		return
	}
	e.moveVertical(min(e.cursor.Position.Line+max(count, 1), last))
}

// moveVertical keeps PreferredColumn so moving back restores the column.
func (e *Editor) moveVertical(line int) {
	e.cursor.Position.Line = line
	e.cursor.Position.Column = min(e.cursor.PreferredColumn, e.maxColumn(line))
}

// MoveCursorTo moves to pos, clamped to the buffer, and remembers its column.
func (e *Editor) MoveCursorTo(pos buffer.Position) {
	line := min(max(pos.Line, 0), e.buf.LineCount()-1)
	col := min(max(pos.Column, 0), e.maxColumn(line))
	e.cursor = Cursor{Position: buffer.Pos(line, col), PreferredColumn: col}
}

// SetCursor places the cursor at pos exactly, without clamping.
func (e *Editor) SetCursor(pos buffer.Position) {
	e.cursor = Cursor{Position: pos, PreferredColumn: pos.Column}
}

// ClampCursorToBufferForRender makes the cursor reference an existing
// cell: the line is clamped to the buffer, the column to the last scalar
// (or 0 on an empty line), and PreferredColumn is reset to the result.
func (e *Editor) ClampCursorToBufferForRender() {
	p := &e.cursor.Position
	p.Line = min(max(p.Line, 0), e.buf.LineCount()-1)
	n := e.buf.LineLength(p.Line)
	if n == 0 {
		p.Column = 0
	} else {
		p.Column = min(max(p.Column, 0), n-1)
	}
	e.cursor.PreferredColumn = p.Column
}

// ClampCursorForInsert is the Insert-mode counterpart of
// ClampCursorToBufferForRender; the column may equal the line length.
func (e *Editor) ClampCursorForInsert() {
	p := &e.cursor.Position
	p.Line = min(max(p.Line, 0), e.buf.LineCount()-1)
	p.Column = min(max(p.Column, 0), e.buf.LineLength(p.Line))
	e.cursor.PreferredColumn = p.Column
}

// ClampCursor applies the clamp appropriate for the active mode.
func (e *Editor) ClampCursor() {
	if e.mode == ModeInsert {
		e.ClampCursorForInsert()
		return
	}
	e.ClampCursorToBufferForRender()
}

// SaveUndo records the current buffer and cursor so Undo can return to them.
func (e *Editor) SaveUndo() {
	e.history.push(e.snapshot())
}

// Undo restores the last saved state. It reports false when there is none.
func (e *Editor) Undo() bool {
	s, ok := e.history.undo(e.snapshot())
	if !ok {
		return false
	}
	e.restore(s)
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	s, ok := e.history.redo(e.snapshot())
	if !ok {
		return false
	}
	e.restore(s)
	return true
}

func (e *Editor) snapshot() snapshot {
	return snapshot{buf: e.buf.Clone(), cursor: e.cursor}
}

func (e *Editor) restore(s snapshot) {
	e.buf = s.buf
	e.cursor = s.cursor
	e.dirty = true
	e.ClampCursorToBufferForRender()
}

// storeRegister writes content for a yank or delete.
// name is the register the user asked for with "x, or 0 for the default.
// Uppercase names append to their lowercase register.
func (e *Editor) storeRegister(name rune, content register.Content, deleted bool) {
	switch {
	case name != 0 && unicode.IsUpper(name):
		e.regs.Append(unicode.ToLower(name), content)
	case name != 0:
		e.regs.Set(name, content)
	case !deleted:
		e.regs.Set(register.Yank, content)
	case isLines(content):
		e.regs.PushDelete(content)
	default:
		e.regs.Set(register.SmallDelete, content)
	}
	if e.opts.SyncClipboard && !deleted && !register.IsClipboard(name) {
		e.regs.Set(register.Clipboard, content)
	}
}

func isLines(c register.Content) bool {
	_, ok := c.(register.Lines)
	return ok
}
