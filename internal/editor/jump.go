package editor

import (
	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/motion"
	"github.com/zjrosen/videre/internal/register"
)

// SetMark records the cursor position under name (a-z).
func (e *Editor) SetMark(name rune) bool {
	if name < 'a' || name > 'z' {
		return false
	}
	e.marks[name] = e.cursor.Position
	return true
}

// JumpToMark moves to the position saved under name, clamped to the
// current buffer.
func (e *Editor) JumpToMark(name rune) bool {
	pos, ok := e.marks[name]
	if !ok {
		e.setMessage("Mark not set")
		return false
	}
	e.MoveCursorTo(pos)
	return true
}

// Search stores pattern in the search register and moves to its next
// match after the cursor. An empty pattern repeats the last search.
func (e *Editor) Search(pattern string) bool {
	if pattern != "" {
		e.regs.Set(register.Search, register.Characters(pattern))
	}
	return e.searchNext(true, 1)
}

// searchNext repeats the last search count times (n, N).
func (e *Editor) searchNext(forward bool, count int) bool {
	c, ok := e.regs.Get(register.Search)
	if !ok || c.Text() == "" {
		e.setMessage("No previous search pattern")
		return false
	}
	pattern := c.Text()

	at := e.cursor.Position
	var first buffer.Position
	steps := max(count, 1)
	for i := 0; i < steps; i++ {
		next, found := motion.Search(e.buf, at, pattern, forward)
		if !found {
			e.setMessage("Pattern not found: %s", pattern)
			return false
		}
		if i == 0 {
			first = next
		} else if next == first && steps == count {
			// Matches repeat with period i; skip the full cycles.
			steps = i + 1 + (count-i-1)%i
		}
		at = next
	}
	from := e.cursor.Position
	switch {
	case forward && !from.Before(at):
		e.setMessage("search hit BOTTOM, continuing at TOP")
	case !forward && !at.Before(from):
		e.setMessage("search hit TOP, continuing at BOTTOM")
	}
	e.MoveCursorTo(at)
	return true
}
