package editor

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/motion"
)

// shiftLines indents (>) or dedents (<) lines from..to by TabWidth spaces.
// Empty lines are not indented. Dedenting removes at most TabWidth
// leading spaces. The cursor lands on the first non-blank of from.
func (e *Editor) shiftLines(from, to int, indent bool) {
	width := e.opts.TabWidth
	pad := strings.Repeat(" ", width)
	changed := false
	for l := from; l <= to && l < e.buf.LineCount(); l++ {
		line := e.buf.Line(l)
		next := line
		switch {
		case indent && line != "":
			next = pad + line
		case !indent:
			trim := len(line) - len(strings.TrimLeft(line, " "))
			next = line[min(trim, width):]
		}
		if next == line {
			continue
		}
		if !changed {
			e.SaveUndo()
			changed = true
		}
		e.buf.SetLine(l, next)
	}
	if changed {
		e.MarkDirty()
	}
	e.MoveCursorTo(motion.FirstNonBlank(e.buf, buffer.Pos(from, 0)))
}

// mapRange applies f to every scalar in the inclusive range start..end.
func (e *Editor) mapRange(start, end buffer.Position, f func(rune) rune) {
	changed := false
	for l := start.Line; l <= end.Line && l < e.buf.LineCount(); l++ {
		line := slices.Clone(e.buf.Runes(l))
		from, to := 0, len(line)-1
		if l == start.Line {
			from = start.Column
		}
		if l == end.Line {
			to = min(end.Column, to)
		}
		dirty := false
		for i := max(from, 0); i <= to; i++ {
			if r := f(line[i]); r != line[i] {
				line[i] = r
				dirty = true
			}
		}
		if !dirty {
			continue
		}
		if !changed {
			e.SaveUndo()
			changed = true
		}
		e.buf.SetLine(l, string(line))
	}
	if changed {
		e.MarkDirty()
	}
}

func toggleCase(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	return unicode.ToUpper(r)
}

// addToNumber adds delta to the decimal number under or after the cursor
// (Ctrl-A, Ctrl-X). A leading minus sign belongs to the number. Numbers
// that would overflow are left alone.
func (e *Editor) addToNumber(delta int) bool {
	p := e.cursor.Position
	line := e.buf.Runes(p.Line)

	i := min(max(p.Column, 0), len(line))
	if i < len(line) && isDigit(line[i]) {
		for i > 0 && isDigit(line[i-1]) {
			i--
		}
		if i > 0 && line[i-1] == '-' {
			i--
		}
	}
	for i < len(line) && !isDigit(line[i]) {
		if line[i] == '-' && i+1 < len(line) && isDigit(line[i+1]) {
			break
		}
		i++
	}
	if i >= len(line) {
		return false
	}

	j := i
	if line[j] == '-' {
		j++
	}
	for j < len(line) && isDigit(line[j]) {
		j++
	}
	n, err := strconv.Atoi(string(line[i:j]))
	if err != nil {
		return false
	}
	if delta > 0 && n > math.MaxInt-delta || delta < 0 && n < math.MinInt-delta {
		return false
	}

	repl := strconv.Itoa(n + delta)
	e.SaveUndo()
	e.buf.SetLine(p.Line, string(line[:i])+repl+string(line[j:]))
	e.MarkDirty()
	e.MoveCursorTo(buffer.Pos(p.Line, i+len(repl)-1))
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
