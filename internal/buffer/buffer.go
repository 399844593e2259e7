// Package buffer holds the text of an open document as a sequence of lines.
//
// A Buffer always has at least one line. Content "a\nb\n" produces three
// lines, the last one empty and addressable. Callers are responsible for
// passing in-range line indices; the buffer does not clamp.
package buffer

import (
	"strings"
)

// Buffer is an ordered sequence of lines, each stored as runes.
type Buffer struct {
	lines [][]rune
}

// New creates a buffer from content split on "\n".
func New(content string) *Buffer {
	parts := strings.Split(content, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Buffer{lines: lines}
}

// FromLines creates a buffer from already split lines.
func FromLines(lines []string) *Buffer {
	if len(lines) == 0 {
		return New("")
	}
	b := &Buffer{lines: make([][]rune, len(lines))}
	for i, l := range lines {
		b.lines[i] = []rune(l)
	}
	return b
}

// LineCount returns the number of lines. It is never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the number of scalars on the given line.
func (b *Buffer) LineLength(line int) int {
	return len(b.lines[line])
}

// Line returns the content of a line.
func (b *Buffer) Line(line int) string {
	return string(b.lines[line])
}

// Runes returns the runes of a line. The slice must not be modified.
func (b *Buffer) Runes(line int) []rune {
	return b.lines[line]
}

// RuneAt returns the scalar at pos, or false when pos is past the end of its line.
func (b *Buffer) RuneAt(pos Position) (rune, bool) {
	if pos.Line < 0 || pos.Line >= len(b.lines) {
		return 0, false
	}
	l := b.lines[pos.Line]
	if pos.Column < 0 || pos.Column >= len(l) {
		return 0, false
	}
	return l[pos.Column], true
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// String joins all lines with "\n".
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{lines: make([][]rune, len(b.lines))}
	for i, l := range b.lines {
		c.lines[i] = append([]rune(nil), l...)
	}
	return c
}

// Substring returns the inclusive span from..to joined with "\n".
// from must not be after to. An end column past the end of its line
// selects the remainder of that line.
func (b *Buffer) Substring(from, to Position) string {
	if from.Line == to.Line {
		l := b.lines[from.Line]
		start, end := clampSpan(from.Column, to.Column, len(l))
		if start > end {
			return ""
		}
		return string(l[start : end+1])
	}

	var sb strings.Builder
	for i := from.Line; i <= to.Line && i < len(b.lines); i++ {
		l := b.lines[i]
		switch i {
		case from.Line:
			if from.Column < len(l) {
				sb.WriteString(string(l[max(from.Column, 0):]))
			}
			sb.WriteByte('\n')
		case to.Line:
			end := min(to.Column, len(l)-1)
			if end >= 0 {
				sb.WriteString(string(l[:end+1]))
			}
		default:
			sb.WriteString(string(l))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// DeleteRange removes the inclusive span from..to, merging the prefix of
// the first line with whatever follows to on the last line.
// from must not be after to.
func (b *Buffer) DeleteRange(from, to Position) {
	if from.Line == to.Line {
		l := b.lines[from.Line]
		start, end := clampSpan(from.Column, to.Column, len(l))
		if start > end {
			return
		}
		merged := make([]rune, 0, len(l)-(end-start+1))
		merged = append(merged, l[:start]...)
		merged = append(merged, l[end+1:]...)
		b.lines[from.Line] = merged
		return
	}

	first := b.lines[from.Line]
	head := first[:min(max(from.Column, 0), len(first))]
	merged := append([]rune(nil), head...)
	if to.Line < len(b.lines) {
		last := b.lines[to.Line]
		if to.Column+1 < len(last) {
			merged = append(merged, last[to.Column+1:]...)
		}
	}
	lastLine := min(to.Line, len(b.lines)-1)
	b.lines[from.Line] = merged
	b.lines = append(b.lines[:from.Line+1], b.lines[lastLine+1:]...)
}

// Insert inserts text at pos and returns the position just after it.
// Embedded newlines split the line.
func (b *Buffer) Insert(at Position, text string) Position {
	l := b.lines[at.Line]
	col := min(max(at.Column, 0), len(l))
	head := append([]rune(nil), l[:col]...)
	tail := append([]rune(nil), l[col:]...)

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		ins := []rune(parts[0])
		b.lines[at.Line] = append(append(head, ins...), tail...)
		return Position{Line: at.Line, Column: col + len(ins)}
	}

	newLines := make([][]rune, len(parts))
	newLines[0] = append(head, []rune(parts[0])...)
	for i := 1; i < len(parts)-1; i++ {
		newLines[i] = []rune(parts[i])
	}
	lastIns := []rune(parts[len(parts)-1])
	newLines[len(parts)-1] = append(lastIns, tail...)

	b.splice(at.Line, at.Line+1, newLines)
	return Position{Line: at.Line + len(parts) - 1, Column: len(lastIns)}
}

// InsertLines inserts whole lines so that the first becomes line index at.
// at may equal LineCount to append.
func (b *Buffer) InsertLines(at int, lines []string) {
	if len(lines) == 0 {
		return
	}
	newLines := make([][]rune, len(lines))
	for i, l := range lines {
		newLines[i] = []rune(l)
	}
	b.splice(at, at, newLines)
}

// DeleteLines removes lines from..to inclusive and returns their content.
// Deleting every line leaves a single empty line.
func (b *Buffer) DeleteLines(from, to int) []string {
	removed := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		removed = append(removed, string(b.lines[i]))
	}
	b.lines = append(b.lines[:from], b.lines[to+1:]...)
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	return removed
}

// SetLine replaces the content of a line.
func (b *Buffer) SetLine(line int, content string) {
	b.lines[line] = []rune(content)
}

func (b *Buffer) splice(from, to int, repl [][]rune) {
	out := make([][]rune, 0, len(b.lines)-(to-from)+len(repl))
	out = append(out, b.lines[:from]...)
	out = append(out, repl...)
	out = append(out, b.lines[to:]...)
	b.lines = out
}

func clampSpan(start, end, length int) (int, int) {
	return max(start, 0), min(end, length-1)
}
