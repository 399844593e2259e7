// Package motion computes cursor targets from buffer content.
//
// Every motion is a pure function of a buffer and a starting position.
// Motions never mutate the buffer, never fail, and always return a
// position that exists in the buffer (column 0 on an empty line).
package motion

import "github.com/zjrosen/videre/internal/buffer"

// Func computes a target position from a starting position.
type Func func(b *buffer.Buffer, at buffer.Position) buffer.Position

// NextWord returns the start of the next word (w). It crosses line
// boundaries; an empty line counts as a word. On the last word of the
// buffer it moves to the last column.
func NextWord(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return nextWord(b, at, classOf)
}

// NextBigWord is NextWord over blank-separated WORDs (W).
func NextBigWord(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return nextWord(b, at, bigClassOf)
}

func nextWord(b *buffer.Buffer, at buffer.Position, cls classifier) buffer.Position {
	line := b.Runes(at.Line)
	if at.Column < len(line) {
		if col := nextWordStart(line, at.Column, cls); col > at.Column && col < len(line) {
			return buffer.Pos(at.Line, col)
		}
	}
	if at.Line < b.LineCount()-1 {
		next := b.Runes(at.Line + 1)
		col := firstWordStart(next)
		if col >= len(next) {
			col = 0
		}
		return buffer.Pos(at.Line+1, col)
	}
	return buffer.Pos(at.Line, lastColumn(line))
}

// PreviousWord returns the start of the previous word (b). Lines holding
// only blanks are skipped; an empty line stops the motion.
func PreviousWord(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return previousWord(b, at, classOf)
}

// PreviousBigWord is PreviousWord over blank-separated WORDs (B).
func PreviousBigWord(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return previousWord(b, at, bigClassOf)
}

func previousWord(b *buffer.Buffer, at buffer.Position, cls classifier) buffer.Position {
	if col := prevWordStart(b.Runes(at.Line), at.Column, cls); col >= 0 {
		return buffer.Pos(at.Line, col)
	}
	for l := at.Line - 1; l >= 0; l-- {
		prev := b.Runes(l)
		if len(prev) == 0 {
			return buffer.Pos(l, 0)
		}
		if col := prevWordStart(prev, len(prev), cls); col >= 0 {
			return buffer.Pos(l, col)
		}
	}
	return buffer.Pos(0, 0)
}

// EndOfWord returns the last scalar of the current or next word (e).
// Blank lines are skipped; an empty line stops the motion.
func EndOfWord(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return endOfWord(b, at, classOf)
}

// EndOfBigWord is EndOfWord over blank-separated WORDs (E).
func EndOfBigWord(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return endOfWord(b, at, bigClassOf)
}

func endOfWord(b *buffer.Buffer, at buffer.Position, cls classifier) buffer.Position {
	line := b.Runes(at.Line)
	if col := wordEnd(line, at.Column, cls); col > at.Column {
		return buffer.Pos(at.Line, col)
	}
	for l := at.Line + 1; l < b.LineCount(); l++ {
		next := b.Runes(l)
		if len(next) == 0 {
			return buffer.Pos(l, 0)
		}
		if !isBlankLine(next) {
			return buffer.Pos(l, firstWordEndFrom(next, cls))
		}
	}
	return buffer.Pos(at.Line, min(at.Column, lastColumn(line)))
}

// firstWordEndFrom returns the end of the first word on a non-blank line.
func firstWordEndFrom(line []rune, cls classifier) int {
	pos := firstWordStart(line)
	cur := cls(line[pos])
	for pos+1 < len(line) && cls(line[pos+1]) == cur {
		pos++
	}
	return pos
}

// LineStart returns column 0 of the current line (0).
func LineStart(_ *buffer.Buffer, at buffer.Position) buffer.Position {
	return buffer.Pos(at.Line, 0)
}

// LineEnd returns the last valid column of the current line, or 0 when
// the line is empty ($).
func LineEnd(b *buffer.Buffer, at buffer.Position) buffer.Position {
	return buffer.Pos(at.Line, lastColumn(b.Runes(at.Line)))
}

// FirstNonBlank returns the first non-blank column of the line (^).
func FirstNonBlank(b *buffer.Buffer, at buffer.Position) buffer.Position {
	line := b.Runes(at.Line)
	col := firstWordStart(line)
	if col >= len(line) {
		col = lastColumn(line)
	}
	return buffer.Pos(at.Line, col)
}

// FileStart returns the first non-blank column of the first line (gg).
func FileStart(b *buffer.Buffer, _ buffer.Position) buffer.Position {
	return FirstNonBlank(b, buffer.Pos(0, 0))
}

// FileEnd returns the first non-blank column of the last line (G).
func FileEnd(b *buffer.Buffer, _ buffer.Position) buffer.Position {
	return FirstNonBlank(b, buffer.Pos(b.LineCount()-1, 0))
}

// NextParagraph returns the next blank line after the current paragraph,
// or the end of the buffer (}).
func NextParagraph(b *buffer.Buffer, at buffer.Position) buffer.Position {
	l := at.Line
	for l < b.LineCount()-1 && isBlankLine(b.Runes(l)) {
		l++
	}
	for l < b.LineCount()-1 {
		l++
		if isBlankLine(b.Runes(l)) {
			return buffer.Pos(l, 0)
		}
	}
	return LineEnd(b, buffer.Pos(l, 0))
}

// PreviousParagraph returns the previous blank line before the current
// paragraph, or the start of the buffer ({).
func PreviousParagraph(b *buffer.Buffer, at buffer.Position) buffer.Position {
	l := at.Line
	for l > 0 && isBlankLine(b.Runes(l)) {
		l--
	}
	for l > 0 {
		l--
		if isBlankLine(b.Runes(l)) {
			return buffer.Pos(l, 0)
		}
	}
	return buffer.Pos(0, 0)
}

// Repeat applies f count times, stopping early once it stops moving.
func Repeat(f Func, count int) Func {
	return func(b *buffer.Buffer, at buffer.Position) buffer.Position {
		for range max(count, 1) {
			next := f(b, at)
			if next == at {
				break
			}
			at = next
		}
		return at
	}
}

func lastColumn(line []rune) int {
	return max(len(line)-1, 0)
}

// AtWordStart reports whether pos is the first scalar of a word.
func AtWordStart(b *buffer.Buffer, pos buffer.Position) bool {
	line := b.Runes(pos.Line)
	if pos.Column < 0 || pos.Column >= len(line) || classOf(line[pos.Column]) == classBlank {
		return false
	}
	return pos.Column == 0 || classOf(line[pos.Column-1]) != classOf(line[pos.Column])
}
