package motion

import (
	"slices"

	"github.com/zjrosen/videre/internal/buffer"
)

// FindChar looks for target on the cursor line (f, F, t, T). A forward
// search starts right of at and a backward one left of it. With till the
// result stops one scalar short of the match. It reports false, leaving
// at unchanged, when the line holds no match.
func FindChar(b *buffer.Buffer, at buffer.Position, target rune, forward, till bool) (buffer.Position, bool) {
	step := 1
	if !forward {
		step = -1
	}
	for pos := buffer.Pos(at.Line, at.Column+step); ; pos.Column += step {
		r, ok := b.RuneAt(pos)
		if !ok {
			return at, false
		}
		if r == target {
			if till {
				pos.Column -= step
			}
			return pos, true
		}
	}
}

// bracketPairs maps each bracket to its partner and scan direction.
var bracketPairs = map[rune]struct {
	partner rune
	forward bool
}{
	'(': {')', true},
	'[': {']', true},
	'{': {'}', true},
	')': {'(', false},
	']': {'[', false},
	'}': {'{', false},
}

// MatchBracket jumps to the partner of the first bracket at or after the
// cursor on its line (%). Nested pairs of the same kind are skipped. It
// reports false when there is no bracket or no partner.
func MatchBracket(b *buffer.Buffer, at buffer.Position) (buffer.Position, bool) {
	line := b.Runes(at.Line)
	col := max(at.Column, 0)
	for col < len(line) {
		if _, ok := bracketPairs[line[col]]; ok {
			break
		}
		col++
	}
	if col >= len(line) {
		return at, false
	}

	open := line[col]
	pair := bracketPairs[open]
	depth := 0
	for pos := buffer.Pos(at.Line, col); pos.Line >= 0 && pos.Line < b.LineCount(); pos = stepScalar(b, pos, pair.forward) {
		r, ok := b.RuneAt(pos)
		if !ok {
			continue
		}
		switch r {
		case open:
			depth++
		case pair.partner:
			depth--
			if depth == 0 {
				return pos, true
			}
		}
	}
	return at, false
}

// stepScalar moves one scalar forward or backward, wrapping across lines.
// Empty lines yield a position RuneAt rejects.
func stepScalar(b *buffer.Buffer, pos buffer.Position, forward bool) buffer.Position {
	if forward {
		if pos.Column+1 < b.LineLength(pos.Line) {
			return buffer.Pos(pos.Line, pos.Column+1)
		}
		return buffer.Pos(pos.Line+1, 0)
	}
	if pos.Column > 0 {
		return buffer.Pos(pos.Line, pos.Column-1)
	}
	if pos.Line == 0 {
		return buffer.Pos(-1, 0)
	}
	return buffer.Pos(pos.Line-1, b.LineLength(pos.Line-1)-1)
}

// Search returns the next literal occurrence of pattern after at, or the
// previous one before it when forward is false. The search wraps around
// the buffer and may come back to at itself. It reports false when the
// pattern is empty or occurs nowhere.
func Search(b *buffer.Buffer, at buffer.Position, pattern string, forward bool) (buffer.Position, bool) {
	pat := []rune(pattern)
	n := b.LineCount()
	if len(pat) == 0 {
		return at, false
	}

	if forward {
		if col := indexFrom(b.Runes(at.Line), pat, at.Column+1); col >= 0 {
			return buffer.Pos(at.Line, col), true
		}
		for i := 1; i <= n; i++ {
			l := (at.Line + i) % n
			if col := indexFrom(b.Runes(l), pat, 0); col >= 0 {
				return buffer.Pos(l, col), true
			}
		}
		return at, false
	}

	if col := lastIndexBefore(b.Runes(at.Line), pat, at.Column-1); col >= 0 {
		return buffer.Pos(at.Line, col), true
	}
	for i := 1; i <= n; i++ {
		l := (at.Line - i%n + n) % n
		line := b.Runes(l)
		if col := lastIndexBefore(line, pat, len(line)); col >= 0 {
			return buffer.Pos(l, col), true
		}
	}
	return at, false
}

// indexFrom returns the first match of pat in line starting at or after
// from, or -1.
func indexFrom(line, pat []rune, from int) int {
	for col := max(from, 0); col+len(pat) <= len(line); col++ {
		if slices.Equal(line[col:col+len(pat)], pat) {
			return col
		}
	}
	return -1
}

// lastIndexBefore returns the last match of pat in line starting at or
// before last, or -1.
func lastIndexBefore(line, pat []rune, last int) int {
	for col := min(last, len(line)-len(pat)); col >= 0; col-- {
		if slices.Equal(line[col:col+len(pat)], pat) {
			return col
		}
	}
	return -1
}
