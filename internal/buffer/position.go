package buffer

import "fmt"

// Position is a zero-based (line, column) coordinate into a Buffer.
// Columns count Unicode scalars, not bytes or display cells.
type Position struct {
	Line   int
	Column int
}

// Pos is shorthand for Position{Line: line, Column: col}.
func Pos(line, col int) Position {
	return Position{Line: line, Column: col}
}

// Compare returns -1, 0 or 1 comparing by line, then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	default:
		return 0
	}
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	return p.Compare(o) < 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Order returns a and b sorted so that the first is not after the second.
func Order(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
