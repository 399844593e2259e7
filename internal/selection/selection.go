// Package selection answers which buffer cells are selected and paints a
// selection overlay onto lines that may already carry ANSI color codes.
package selection

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/videre/internal/buffer"
)

const (
	// Color is the SGR sequence that starts the selection background.
	Color = "\x1b[48;5;242m"
	// Reset ends any SGR styling.
	Reset = "\x1b[0m"
)

// IsSelected reports whether (line, col) lies inside the inclusive range
// start..end. start must not be after end.
func IsSelected(line, col int, start, end buffer.Position) bool {
	switch {
	case line < start.Line || line > end.Line:
		return false
	case line == start.Line && line == end.Line:
		return col >= start.Column && col <= end.Column
	case line == start.Line:
		return col >= start.Column
	case line == end.Line:
		return col <= end.Column
	default:
		return true
	}
}

// Overlay is a pair of escape sequences wrapped around a span of cells.
type Overlay struct {
	Start string
	Reset string
}

// Highlight is the overlay used for visual selections.
var Highlight = Overlay{Start: Color, Reset: Reset}

// ApplySelectionHighlighting paints the selection overlay onto display,
// the rendered form of buffer line `line`. raw is the same line with all
// escape sequences stripped.
func ApplySelectionHighlighting(display string, line int, raw string, start, end buffer.Position) string {
	return Highlight.Apply(display, line, raw, start, end)
}

// Apply wraps every cell of display that falls inside start..end with the
// overlay. Escape sequences already present in display are copied through;
// inside the span the overlay is re-emitted after each of them so an
// embedded reset or color change does not end it early. Columns count
// scalars and line up with raw.
func (o Overlay) Apply(display string, line int, raw string, start, end buffer.Position) string {
	if !o.touches(line, utf8.RuneCountInString(raw), start, end) {
		return display
	}

	var sb strings.Builder
	sb.Grow(len(display) + len(o.Start) + len(o.Reset))

	col := 0
	inside := false
	state := ansi.NormalState
	for len(display) > 0 {
		seq, _, n, newState := ansi.DecodeSequence(display, state, nil)
		state = newState
		if n <= 0 {
			n = 1
			seq = display[:1]
		}
		display = display[n:]

		if isEscape(seq) {
			sb.WriteString(seq)
			if inside && seq != o.Start {
				sb.WriteString(o.Start)
			}
			continue
		}

		width := utf8.RuneCountInString(seq)
		selected := spanSelected(line, col, width, start, end)
		switch {
		case selected && !inside:
			sb.WriteString(o.Start)
		case !selected && inside:
			sb.WriteString(o.Reset)
		}
		sb.WriteString(seq)
		col += width
		inside = selected
	}

	if inside {
		sb.WriteString(o.Reset)
	}
	return sb.String()
}

// spanSelected reports whether any of the n scalars from col is selected.
// A grapheme cluster is painted whole when any part of it is selected.
func spanSelected(line, col, n int, start, end buffer.Position) bool {
	for i := range max(n, 1) {
		if IsSelected(line, col+i, start, end) {
			return true
		}
	}
	return false
}

// touches reports whether any of the first n columns of line can be selected.
func (o Overlay) touches(line, n int, start, end buffer.Position) bool {
	if line < start.Line || line > end.Line {
		return false
	}
	if line == start.Line && n > 0 && start.Column >= n {
		return false
	}
	return true
}

// isEscape reports whether seq is an escape sequence rather than a cell.
func isEscape(seq string) bool {
	if seq == "" {
		return false
	}
	switch seq[0] {
	case ansi.ESC, ansi.CSI, ansi.OSC, ansi.DCS, ansi.APC, ansi.PM, ansi.SOS:
		return true
	}
	return false
}
