package app

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/selection"
)

// textRows is the height of the text area; the last two rows hold the
// status line and the message line.
func (m Model) textRows() int {
	return max(1, m.height-2)
}

func (m Model) gutterWidth() int {
	if !m.cfg.Editor.LineNumbers {
		return 0
	}
	digits := runewidth.StringWidth(strconv.Itoa(m.ed.Buffer().LineCount()))
	return max(3, digits) + 1
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	m.ed.ClampCursor()

	rows := m.renderText()
	if m.showLog {
		rows = m.overlayLog(rows)
	}
	rows = append(rows, m.statusLine(), m.messageLine())
	return strings.Join(rows, "\n")
}

func (m Model) renderText() []string {
	buf := m.ed.Buffer()
	cur := m.ed.Cursor().Position
	selStart, selEnd, selecting := m.ed.Selection()
	gw := m.gutterWidth()
	textWidth := max(1, m.width-gw)

	var colored []string
	if m.hl != nil {
		colored = m.hl.Lines(buf.String())
	}

	out := make([]string, 0, m.textRows())
	for row := 0; row < m.textRows(); row++ {
		i := m.top + row
		if i >= buf.LineCount() {
			out = append(out, strings.Repeat(" ", gw)+tildeStyle.Render("~"))
			continue
		}

		raw := buf.Line(i)
		display := raw
		if i < len(colored) {
			display = colored[i]
		}
		if selecting {
			display = selection.ApplySelectionHighlighting(display, i, raw, selStart, selEnd)
		}
		if i == cur.Line {
			display = drawCursor(display, i, raw, cur)
		}
		display = expandTabs(display, m.tabWidth())
		display = ansi.Truncate(display, textWidth, "")

		out = append(out, m.gutter(i, cur.Line, gw)+display)
	}
	return out
}

func (m Model) gutter(line, cursorLine, width int) string {
	if width == 0 {
		return ""
	}
	num := fmt.Sprintf("%*d ", width-1, line+1)
	if line == cursorLine {
		return gutterCurrentStyle.Render(num)
	}
	return gutterStyle.Render(num)
}

// drawCursor marks the cursor cell. Past the end of the line a blank cell
// is appended so the cursor stays visible.
func drawCursor(display string, line int, raw string, cur buffer.Position) string {
	if cur.Column >= utf8.RuneCountInString(raw) {
		return display + cursorOverlay.Start + " " + cursorOverlay.Reset
	}
	return cursorOverlay.Apply(display, line, raw, cur, cur)
}

// expandTabs replaces each tab with width spaces. Escape sequences never
// contain tabs, so this is safe on colored text.
func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

func (m Model) overlayLog(rows []string) []string {
	n := min(len(m.logLines), len(rows)/2)
	if n == 0 {
		return rows
	}
	lines := m.logLines[len(m.logLines)-n:]
	for i, l := range lines {
		rows[len(rows)-n+i] = logStyle.Render(ansi.Truncate(strings.TrimRight(l, "\n"), m.width, ""))
	}
	return rows
}

func (m Model) statusLine() string {
	mode := m.ed.Mode()
	left := modeStyles[mode].Render(mode.String())

	name := " " + m.doc.Name()
	if m.ed.Dirty() {
		name += " [+]"
	}
	if m.doc.Readonly {
		name += " [RO]"
	}
	left += fileStyle.Render(name + " ")

	cur := m.ed.Cursor().Position
	info := fmt.Sprintf(" %d:%d ", cur.Line+1, cur.Column+1)
	if m.hl != nil {
		info = " " + strings.ToLower(m.hl.Language()) + info
	}
	right := statusStyle.Render(info)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return ansi.Truncate(left+right, m.width, "")
	}
	return left + statusStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) messageLine() string {
	if m.prompt != nil {
		return ansi.Truncate(string(m.promptKind)+*m.prompt, m.width, "")
	}

	msg, isErr := m.status, m.statusErr
	if msg == "" {
		msg = m.ed.Message()
	}
	if msg == "" {
		return ""
	}
	msg = truncate.StringWithTail(msg, uint(m.width), "…")
	if isErr {
		return errorStyle.Render(msg)
	}
	return msg
}

// scrollToCursor keeps the cursor line inside the text area with
// scroll_off rows of context where the buffer allows.
func (m *Model) scrollToCursor() {
	rows := m.textRows()
	off := min(m.cfg.Editor.ScrollOff, (rows-1)/2)
	line := m.ed.Cursor().Position.Line

	if line < m.top+off {
		m.top = line - off
	}
	if line > m.top+rows-1-off {
		m.top = line - rows + 1 + off
	}
	m.top = max(0, min(m.top, m.ed.Buffer().LineCount()-rows))
}

// positionAt maps a screen cell to a buffer position.
func (m Model) positionAt(x, y int) (buffer.Position, bool) {
	if y < 0 || y >= m.textRows() {
		return buffer.Position{}, false
	}
	buf := m.ed.Buffer()
	line := min(m.top+y, buf.LineCount()-1)
	x = max(0, x-m.gutterWidth())
	return buffer.Pos(line, columnAt(buf.Runes(line), x, m.tabWidth())), true
}

// columnAt returns the index of the rune drawn at screen offset x.
func columnAt(runes []rune, x, tabWidth int) int {
	w := 0
	for i, r := range runes {
		rw := runewidth.RuneWidth(r)
		if r == '\t' {
			rw = tabWidth
		}
		if x < w+rw {
			return i
		}
		w += rw
	}
	return len(runes)
}
