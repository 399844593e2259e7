package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/motion"
	"github.com/zjrosen/videre/internal/register"
)

// maxCount caps a typed count prefix.
const maxCount = 999999

// maxPut caps the lines (or bytes of text) one put may insert.
const maxPut = 1 << 16

// normalHandler handles navigation, operators and mode switches.
// It accumulates an optional count ("3") and register ("a) prefix
// and one pending key that needs a second one (d, y, c, g, f, m, Z...).
type normalHandler struct {
	e                *Editor
	count            int
	register         rune
	awaitingRegister bool
	pending          Key
	lastFind         *charSearch
}

// charSearch is an f, F, t or T search, kept for ; and ,.
type charSearch struct {
	target  rune
	forward bool
	till    bool
}

func newNormalHandler(e *Editor) *normalHandler {
	return &normalHandler{e: e}
}

func (n *normalHandler) Enter() { n.reset() }
func (n *normalHandler) Exit()  { n.reset() }

func (n *normalHandler) reset() {
	n.count = 0
	n.register = 0
	n.awaitingRegister = false
	n.pending = ""
}

func (n *normalHandler) HandleInput(k Key) bool {
	if n.awaitingRegister {
		n.awaitingRegister = false
		r, size := utf8.DecodeRuneInString(string(k))
		if size == len(k) && register.Valid(r) {
			n.register = r
			return true
		}
		n.reset()
		return true
	}

	if n.pending != "" {
		op := n.pending
		n.pending = ""
		handled := n.handleOperator(op, k)
		n.reset()
		return handled
	}

	if len(k) == 1 && (k[0] >= '1' && k[0] <= '9' || k[0] == '0' && n.count > 0) {
		digit := int(k[0] - '0')
		if n.count > (maxCount-digit)/10 {
			n.count = maxCount
		} else {
			n.count = n.count*10 + digit
		}
		return true
	}

	e := n.e
	count := max(n.count, 1)
	handled := true

	switch k {
	case KeyEscape, KeyCtrlC:
	case `"`:
		n.awaitingRegister = true
		return true
	case "d", "y", "c", "g", "f", "F", "t", "T", "m", "'", "Z", ">", "<":
		n.pending = k
		return true

	case "h", KeyLeft, KeyBackspace:
		e.MoveCursorLeft(count)
	case "l", KeyRight, " ":
		e.MoveCursorRight(count)
	case "j", KeyDown, KeyEnter:
		e.MoveCursorDown(count)
	case "k", KeyUp:
		e.MoveCursorUp(count)
	case "w":
		n.move(motion.Repeat(motion.NextWord, count))
	case "b":
		n.move(motion.Repeat(motion.PreviousWord, count))
	case "e":
		n.move(motion.Repeat(motion.EndOfWord, count))
	case "W":
		n.move(motion.Repeat(motion.NextBigWord, count))
	case "B":
		n.move(motion.Repeat(motion.PreviousBigWord, count))
	case "E":
		n.move(motion.Repeat(motion.EndOfBigWord, count))
	case "%":
		if to, ok := motion.MatchBracket(e.buf, e.cursor.Position); ok {
			e.MoveCursorTo(to)
		}
	case ";", ",":
		if n.lastFind != nil {
			s := *n.lastFind
			s.forward = s.forward == (k == ";")
			n.findChar(s, count, true)
		}
	case "n":
		e.searchNext(true, count)
	case "N":
		e.searchNext(false, count)
	case "0", KeyHome:
		n.move(motion.LineStart)
	case "$", KeyEnd:
		n.move(motion.LineEnd)
	case "^":
		n.move(motion.FirstNonBlank)
	case "}":
		n.move(motion.Repeat(motion.NextParagraph, count))
	case "{":
		n.move(motion.Repeat(motion.PreviousParagraph, count))
	case "G":
		n.gotoLine(motion.FileEnd)

	case "i":
		n.insertAt(e.cursor.Position)
	case "a":
		p := e.cursor.Position
		n.insertAt(buffer.Pos(p.Line, min(p.Column+1, e.buf.LineLength(p.Line))))
	case "I":
		n.insertAt(motion.FirstNonBlank(e.buf, e.cursor.Position))
	case "A":
		line := e.cursor.Position.Line
		n.insertAt(buffer.Pos(line, e.buf.LineLength(line)))
	case "o":
		n.openLine(e.cursor.Position.Line + 1)
	case "O":
		n.openLine(e.cursor.Position.Line)

	case "v":
		e.SetMode(ModeVisual)
	case "V":
		e.SetMode(ModeVisualLine)
	case KeyCtrlV:
		e.SetMode(ModeVisualBlock)

	case "x", KeyDelete:
		n.deleteChars(count)
	case "D":
		n.deleteToEnd()
	case "C":
		p := e.cursor.Position
		if !n.deleteToEnd() {
			e.SaveUndo()
		}
		e.SetMode(ModeInsert)
		e.MoveCursorTo(p)
	case "J":
		n.join(count)
	case "p":
		n.put(true, count)
	case "P":
		n.put(false, count)
	case "u":
		for range count {
			if !e.Undo() {
				e.setMessage("Already at oldest change")
				break
			}
		}
	case KeyCtrlA:
		e.addToNumber(count)
	case KeyCtrlX:
		e.addToNumber(-count)
	case KeyCtrlR:
		for range count {
			if !e.Redo() {
				e.setMessage("Already at newest change")
				break
			}
		}
	default:
		handled = false
	}

	n.reset()
	return handled
}

// handleOperator completes a two-key command such as dd, yy, cc, gg, dw,
// fx, ma, ZZ or >>.
func (n *normalHandler) handleOperator(op, k Key) bool {
	e := n.e
	count := max(n.count, 1)

	switch op {
	case "g":
		if k != "g" {
			return false
		}
		n.gotoLine(motion.FileStart)
		return true
	case "f", "F", "t", "T":
		r, ok := singleRune(k)
		if !ok {
			return false
		}
		s := charSearch{target: r, forward: op == "f" || op == "t", till: op == "t" || op == "T"}
		n.lastFind = &s
		n.findChar(s, count, false)
		return true
	case "m":
		r, ok := singleRune(k)
		return ok && e.SetMark(r)
	case "'":
		r, ok := singleRune(k)
		if ok {
			e.JumpToMark(r)
		}
		return ok
	case "Z":
		switch k {
		case "Z":
			e.request = RequestWriteQuit
		case "Q":
			e.request = RequestQuit
		default:
			return false
		}
		return true
	case ">", "<":
		if k != op {
			return false
		}
		from, to := n.lineSpan(count)
		e.shiftLines(from, to, op == ">")
		return true
	}

	if k == op {
		switch op {
		case "d":
			n.deleteLines(count)
		case "y":
			n.yankLines(count)
		case "c":
			n.changeLines(count)
		}
		return true
	}

	var (
		f         motion.Func
		inclusive bool
	)
	switch k {
	case "w":
		f = motion.NextWord
		if op == "c" {
			f, inclusive = motion.EndOfWord, true
		}
	case "e":
		f, inclusive = motion.EndOfWord, true
	case "b":
		f = motion.PreviousWord
	case "W":
		f = motion.NextBigWord
		if op == "c" {
			f, inclusive = motion.EndOfBigWord, true
		}
	case "E":
		f, inclusive = motion.EndOfBigWord, true
	case "B":
		f = motion.PreviousBigWord
	case "$":
		f, inclusive = motion.LineEnd, true
	case "0":
		f = motion.LineStart
	default:
		return false
	}

	from := e.cursor.Position
	to := motion.Repeat(f, count)(e.buf, from)
	if (k == "w" || k == "W") && !inclusive && to.Line == from.Line && (to == from || !motion.AtWordStart(e.buf, to)) {
		// No word follows on the last line: act up to its end.
		inclusive = true
	}
	start, end, ok := operatorSpan(e.buf, from, to, inclusive)
	if !ok {
		return true
	}

	text := e.buf.Substring(start, end)
	switch op {
	case "y":
		e.storeRegister(n.register, register.Characters(text), false)
		e.MoveCursorTo(start)
	case "d", "c":
		e.SaveUndo()
		e.buf.DeleteRange(start, end)
		e.storeRegister(n.register, register.Characters(text), true)
		e.MarkDirty()
		if op == "c" {
			e.SetMode(ModeInsert)
		}
		e.MoveCursorTo(start)
	}
	return true
}

// operatorSpan converts a motion from..to into the inclusive range an
// operator acts on. Exclusive motions stop before their target, and a
// forward word motion never crosses the end of the current line.
func operatorSpan(b *buffer.Buffer, from, to buffer.Position, inclusive bool) (buffer.Position, buffer.Position, bool) {
	if to.Before(from) {
		end := buffer.Pos(from.Line, from.Column-1)
		if from.Column == 0 && from.Line > to.Line {
			end = buffer.Pos(from.Line-1, b.LineLength(from.Line-1)-1)
		}
		if end.Before(to) {
			return to, to, false
		}
		return to, end, true
	}
	if to.Line > from.Line {
		to = buffer.Pos(from.Line, b.LineLength(from.Line))
	}
	if !inclusive || to.Column >= b.LineLength(to.Line) {
		to.Column--
	}
	if to.Before(from) {
		return from, from, false
	}
	return from, to, true
}

// findChar runs an f/t search count times. Repeats of a till search
// start past the match the last one stopped next to.
func (n *normalHandler) findChar(s charSearch, count int, repeat bool) {
	e := n.e
	at := e.cursor.Position
	for range count {
		from := at
		if repeat && s.till {
			if s.forward {
				from.Column++
			} else {
				from.Column--
			}
		}
		next, ok := motion.FindChar(e.buf, from, s.target, s.forward, s.till)
		if !ok {
			break
		}
		at = next
		repeat = true
	}
	e.MoveCursorTo(at)
}

func singleRune(k Key) (rune, bool) {
	r, size := utf8.DecodeRuneInString(string(k))
	if size == 0 || size != len(k) || r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}

func (n *normalHandler) move(f motion.Func) {
	n.e.MoveCursorTo(f(n.e.buf, n.e.cursor.Position))
}

// gotoLine jumps to the counted line, or uses fallback without a count.
func (n *normalHandler) gotoLine(fallback motion.Func) {
	e := n.e
	if n.count > 0 {
		line := min(n.count, e.buf.LineCount()) - 1
		e.MoveCursorTo(motion.FirstNonBlank(e.buf, buffer.Pos(line, 0)))
		return
	}
	n.move(fallback)
}

func (n *normalHandler) insertAt(pos buffer.Position) {
	n.e.SaveUndo()
	n.e.SetMode(ModeInsert)
	n.e.MoveCursorTo(pos)
}

func (n *normalHandler) openLine(at int) {
	e := n.e
	e.SaveUndo()
	e.buf.InsertLines(at, []string{""})
	e.MarkDirty()
	e.SetMode(ModeInsert)
	e.MoveCursorTo(buffer.Pos(at, 0))
}

func (n *normalHandler) deleteChars(count int) {
	e := n.e
	p := e.cursor.Position
	length := e.buf.LineLength(p.Line)
	if length == 0 || p.Column >= length {
		return
	}
	end := buffer.Pos(p.Line, min(p.Column+count-1, length-1))
	e.SaveUndo()
	text := e.buf.Substring(p, end)
	e.buf.DeleteRange(p, end)
	e.storeRegister(n.register, register.Characters(text), true)
	e.MarkDirty()
	e.MoveCursorTo(p)
}

// deleteToEnd deletes from the cursor to the end of the line (D). It
// reports false when there is nothing to delete.
func (n *normalHandler) deleteToEnd() bool {
	e := n.e
	p := e.cursor.Position
	length := e.buf.LineLength(p.Line)
	if p.Column >= length {
		return false
	}
	end := buffer.Pos(p.Line, length-1)
	e.SaveUndo()
	text := e.buf.Substring(p, end)
	e.buf.DeleteRange(p, end)
	e.storeRegister(n.register, register.Characters(text), true)
	e.MarkDirty()
	e.MoveCursorTo(p)
	return true
}

func (n *normalHandler) lineSpan(count int) (int, int) {
	from := n.e.cursor.Position.Line
	return from, min(from+count-1, n.e.buf.LineCount()-1)
}

func (n *normalHandler) deleteLines(count int) {
	e := n.e
	from, to := n.lineSpan(count)
	e.SaveUndo()
	removed := e.buf.DeleteLines(from, to)
	e.storeRegister(n.register, register.Lines(removed), true)
	e.MarkDirty()
	line := min(from, e.buf.LineCount()-1)
	e.MoveCursorTo(motion.FirstNonBlank(e.buf, buffer.Pos(line, 0)))
}

func (n *normalHandler) yankLines(count int) {
	e := n.e
	from, to := n.lineSpan(count)
	lines := e.buf.Lines()[from : to+1]
	e.storeRegister(n.register, register.Lines(lines), false)
}

func (n *normalHandler) changeLines(count int) {
	e := n.e
	from, to := n.lineSpan(count)
	e.SaveUndo()
	removed := e.buf.Lines()[from : to+1]
	if to > from {
		e.buf.DeleteLines(from+1, to)
	}
	e.buf.SetLine(from, "")
	e.storeRegister(n.register, register.Lines(removed), true)
	e.MarkDirty()
	e.SetMode(ModeInsert)
	e.MoveCursorTo(buffer.Pos(from, 0))
}

// join merges count lines (at least two) into one, separated by a space.
func (n *normalHandler) join(count int) {
	e := n.e
	line := e.cursor.Position.Line
	joins := min(max(count, 2)-1, e.buf.LineCount()-1-line)
	if joins <= 0 {
		return
	}
	e.SaveUndo()
	col := 0
	for range joins {
		cur := e.buf.Line(line)
		next := strings.TrimLeft(e.buf.Line(line+1), " \t")
		sep := " "
		if cur == "" || next == "" || strings.HasSuffix(cur, " ") {
			sep = ""
		}
		col = utf8.RuneCountInString(cur)
		e.buf.SetLine(line, cur+sep+next)
		e.buf.DeleteLines(line+1, line+1)
	}
	e.MarkDirty()
	e.MoveCursorTo(buffer.Pos(line, col))
}

// put inserts register content after (p) or before (P) the cursor.
func (n *normalHandler) put(after bool, count int) {
	e := n.e
	name := n.register
	if name == 0 {
		name = register.Unnamed
	}
	content, ok := e.regs.Get(name)
	if !ok {
		e.setMessage("Nothing in register %c", name)
		return
	}

	e.SaveUndo()
	p := e.cursor.Position
	switch c := content.(type) {
	case register.Lines:
		count = putCount(count, len(c))
		lines := make([]string, 0, len(c)*count)
		for range count {
			lines = append(lines, c...)
		}
		at := p.Line
		if after {
			at++
		}
		e.buf.InsertLines(at, lines)
		e.MoveCursorTo(motion.FirstNonBlank(e.buf, buffer.Pos(at, 0)))
	case register.Characters:
		text := strings.Repeat(string(c), putCount(count, len(c)))
		at := p
		if after && e.buf.LineLength(p.Line) > 0 {
			at.Column = min(p.Column+1, e.buf.LineLength(p.Line))
		}
		end := e.buf.Insert(at, text)
		if strings.Contains(text, "\n") {
			e.MoveCursorTo(at)
		} else {
			e.MoveCursorTo(buffer.Pos(end.Line, end.Column-1))
		}
	}
	e.MarkDirty()
}

// putCount limits count so one put inserts at most maxPut units of size.
func putCount(count, size int) int {
	return max(min(count, maxPut/max(size, 1)), 1)
}
