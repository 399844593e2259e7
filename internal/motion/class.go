package motion

import "unicode"

// class is the word class of a scalar used for word boundary detection.
type class int

const (
	classBlank class = iota
	classWord
	classPunct
)

// classOf classifies a scalar:
//   - blank: space, tab, carriage return
//   - word: ASCII alphanumerics, underscore, non-ASCII letters and numbers
//   - punctuation: everything else
func classOf(r rune) class {
	switch {
	case r == ' ' || r == '\t' || r == '\r' || r == '\n':
		return classBlank
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
		return classWord
	case unicode.IsLetter(r) || unicode.IsNumber(r):
		return classWord
	case unicode.IsSpace(r):
		return classBlank
	default:
		return classPunct
	}
}

// classifier maps a scalar to its word class. Small words use classOf;
// WORDs (W, B, E) use bigClassOf.
type classifier func(rune) class

// bigClassOf treats every non-blank scalar as part of the same WORD.
func bigClassOf(r rune) class {
	if classOf(r) == classBlank {
		return classBlank
	}
	return classWord
}

// nextWordStart returns the index of the next word start after pos on line,
// or len(line) when there is none.
func nextWordStart(line []rune, pos int, cls classifier) int {
	n := len(line)
	if pos >= n {
		return n
	}
	cur := cls(line[pos])
	for pos < n && cur != classBlank && cls(line[pos]) == cur {
		pos++
	}
	for pos < n && cls(line[pos]) == classBlank {
		pos++
	}
	return pos
}

// prevWordStart returns the start of the word before pos, or -1 when only
// blanks precede pos on line.
func prevWordStart(line []rune, pos int, cls classifier) int {
	if pos <= 0 || len(line) == 0 {
		return -1
	}
	pos = min(pos-1, len(line)-1)
	for pos >= 0 && cls(line[pos]) == classBlank {
		pos--
	}
	if pos < 0 {
		return -1
	}
	cur := cls(line[pos])
	for pos > 0 && cls(line[pos-1]) == cur {
		pos--
	}
	return pos
}

// firstWordStart returns the index of the first non-blank scalar, or len(line).
func firstWordStart(line []rune) int {
	pos := 0
	for pos < len(line) && classOf(line[pos]) == classBlank {
		pos++
	}
	return pos
}

// wordEnd returns the last index of the current or next word from pos,
// or -1 when no word ends after pos on this line.
func wordEnd(line []rune, pos int, cls classifier) int {
	n := len(line)
	if pos >= n {
		return -1
	}
	// Already on the last scalar of a word: step past it.
	if cls(line[pos]) != classBlank && (pos+1 >= n || cls(line[pos+1]) != cls(line[pos])) {
		pos++
	}
	for pos < n && cls(line[pos]) == classBlank {
		pos++
	}
	if pos >= n {
		return -1
	}
	cur := cls(line[pos])
	for pos+1 < n && cls(line[pos+1]) == cur {
		pos++
	}
	return pos
}

func isBlankLine(line []rune) bool {
	return firstWordStart(line) == len(line)
}
