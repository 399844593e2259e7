package register

import "strings"

// Content is what a register holds: either Characters or Lines, never both.
type Content interface {
	// Text flattens the content, joining lines with "\n".
	Text() string
	isContent()
}

// Characters is character-wise content, put inline at the cursor.
type Characters string

// Lines is line-wise content, put above or below the cursor line.
type Lines []string

func (c Characters) Text() string { return string(c) }
func (Characters) isContent()     {}

func (l Lines) Text() string { return strings.Join(l, "\n") }
func (Lines) isContent()     {}

// Merge appends incoming onto existing:
//
//	Characters(a) + Characters(b) = Characters(a+b)
//	Lines(a)      + Lines(b)      = Lines(a+b)
//	Characters(a) + Lines(b)      = Lines([a]+b)
//	Lines(a)      + Characters(b) = Lines(a+[b])
func Merge(existing, incoming Content) Content {
	switch e := existing.(type) {
	case Characters:
		switch in := incoming.(type) {
		case Characters:
			return e + in
		case Lines:
			return append(Lines{string(e)}, in...)
		}
	case Lines:
		merged := append(Lines(nil), e...)
		switch in := incoming.(type) {
		case Characters:
			return append(merged, string(in))
		case Lines:
			return append(merged, in...)
		}
	}
	return incoming
}
