// Package highlight turns buffer text into ANSI-colored display lines.
//
// Each display line carries exactly the characters of its raw line, with
// escape sequences interleaved, so it can be fed straight into the
// selection compositor.
package highlight

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// DefaultStyle is used when the configured style is unknown.
const DefaultStyle = "monokai"

// Highlighter colors one document. It caches the last result, so calling
// Lines with unchanged text is cheap.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	styleName string
	formatter chroma.Formatter

	lastText  string
	lastLines []string
	valid     bool
}

// New picks a lexer from filename, falling back to content analysis of
// sample and then to plain text.
func New(filename, styleName, sample string) *Highlighter {
	lex := lexers.Match(filename)
	if lex == nil && sample != "" {
		lex = lexers.Analyse(sample)
	}
	if lex == nil {
		lex = lexers.Get("plaintext")
	}
	if lex == nil {
		lex = lexers.Fallback
	}

	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}

	h := &Highlighter{lexer: chroma.Coalesce(lex), formatter: f}
	if !h.SetStyle(styleName) {
		h.SetStyle(DefaultStyle)
	}
	return h
}

// Language returns the lexer name, e.g. "Go" or "plaintext".
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// StyleName returns the active style.
func (h *Highlighter) StyleName() string { return h.styleName }

// SetStyle switches to the named chroma style. It reports false, leaving
// the style unchanged, when the name is unknown.
func (h *Highlighter) SetStyle(name string) bool {
	s, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return false
	}
	h.style = s
	h.styleName = strings.ToLower(name)
	h.valid = false
	return true
}

// Lines returns one display line per "\n"-separated line of text.
func (h *Highlighter) Lines(text string) []string {
	if h.valid && text == h.lastText {
		return h.lastLines
	}

	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	copy(out, raw)

	if it, err := h.lexer.Tokenise(nil, text); err == nil {
		for i, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
			if i >= len(raw) {
				break
			}
			if colored, ok := h.render(tokens, raw[i]); ok {
				out[i] = colored
			}
		}
	}

	h.lastText, h.lastLines, h.valid = text, out, true
	return out
}

// render formats one line of tokens. It refuses any result whose visible
// text differs from raw.
func (h *Highlighter) render(tokens []chroma.Token, raw string) (string, bool) {
	trimmed := make([]chroma.Token, 0, len(tokens))
	for _, t := range tokens {
		t.Value = strings.TrimSuffix(t.Value, "\n")
		if t.Value != "" {
			trimmed = append(trimmed, t)
		}
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, chroma.Literator(trimmed...)); err != nil {
		return "", false
	}
	s := sb.String()
	if ansi.Strip(s) != raw {
		return "", false
	}
	return s, true
}

// StyleNames lists every available style, sorted.
func StyleNames() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}
