package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRegisters formats registers as JSON
func (f *Formatter) FormatRegisters(regs []RegisterDTO) error {
	return f.encode(regs)
}

// FormatStyles formats styles as JSON
func (f *Formatter) FormatStyles(styles []StyleDTO) error {
	return f.encode(styles)
}

// FormatStylesPlain writes one style per line, marking the current one.
func (f *Formatter) FormatStylesPlain(styles []StyleDTO) error {
	var sb strings.Builder
	for _, s := range styles {
		mark := " "
		if s.Current {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, s.Name)
	}
	_, err := io.WriteString(f.writer, sb.String())
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
