package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/videre/internal/register"
)

const (
	kindChars = "chars"
	kindLines = "lines"
)

// RegisterModel is one row of the registers table.
type RegisterModel struct {
	Name      string
	Kind      string
	Payload   string // raw text for chars, a JSON array for lines
	UpdatedAt int64  // Unix timestamp
}

func toRegisterModel(name rune, c register.Content, now time.Time) (*RegisterModel, error) {
	m := &RegisterModel{Name: string(name), UpdatedAt: now.Unix()}
	switch v := c.(type) {
	case register.Characters:
		m.Kind = kindChars
		m.Payload = string(v)
	case register.Lines:
		data, err := json.Marshal([]string(v))
		if err != nil {
			return nil, fmt.Errorf("encoding register %q: %w", name, err)
		}
		m.Kind = kindLines
		m.Payload = string(data)
	default:
		return nil, fmt.Errorf("register %q: unknown content %T", name, c)
	}
	return m, nil
}

func (m *RegisterModel) toContent() (rune, register.Content, error) {
	runes := []rune(m.Name)
	if len(runes) != 1 {
		return 0, nil, fmt.Errorf("bad register name %q", m.Name)
	}
	switch m.Kind {
	case kindChars:
		return runes[0], register.Characters(m.Payload), nil
	case kindLines:
		var lines []string
		if err := json.Unmarshal([]byte(m.Payload), &lines); err != nil {
			return 0, nil, fmt.Errorf("decoding register %q: %w", m.Name, err)
		}
		return runes[0], register.Lines(lines), nil
	}
	return 0, nil, fmt.Errorf("register %q: unknown kind %q", m.Name, m.Kind)
}
