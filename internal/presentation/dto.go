package presentation

import (
	"sort"
	"time"

	"github.com/zjrosen/videre/internal/register"
)

// RegisterDTO is one stored register as printed by `videre registers`.
type RegisterDTO struct {
	Name      string     `json:"name"`
	Kind      string     `json:"kind"` // "chars" or "lines"
	Text      string     `json:"text"`
	Lines     []string   `json:"lines,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StyleDTO is one highlight style as printed by `videre styles`.
type StyleDTO struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

// FromRegisters converts a register snapshot, sorted by name. updated may
// be nil when timestamps are unknown.
func FromRegisters(snap map[rune]register.Content, updated func(rune) (time.Time, bool)) []RegisterDTO {
	names := make([]rune, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	dtos := make([]RegisterDTO, 0, len(names))
	for _, name := range names {
		c := snap[name]
		dto := RegisterDTO{Name: string(name), Kind: "chars", Text: c.Text()}
		if lines, ok := c.(register.Lines); ok {
			dto.Kind = "lines"
			dto.Lines = []string(lines)
		}
		if updated != nil {
			if ts, ok := updated(name); ok {
				dto.UpdatedAt = &ts
			}
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// FromStyles marks current among names.
func FromStyles(names []string, current string) []StyleDTO {
	dtos := make([]StyleDTO, len(names))
	for i, n := range names {
		dtos[i] = StyleDTO{Name: n, Current: n == current}
	}
	return dtos
}
