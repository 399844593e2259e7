// Package register implements vim-style named registers.
//
// Names are a-z, A-Z, 0-9, the unnamed register ("), the small delete
// register (-), the search register (/) and the clipboard registers
// (* and +). Clipboard registers are never stored locally; they proxy to
// a clipboard.Bridge. Every write to any other register is mirrored into
// the unnamed register. No operation returns an error: invalid names and
// clipboard failures degrade to "no content" or a dropped write.
package register

import (
	"context"
	"time"

	"github.com/zjrosen/videre/internal/clipboard"
	"github.com/zjrosen/videre/internal/log"
)

const (
	Unnamed     = '"'
	SmallDelete = '-'
	Search      = '/'
	Clipboard   = '+'
	Selection   = '*'
	Yank        = '0'
)

// DefaultClipboardTimeout bounds every clipboard call.
const DefaultClipboardTimeout = 2 * time.Second

// Manager stores register contents for the lifetime of the process.
type Manager struct {
	store     map[rune]Content
	clipboard clipboard.Bridge
	timeout   time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithClipboard routes * and + through b.
func WithClipboard(b clipboard.Bridge) Option {
	return func(m *Manager) { m.clipboard = b }
}

// WithTimeout bounds each clipboard call by d.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// NewManager creates an empty register store.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:   make(map[rune]Content),
		timeout: DefaultClipboardTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Valid reports whether name is in the register alphabet.
func Valid(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z', name >= '0' && name <= '9':
		return true
	}
	switch name {
	case Unnamed, SmallDelete, Search, Clipboard, Selection:
		return true
	}
	return false
}

// IsClipboard reports whether name proxies to the system clipboard.
func IsClipboard(name rune) bool {
	return name == Clipboard || name == Selection
}

// Get returns the content of a register, or false if it is unavailable.
func (m *Manager) Get(name rune) (Content, bool) {
	if IsClipboard(name) {
		text, ok := m.readClipboard()
		if !ok {
			return nil, false
		}
		return Characters(text), true
	}
	if !Valid(name) {
		return nil, false
	}
	c, ok := m.store[name]
	return c, ok
}

// Set replaces the content of a register.
func (m *Manager) Set(name rune, content Content) {
	if content == nil {
		return
	}
	if IsClipboard(name) {
		m.writeClipboard(content.Text())
		return
	}
	if !Valid(name) {
		log.Debug(log.CatRegister, "Ignoring write to invalid register", "name", string(name))
		return
	}
	m.store[name] = content
	m.store[Unnamed] = content
}

// Append merges content onto a register. An empty register behaves as Set.
// Clipboard registers concatenate flat text.
func (m *Manager) Append(name rune, content Content) {
	if content == nil {
		return
	}
	if IsClipboard(name) {
		old, ok := m.readClipboard()
		if !ok {
			old = ""
		}
		m.writeClipboard(old + content.Text())
		return
	}
	if !Valid(name) {
		return
	}
	existing, ok := m.store[name]
	if !ok {
		m.Set(name, content)
		return
	}
	m.Set(name, Merge(existing, content))
}

// PushDelete records a line-wise delete in register 1, shifting 1-8 to 2-9.
func (m *Manager) PushDelete(content Content) {
	for r := '9'; r > '1'; r-- {
		if prev, ok := m.store[r-1]; ok {
			m.store[r] = prev
		} else {
			delete(m.store, r)
		}
	}
	m.Set('1', content)
}

// Snapshot returns a copy of every locally stored register.
func (m *Manager) Snapshot() map[rune]Content {
	out := make(map[rune]Content, len(m.store))
	for k, v := range m.store {
		out[k] = v
	}
	return out
}

// Load restores registers without touching the unnamed mirror.
// Invalid and clipboard names are skipped.
func (m *Manager) Load(regs map[rune]Content) {
	for name, c := range regs {
		if c == nil || IsClipboard(name) || !Valid(name) {
			continue
		}
		m.store[name] = c
	}
}

func (m *Manager) readClipboard() (string, bool) {
	if m.clipboard == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	text, err := m.clipboard.Read(ctx)
	if err != nil {
		log.Debug(log.CatClipboard, "Clipboard read failed", "error", err)
		return "", false
	}
	return text, true
}

func (m *Manager) writeClipboard(text string) {
	if m.clipboard == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := m.clipboard.Write(ctx, text); err != nil {
		log.Debug(log.CatClipboard, "Clipboard write failed", "error", err)
	}
}
