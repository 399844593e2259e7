package app

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/config"
	"github.com/zjrosen/videre/internal/document"
	"github.com/zjrosen/videre/internal/log"
	"github.com/zjrosen/videre/internal/register"
)

// runCommand executes one ":" command line.
func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	name, args := fields[0], fields[1:]
	bang := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	log.Debug(log.CatUI, "Command", "line", line)

	if n, err := strconv.Atoi(name); err == nil {
		last := m.ed.Buffer().LineCount() - 1
		m.ed.MoveCursorTo(buffer.Pos(max(0, min(n-1, last)), 0))
		m.scrollToCursor()
		return m, nil
	}

	switch name {
	case "w", "write":
		if len(args) > 0 {
			return m.writeAs(args[0])
		}
		m, _ = m.save()
		return m, nil

	case "q", "quit":
		if m.ed.Dirty() && !bang {
			m.setError("No write since last change (add ! to override)")
			return m, nil
		}
		return m.quit()

	case "wq":
		var ok bool
		if m, ok = m.save(); !ok {
			return m, nil
		}
		return m.quit()

	case "x", "exit":
		if m.ed.Dirty() {
			var ok bool
			if m, ok = m.save(); !ok {
				return m, nil
			}
		}
		return m.quit()

	case "e", "edit":
		if m.ed.Dirty() && !bang {
			m.setError("No write since last change (add ! to override)")
			return m, nil
		}
		return m.reload(), nil

	case "colo", "colorscheme":
		return m.colorscheme(args), nil

	case "reg", "registers":
		m.setStatus(registerSummary(m.ed.Registers()))
		return m, nil
	}

	m.setError("Not an editor command: " + line)
	return m, nil
}

func (m Model) colorscheme(args []string) Model {
	if m.hl == nil {
		m.setError("Syntax highlighting is disabled")
		return m
	}
	if len(args) == 0 {
		m.setStatus(m.hl.StyleName())
		return m
	}
	if !m.hl.SetStyle(args[0]) {
		m.setError(fmt.Sprintf("Cannot find color scheme '%s'", args[0]))
		return m
	}
	m.cfg.Syntax.Style = m.hl.StyleName()
	if m.configPath != "" {
		if err := config.SaveSyntaxStyle(m.configPath, m.hl.StyleName()); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to persist style", err, "path", m.configPath)
		}
	}
	return m
}

// registerSummary renders a one-line overview of stored registers.
func registerSummary(regs *register.Manager) string {
	snap := regs.Snapshot()
	if len(snap) == 0 {
		return "No registers set"
	}
	names := make([]rune, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	parts := make([]string, 0, len(names))
	for _, name := range names {
		text := strings.ReplaceAll(snap[name].Text(), "\n", "^J")
		if r := []rune(text); len(r) > 20 {
			text = string(r[:20]) + "…"
		}
		parts = append(parts, fmt.Sprintf("%c%c %s", '"', name, text))
	}
	return strings.Join(parts, "  ")
}

func saveErrorText(err error) string {
	switch {
	case errors.Is(err, document.ErrReadonly):
		return "File is read-only"
	case errors.Is(err, document.ErrNoPath):
		return "No file name"
	}
	return "Write failed: " + err.Error()
}
