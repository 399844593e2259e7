package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/videre/internal/editor"
	"github.com/zjrosen/videre/internal/selection"
)

var (
	gutterStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	gutterCurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	fileStyle          = statusStyle.Bold(true)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	logStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tildeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// modeStyles colors the mode badge in the status line.
var modeStyles = map[editor.Mode]lipgloss.Style{
	editor.ModeNormal:      badge("39"),
	editor.ModeInsert:      badge("78"),
	editor.ModeVisual:      badge("170"),
	editor.ModeVisualLine:  badge("170"),
	editor.ModeVisualBlock: badge("170"),
}

func badge(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color(bg)).
		Bold(true).
		Padding(0, 1)
}

// cursorOverlay draws the cursor cell in reverse video.
var cursorOverlay = selection.Overlay{Start: "\x1b[7m", Reset: "\x1b[27m"}
