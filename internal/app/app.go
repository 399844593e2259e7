// Package app contains the root Bubble Tea model: it feeds key and mouse
// input to the editor, draws the buffer, and runs ":" commands.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/clipboard"
	"github.com/zjrosen/videre/internal/config"
	"github.com/zjrosen/videre/internal/document"
	"github.com/zjrosen/videre/internal/editor"
	"github.com/zjrosen/videre/internal/highlight"
	"github.com/zjrosen/videre/internal/keys"
	"github.com/zjrosen/videre/internal/log"
	"github.com/zjrosen/videre/internal/pubsub"
	"github.com/zjrosen/videre/internal/register"
	"github.com/zjrosen/videre/internal/watcher"
)

// maxLogLines bounds the debug log kept for the overlay.
const maxLogLines = 200

// Options wires the model to its collaborators.
type Options struct {
	Config     config.Config
	ConfigPath string // where :colorscheme persists; empty disables saving
	Document   *document.Document
	Buffer     *buffer.Buffer
	Registers  *register.Manager
	Watcher    *watcher.Watcher // optional
	Clipboard  clipboard.Bridge // optional; a cached bridge is refreshed on focus
	Debug      bool
}

// Model is the root application state.
type Model struct {
	ed         *editor.Editor
	doc        *document.Document
	cfg        config.Config
	configPath string
	hl         *highlight.Highlighter

	width, height int
	top           int

	prompt     *string
	promptKind rune // ':' for commands, '/' for search
	status     string
	statusErr  bool
	quitting   bool

	dragging bool
	clip     clipboard.Bridge

	ctx           context.Context
	cancel        context.CancelFunc
	watch         *watcher.Watcher
	watchListener *pubsub.Listener[string]
	logListener   *log.Listener
	logLines      []string
	showLog       bool
}

// New creates the root model.
func New(opts Options) Model {
	buf := opts.Buffer
	if buf == nil {
		buf = buffer.New("")
	}
	doc := opts.Document
	if doc == nil {
		doc, _ = document.Scratch()
	}

	ed := editor.New(buf, opts.Registers, editor.Options{
		TabWidth:      opts.Config.Editor.TabWidth,
		UndoLevels:    opts.Config.Editor.UndoLevels,
		SyncClipboard: opts.Config.Clipboard.UnnamedPlus,
	})

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		ed:         ed,
		doc:        doc,
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		ctx:        ctx,
		cancel:     cancel,
		watch:      opts.Watcher,
		clip:       opts.Clipboard,
	}

	if opts.Config.Syntax.Enabled {
		sample := ""
		if buf.LineCount() > 0 {
			sample = buf.Line(0)
		}
		m.hl = highlight.New(doc.Path, opts.Config.Syntax.Style, sample)
	}
	if opts.Watcher != nil {
		m.watchListener = pubsub.NewListener[string](ctx, opts.Watcher)
	}
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

// Editor exposes the editing core.
func (m Model) Editor() *editor.Editor { return m.ed }

// Init implements tea.Model. It starts the watcher and log listeners.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watchListener != nil {
		cmds = append(cmds, m.watchListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scrollToCursor()
		return m, nil

	case pubsub.Event[string]:
		return m.handleEvent(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.FocusMsg:
		// Another program may have changed the clipboard meanwhile.
		if c, ok := m.clip.(*clipboard.Cached); ok {
			c.Invalidate()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleEvent(ev pubsub.Event[string]) (tea.Model, tea.Cmd) {
	if ev.Type != pubsub.LoggedEvent && m.watch != nil && ev.Payload != m.watch.Path() {
		// Left over from a watcher replaced by :w <path>.
		return m, nil
	}

	switch ev.Type {
	case pubsub.LoggedEvent:
		m.logLines = append(m.logLines, ev.Payload)
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}
		return m, m.logListener.Listen()

	case pubsub.ChangedEvent:
		if m.ed.Dirty() {
			m.setError("File changed on disk since editing started (:e! to reload)")
		} else {
			m = m.reload()
		}
	case pubsub.RemovedEvent:
		m.setError(fmt.Sprintf("%q was removed from disk", m.doc.Name()))
	}

	if m.watchListener != nil {
		return m, m.watchListener.Listen()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false

	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Host.ForceQuit):
		return m.quit()
	case key.Matches(msg, keys.Host.Save):
		m, _ = m.save()
		return m, nil
	case key.Matches(msg, keys.Host.Redraw):
		return m, tea.ClearScreen
	case m.logListener != nil && key.Matches(msg, keys.Host.ToggleLog):
		m.showLog = !m.showLog
		return m, nil
	case m.ed.Mode() == editor.ModeNormal && key.Matches(msg, keys.Prompt.Open):
		return m.openPrompt(':'), nil
	case m.ed.Mode() == editor.ModeNormal && key.Matches(msg, keys.Prompt.Search):
		return m.openPrompt('/'), nil
	}

	for _, k := range translateKey(msg) {
		m.ed.HandleInput(k)
	}
	m.scrollToCursor()

	switch m.ed.TakeRequest() {
	case editor.RequestWriteQuit:
		return m.runCommand("x")
	case editor.RequestQuit:
		return m.quit()
	}
	return m, nil
}

func (m Model) openPrompt(kind rune) Model {
	empty := ""
	m.prompt = &empty
	m.promptKind = kind
	return m
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	text := *m.prompt
	switch {
	case key.Matches(msg, keys.Prompt.Submit):
		m.prompt = nil
		if m.promptKind == '/' {
			m.ed.Search(text)
			m.scrollToCursor()
			return m, nil
		}
		return m.runCommand(text)
	case key.Matches(msg, keys.Prompt.Cancel):
		m.prompt = nil
	case key.Matches(msg, keys.Prompt.Erase):
		if text == "" {
			m.prompt = nil
			return m, nil
		}
		text = dropLastGrapheme(text)
		m.prompt = &text
	case key.Matches(msg, keys.Prompt.Clear):
		text = ""
		m.prompt = &text
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		text += string(msg.Runes)
		m.prompt = &text
	}
	return m, nil
}

// dropLastGrapheme removes the last user-perceived character of s.
func dropLastGrapheme(s string) string {
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		last, _ = g.Positions()
	}
	return s[:last]
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action == tea.MouseActionRelease {
		if m.dragging && m.ed.Mode().IsVisual() {
			if pos, ok := m.positionAt(msg.X, msg.Y); ok {
				m.ed.MoveCursorTo(pos)
			}
		}
		m.dragging = false
		return m
	}
	if msg.Button != tea.MouseButtonLeft {
		return m
	}
	pos, ok := m.positionAt(msg.X, msg.Y)
	if !ok {
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if m.ed.Mode() != editor.ModeNormal {
			m.ed.SetMode(editor.ModeNormal)
		}
		m.ed.MoveCursorTo(pos)
		m.dragging = true
	case tea.MouseActionMotion:
		if !m.dragging {
			return m
		}
		if !m.ed.Mode().IsVisual() {
			m.ed.SetMode(editor.ModeVisual)
		}
		m.ed.SetSelectionEnd(pos)
	}
	m.scrollToCursor()
	return m
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	log.Info(log.CatUI, "Quitting", "path", m.doc.Path, "dirty", m.ed.Dirty())
	return m, tea.Quit
}

func (m Model) tabWidth() int {
	if m.cfg.Editor.TabWidth > 0 {
		return m.cfg.Editor.TabWidth
	}
	return editor.DefaultOptions().TabWidth
}

// save writes the buffer and reports whether it succeeded.
func (m Model) save() (Model, bool) {
	if m.watch != nil {
		m.watch.Suppress(time.Second)
	}
	n, err := m.doc.Save(m.ed.Buffer())
	if err != nil {
		m.setError(saveErrorText(err))
		return m, false
	}
	m.ed.MarkClean()
	m.setStatus(fmt.Sprintf("%q %dL, %dB written", m.doc.Name(), m.ed.Buffer().LineCount(), n))
	return m, true
}

// writeAs saves the buffer to path. Only a successful write renames the
// document and moves the file watcher to the new path.
func (m Model) writeAs(path string) (tea.Model, tea.Cmd) {
	prev := m.doc
	next := *prev
	next.Path = path
	m.doc = &next

	var ok bool
	if m, ok = m.save(); !ok {
		m.doc = prev
		return m, nil
	}
	if filepath.Clean(path) == filepath.Clean(prev.Path) {
		return m, nil
	}
	return m, m.rewatch()
}

// rewatch replaces the file watcher with one on the document's path and
// returns the command that listens to it.
func (m *Model) rewatch() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	if err := m.watch.Stop(); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to stop watcher", err)
	}
	m.watch, m.watchListener = nil, nil

	w, err := watcher.New(watcher.Config{Path: m.doc.Path, Debounce: m.cfg.Watch.Debounce})
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to create watcher", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start watcher", err, "path", m.doc.Path)
		_ = w.Stop()
		return nil
	}
	m.watch = w
	m.watchListener = pubsub.NewListener[string](m.ctx, w)
	log.Info(log.CatWatcher, "Watching new path", "path", w.Path())
	return m.watchListener.Listen()
}

// reload replaces the buffer with the file's current content. The reload
// itself can be undone.
func (m Model) reload() Model {
	if m.doc.Path == "" {
		m.setError("No file name")
		return m
	}
	doc, buf, err := document.Open(m.doc.Path)
	if err != nil {
		m.setError(err.Error())
		return m
	}
	doc.ID, doc.Readonly = m.doc.ID, m.doc.Readonly
	m.doc = doc
	m.ed.ReplaceBuffer(buf)
	m.ed.MarkClean()
	m.scrollToCursor()
	m.setStatus(fmt.Sprintf("%q reloaded", doc.Name()))
	return m
}

// Close releases the watcher and listeners.
func (m *Model) Close() error {
	m.cancel()
	if m.watch != nil {
		return m.watch.Stop()
	}
	return nil
}
