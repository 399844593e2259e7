// Package log writes leveled, categorized debug logs for videre.
//
// Logging is off until Init is called, which happens only when --debug or
// VIDERE_DEBUG is set. Every line is also published on a broker so the UI
// can tail it.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/videre/internal/pubsub"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a case-insensitive name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category groups related messages.
type Category string

const (
	CatBuffer    Category = "buffer"    // text mutation
	CatMode      Category = "mode"      // mode transitions
	CatRegister  Category = "register"  // register reads and writes
	CatClipboard Category = "clipboard" // system clipboard bridge
	CatTerminal  Category = "terminal"  // terminal capture and restore
	CatConfig    Category = "config"
	CatFile      Category = "file"    // document load and save
	CatStore     Category = "store"   // register persistence
	CatWatcher   Category = "watcher" // file watcher events
	CatUI        Category = "ui"
)

// Logger is the process-wide sink.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	mu  sync.RWMutex
	std *Logger
)

// Init opens path for appending, routes the standard library logger there
// through tea.LogToFile, and enables logging. The returned func closes the
// file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "videre")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(f, f)
	return func() {
		Disable()
		_ = f.Close()
	}, nil
}

// InitWriter logs to w. It is meant for tests and for piping logs
// somewhere other than a file.
func InitWriter(w io.Writer) {
	install(w, nil)
}

func install(w io.Writer, c io.Closer) {
	mu.Lock()
	defer mu.Unlock()
	if std != nil && std.broker != nil {
		std.broker.Close()
	}
	std = &Logger{
		out:      w,
		closer:   c,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

// Disable turns logging off and releases subscribers.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	if std == nil {
		return
	}
	if std.broker != nil {
		std.broker.Close()
	}
	std = nil
}

// SetMinLevel drops messages below level.
func SetMinLevel(level Level) {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l == nil {
		return
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Enabled reports whether messages are being written.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return std != nil && std.enabled
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields...) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields...) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields...) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields...) }

// ErrorErr logs msg at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", text)...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	line := format(time.Now(), level, cat, msg, fields)
	if l.out != nil {
		_, _ = io.WriteString(l.out, line)
	}
	l.broker.Publish(pubsub.LoggedEvent, line)
}

// format renders one line:
//
//	2026-01-02T15:04:05 [WARN] [clipboard] write failed tool=xclip
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Listener tails log lines from inside a Bubble Tea program.
type Listener = pubsub.Listener[string]

// NewListener subscribes to log lines. It returns nil when logging is off.
func NewListener(ctx context.Context) *Listener {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[string](ctx, l.broker)
}

// DebugEnabledFromEnv reports whether VIDERE_DEBUG asks for logging.
func DebugEnabledFromEnv() bool {
	v := strings.ToLower(os.Getenv("VIDERE_DEBUG"))
	return v != "" && v != "0" && v != "false"
}
