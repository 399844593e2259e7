// Package config provides configuration types, defaults, and validation for videre.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/videre/internal/log"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration options for videre.
type Config struct {
	Editor    EditorConfig    `mapstructure:"editor"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Registers RegistersConfig `mapstructure:"registers"`
	Syntax    SyntaxConfig    `mapstructure:"syntax"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// EditorConfig controls editing behavior and layout.
type EditorConfig struct {
	TabWidth    int  `mapstructure:"tab_width"`    // spaces inserted for Tab in insert mode
	UndoLevels  int  `mapstructure:"undo_levels"`  // 0 means unlimited
	LineNumbers bool `mapstructure:"line_numbers"` // show the gutter
	ScrollOff   int  `mapstructure:"scroll_off"`   // rows kept visible above and below the cursor
}

// ClipboardConfig controls the system clipboard bridge behind "+ and "*.
type ClipboardConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Timeout bounds each external clipboard tool invocation.
	Timeout time.Duration `mapstructure:"timeout"`

	// CacheTTL keeps the last read around so rapid puts don't spawn a
	// process each. Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// OSC52 adds the terminal escape sequence as a write fallback, useful
	// over ssh where no clipboard tool is reachable.
	OSC52 bool `mapstructure:"osc52"`

	// UnnamedPlus mirrors every yank into "+ as well.
	UnnamedPlus bool `mapstructure:"unnamedplus"`
}

// RegistersConfig controls register persistence between sessions.
type RegistersConfig struct {
	Persist bool   `mapstructure:"persist"`
	Path    string `mapstructure:"path"` // sqlite database file
}

// SyntaxConfig controls highlighting.
type SyntaxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Style   string `mapstructure:"style"` // chroma style name
}

// WatchConfig controls detection of on-disk changes to the open file.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// StateDir returns ~/.local/state/videre, or "" if the home directory is
// unknown.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "videre")
}

// DefaultRegistersPath returns the register database location.
func DefaultRegistersPath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "registers.db")
}

// DefaultLogPath returns where --debug writes when --log-file is not given.
func DefaultLogPath() string {
	dir := StateDir()
	if dir == "" {
		return "videre.log"
	}
	return filepath.Join(dir, "videre.log")
}

// UserConfigPath returns ~/.config/videre/config.yaml, or "" if the home
// directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "videre", "config.yaml")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:    4,
			UndoLevels:  1000,
			LineNumbers: true,
			ScrollOff:   3,
		},
		Clipboard: ClipboardConfig{
			Enabled:  true,
			Timeout:  2 * time.Second,
			CacheTTL: 500 * time.Millisecond,
		},
		Registers: RegistersConfig{
			Persist: true,
			Path:    DefaultRegistersPath(),
		},
		Syntax: SyntaxConfig{
			Enabled: true,
			Style:   "monokai",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate checks cfg for values the editor cannot run with.
func Validate(cfg Config) error {
	switch {
	case cfg.Editor.TabWidth < 0:
		return fmt.Errorf("%w: editor.tab_width must not be negative, got %d", ErrInvalid, cfg.Editor.TabWidth)
	case cfg.Editor.UndoLevels < 0:
		return fmt.Errorf("%w: editor.undo_levels must not be negative, got %d", ErrInvalid, cfg.Editor.UndoLevels)
	case cfg.Editor.ScrollOff < 0:
		return fmt.Errorf("%w: editor.scroll_off must not be negative, got %d", ErrInvalid, cfg.Editor.ScrollOff)
	}

	if cfg.Clipboard.Enabled && cfg.Clipboard.Timeout <= 0 {
		return fmt.Errorf("%w: clipboard.timeout must be positive, got %s", ErrInvalid, cfg.Clipboard.Timeout)
	}
	if cfg.Clipboard.CacheTTL < 0 {
		return fmt.Errorf("%w: clipboard.cache_ttl must not be negative, got %s", ErrInvalid, cfg.Clipboard.CacheTTL)
	}

	// Only relevant when persistence is on; an empty path disables it.
	if cfg.Registers.Persist && cfg.Registers.Path != "" && !filepath.IsAbs(cfg.Registers.Path) {
		return fmt.Errorf("%w: registers.path must be an absolute path, got %q", ErrInvalid, cfg.Registers.Path)
	}

	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative, got %s", ErrInvalid, cfg.Watch.Debounce)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# videre configuration

editor:
  tab_width: 4        # spaces inserted by Tab in insert mode
  undo_levels: 1000   # 0 = unlimited
  line_numbers: true
  scroll_off: 3

# System clipboard, used by the "+ and "* registers
clipboard:
  enabled: true
  timeout: 2s         # kill a clipboard tool that takes longer
  cache_ttl: 500ms    # reuse the last read for this long (0 disables)
  osc52: false        # also copy via terminal escape sequence (handy over ssh)
  unnamedplus: false  # mirror every yank into "+

# Registers are saved on exit and restored on start
registers:
  persist: true
  # path: ~/.local/state/videre/registers.db

syntax:
  enabled: true
  style: monokai      # any chroma style name; change at runtime with :colorscheme

# Notice when the open file changes on disk
watch:
  enabled: true
  debounce: 200ms
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
