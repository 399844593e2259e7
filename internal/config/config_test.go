package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 4, cfg.Editor.TabWidth)
	require.Equal(t, 1000, cfg.Editor.UndoLevels)
	require.True(t, cfg.Editor.LineNumbers)
	require.Equal(t, 3, cfg.Editor.ScrollOff)

	require.True(t, cfg.Clipboard.Enabled)
	require.Equal(t, 2*time.Second, cfg.Clipboard.Timeout)
	require.Equal(t, 500*time.Millisecond, cfg.Clipboard.CacheTTL)
	require.False(t, cfg.Clipboard.OSC52)

	require.True(t, cfg.Registers.Persist)
	require.True(t, cfg.Syntax.Enabled)
	require.Equal(t, "monokai", cfg.Syntax.Style)
	require.True(t, cfg.Watch.Enabled)
	require.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)

	require.NoError(t, Validate(cfg))
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	require.Equal(t, "/home/tester/.local/state/videre", StateDir())
	require.Equal(t, "/home/tester/.local/state/videre/registers.db", DefaultRegistersPath())
	require.Equal(t, "/home/tester/.local/state/videre/videre.log", DefaultLogPath())
	require.Equal(t, "/home/tester/.config/videre/config.yaml", UserConfigPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative tab width", func(c *Config) { c.Editor.TabWidth = -1 }, "editor.tab_width"},
		{"negative undo levels", func(c *Config) { c.Editor.UndoLevels = -5 }, "editor.undo_levels"},
		{"negative scroll off", func(c *Config) { c.Editor.ScrollOff = -1 }, "editor.scroll_off"},
		{"zero timeout", func(c *Config) { c.Clipboard.Timeout = 0 }, "clipboard.timeout"},
		{"negative cache ttl", func(c *Config) { c.Clipboard.CacheTTL = -time.Second }, "clipboard.cache_ttl"},
		{"relative register path", func(c *Config) { c.Registers.Path = "regs.db" }, "registers.path"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Millisecond }, "watch.debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.ErrorIs(t, err, ErrInvalid)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AcceptsDisabledFeatures(t *testing.T) {
	cfg := Defaults()
	cfg.Clipboard.Enabled = false
	cfg.Clipboard.Timeout = 0
	cfg.Registers.Persist = false
	cfg.Registers.Path = "relative.db"
	cfg.Editor.TabWidth = 0
	cfg.Editor.UndoLevels = 0

	require.NoError(t, Validate(cfg))
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	var parsed struct {
		Editor struct {
			TabWidth    int  `yaml:"tab_width"`
			UndoLevels  int  `yaml:"undo_levels"`
			LineNumbers bool `yaml:"line_numbers"`
			ScrollOff   int  `yaml:"scroll_off"`
		} `yaml:"editor"`
		Clipboard struct {
			Enabled  bool   `yaml:"enabled"`
			Timeout  string `yaml:"timeout"`
			CacheTTL string `yaml:"cache_ttl"`
		} `yaml:"clipboard"`
		Syntax struct {
			Style string `yaml:"style"`
		} `yaml:"syntax"`
		Watch struct {
			Debounce string `yaml:"debounce"`
		} `yaml:"watch"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &parsed))

	def := Defaults()
	require.Equal(t, def.Editor.TabWidth, parsed.Editor.TabWidth)
	require.Equal(t, def.Editor.UndoLevels, parsed.Editor.UndoLevels)
	require.Equal(t, def.Editor.LineNumbers, parsed.Editor.LineNumbers)
	require.Equal(t, def.Editor.ScrollOff, parsed.Editor.ScrollOff)
	require.Equal(t, def.Clipboard.Enabled, parsed.Clipboard.Enabled)
	require.Equal(t, def.Clipboard.Timeout.String(), parsed.Clipboard.Timeout)
	require.Equal(t, def.Clipboard.CacheTTL.String(), parsed.Clipboard.CacheTTL)
	require.Equal(t, def.Syntax.Style, parsed.Syntax.Style)
	require.Equal(t, def.Watch.Debounce.String(), parsed.Watch.Debounce)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
