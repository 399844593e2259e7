package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/videre/internal/app"
	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/clipboard"
	"github.com/zjrosen/videre/internal/config"
	"github.com/zjrosen/videre/internal/document"
	"github.com/zjrosen/videre/internal/infrastructure/sqlite"
	"github.com/zjrosen/videre/internal/log"
	"github.com/zjrosen/videre/internal/register"
	"github.com/zjrosen/videre/internal/terminal"
	"github.com/zjrosen/videre/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config.
const localConfigPath = ".videre/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	debugFlag   bool
	logFile     string
	logLevel    string
	minLevel    log.Level
	readonly    bool
	noClipboard bool
)

var rootCmd = &cobra.Command{
	Use:   "videre [file]",
	Short: "A modal text editor for the terminal",
	Long: `videre is a vi-style modal editor: normal, insert and visual modes,
registers shared with the system clipboard, and syntax highlighting.

Registers survive between sessions in a small sqlite database.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		minLevel = level
		return loadConfig()
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/videre/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (also VIDERE_DEBUG=1)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: ~/.local/state/videre/videre.log)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "debug",
		"lowest level written to the debug log (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&readonly, "readonly", "R", false,
		"open the file read-only")
	rootCmd.Flags().BoolVar(&noClipboard, "no-clipboard", false,
		"do not touch the system clipboard")
}

// loadConfig reads the config file into cfg.
//
// Lookup order:
//  1. --config
//  2. .videre/config.yaml (current directory)
//  3. ~/.config/videre/config.yaml, written with defaults if missing
func loadConfig() error {
	v := viper.New()
	setDefaults(v, config.Defaults())
	v.SetEnvPrefix("VIDERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := resolveConfigPath(cfgFile)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var loaded config.Config
	if err := v.Unmarshal(&loaded); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	cfgFile = path
	return nil
}

// resolveConfigPath picks the file to read. When nothing exists yet the
// user config is created from the default template; if that fails the
// editor runs on defaults alone.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	user := config.UserConfigPath()
	if user == "" {
		return ""
	}
	if _, err := os.Stat(user); err == nil {
		return user
	}
	if err := config.WriteDefaultConfig(user); err != nil {
		return ""
	}
	return user
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.undo_levels", d.Editor.UndoLevels)
	v.SetDefault("editor.line_numbers", d.Editor.LineNumbers)
	v.SetDefault("editor.scroll_off", d.Editor.ScrollOff)
	v.SetDefault("clipboard.enabled", d.Clipboard.Enabled)
	v.SetDefault("clipboard.timeout", d.Clipboard.Timeout)
	v.SetDefault("clipboard.cache_ttl", d.Clipboard.CacheTTL)
	v.SetDefault("clipboard.osc52", d.Clipboard.OSC52)
	v.SetDefault("clipboard.unnamedplus", d.Clipboard.UnnamedPlus)
	v.SetDefault("registers.persist", d.Registers.Persist)
	v.SetDefault("registers.path", d.Registers.Path)
	v.SetDefault("syntax.enabled", d.Syntax.Enabled)
	v.SetDefault("syntax.style", d.Syntax.Style)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

func runApp(_ *cobra.Command, args []string) error {
	if debugFlag || log.DebugEnabledFromEnv() {
		path := logFile
		if path == "" {
			path = config.DefaultLogPath()
		}
		_ = os.MkdirAll(filepath.Dir(path), 0o700)
		cleanup, err := log.Init(path)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.SetMinLevel(minLevel)
		debugFlag = true
		log.Info(log.CatConfig, "videre starting", "version", version, "config", cfgFile)
	}
	if noClipboard {
		cfg.Clipboard.Enabled = false
	}

	doc, buf, err := openDocument(args)
	if err != nil {
		return err
	}
	doc.Readonly = doc.Readonly || readonly

	bridge := newClipboard(cfg.Clipboard)
	regs := newRegisters(bridge, cfg.Clipboard.Timeout)
	store := openStore(cfg.Registers, regs)

	var w *watcher.Watcher
	if cfg.Watch.Enabled && doc.Path != "" {
		w = startWatcher(doc.Path, cfg.Watch)
	}

	if err := terminal.Capture(int(os.Stdin.Fd())); err != nil {
		log.Warn(log.CatTerminal, "Terminal attributes not captured", "error", err)
	}
	terminal.InstallSignalHandler(int(os.Stdout.Fd()))
	terminal.SetShutdownHook(func() { saveRegisters(store, regs) })

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: cfgFile,
		Document:   doc,
		Buffer:     buf,
		Registers:  regs,
		Watcher:    w,
		Clipboard:  bridge,
		Debug:      debugFlag,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithoutSignalHandler(),
	)

	_, err = p.Run()

	if restoreErr := terminal.Restore(); restoreErr != nil {
		log.ErrorErr(log.CatTerminal, "Failed to restore terminal", restoreErr)
	}
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if store != nil {
		_ = store.Close()
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func openDocument(args []string) (*document.Document, *buffer.Buffer, error) {
	if len(args) == 0 {
		doc, buf := document.Scratch()
		return doc, buf, nil
	}
	doc, buf, err := document.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	return doc, buf, nil
}

// newClipboard builds the bridge behind "+ and "*: the platform tools,
// then OSC 52 for writes, optionally behind a short read cache. It returns
// nil when the clipboard is disabled.
func newClipboard(c config.ClipboardConfig) clipboard.Bridge {
	if !c.Enabled {
		return nil
	}
	chain := clipboard.System()
	if c.OSC52 {
		chain = append(chain, clipboard.NewOSC52())
	}
	if c.CacheTTL > 0 {
		return clipboard.NewCached(chain, c.CacheTTL)
	}
	return chain
}

func newRegisters(bridge clipboard.Bridge, timeout time.Duration) *register.Manager {
	var opts []register.Option
	if bridge != nil {
		opts = append(opts, register.WithClipboard(bridge))
	}
	if timeout > 0 {
		opts = append(opts, register.WithTimeout(timeout))
	}
	return register.NewManager(opts...)
}

// openStore loads persisted registers into regs. Persistence problems are
// logged and never stop the editor from starting.
func openStore(c config.RegistersConfig, regs *register.Manager) *sqlite.DB {
	if !c.Persist || c.Path == "" {
		return nil
	}
	db, err := sqlite.NewDB(c.Path)
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to open register store", err, "path", c.Path)
		return nil
	}
	saved, err := db.Registers().LoadAll()
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to load registers", err)
		return db
	}
	regs.Load(saved)
	log.Info(log.CatStore, "Loaded registers", "count", len(saved))
	return db
}

func saveRegisters(db *sqlite.DB, regs *register.Manager) {
	if db == nil {
		return
	}
	if err := db.Registers().SaveAll(regs.Snapshot()); err != nil {
		log.ErrorErr(log.CatStore, "Failed to save registers", err)
	}
}

func startWatcher(path string, c config.WatchConfig) *watcher.Watcher {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: c.Debounce})
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to create watcher", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start watcher", err, "path", path)
		_ = w.Stop()
		return nil
	}
	return w
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
