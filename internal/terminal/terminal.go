//go:build linux || darwin || freebsd || netbsd || openbsd

// Package terminal guarantees the terminal is restored when the editor
// exits, including when it is killed by SIGINT, SIGTERM or SIGHUP.
//
// The original terminal attributes are captured once, before anything
// changes them, and are read-only afterwards. The signal path touches
// nothing but that value and a few constant byte slices; it never calls
// into the editor.
package terminal

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Capture when fd is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Escape sequences written, in this order, on every exit path.
var (
	seqMouseOff     = []byte("\x1b[?1006l\x1b[?1003l\x1b[?1002l\x1b[?1000l")
	seqAltScreenOff = []byte("\x1b[?1049l")
	seqCursorShow   = []byte("\x1b[?25h")
)

// exitGrace is how long the signal path waits for the re-raised signal to
// terminate the process before exiting explicitly.
const exitGrace = time.Second

type saved struct {
	fd      int
	termios unix.Termios
}

var (
	original     atomic.Pointer[saved]
	hookMu       sync.Mutex
	shutdownHook func()
	hookOnce     sync.Once
	installOnce  sync.Once
)

// Capture records the current attributes of fd. Only the first successful
// call has any effect.
func Capture(fd int) error {
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if original.Load() != nil {
		return nil
	}
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	original.CompareAndSwap(nil, &saved{fd: fd, termios: *t})
	return nil
}

// SetShutdownHook registers the function Restore runs once on an orderly
// exit. A later call replaces the hook. The hook never runs on the signal
// path.
func SetShutdownHook(fn func()) {
	hookMu.Lock()
	shutdownHook = fn
	hookMu.Unlock()
}

// InstallSignalHandler restores the terminal through out and re-raises the
// signal when SIGINT, SIGTERM or SIGHUP arrives, so the process exits with
// the conventional signal status. Subsequent calls do nothing.
func InstallSignalHandler(out int) {
	installOnce.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		go func() {
			sig := (<-ch).(syscall.Signal)
			restoreAndDie(out, sig)
		}()
	})
}

// restoreAndDie is the signal path.
func restoreAndDie(out int, sig syscall.Signal) {
	writeSequences(out)
	if s := original.Load(); s != nil {
		_ = unix.IoctlSetTermios(s.fd, ioctlSetTermios, &s.termios)
	}
	signal.Reset(sig)
	_ = unix.Kill(unix.Getpid(), sig)
	time.Sleep(exitGrace)
	os.Exit(128 + int(sig))
}

// writeSequences disables mouse tracking, leaves the alternate screen and
// shows the cursor.
func writeSequences(out int) {
	_, _ = unix.Write(out, seqMouseOff)
	_, _ = unix.Write(out, seqAltScreenOff)
	_, _ = unix.Write(out, seqCursorShow)
}

// Restore is the orderly exit path. It runs the shutdown hook once and
// puts back the captured attributes.
func Restore() error {
	hookOnce.Do(func() {
		hookMu.Lock()
		fn := shutdownHook
		hookMu.Unlock()
		if fn != nil {
			fn()
		}
	})
	s := original.Load()
	if s == nil {
		return nil
	}
	return unix.IoctlSetTermios(s.fd, ioctlSetTermios, &s.termios)
}
