//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package terminal

import "errors"

// ErrNotTerminal is returned by Capture when fd is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Capture is unsupported on this platform.
func Capture(int) error { return ErrNotTerminal }

// SetShutdownHook stores fn for Restore.
func SetShutdownHook(fn func()) { shutdownHook = fn }

// InstallSignalHandler does nothing on this platform.
func InstallSignalHandler(int) {}

var shutdownHook func()

// Restore runs the shutdown hook.
func Restore() error {
	if fn := shutdownHook; fn != nil {
		shutdownHook = nil
		fn()
	}
	return nil
}
