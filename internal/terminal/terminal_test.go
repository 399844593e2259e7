//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const signalHelperEnv = "VIDERE_TERMINAL_SIGNAL_HELPER"

func restoreSequence() string {
	return string(seqMouseOff) + string(seqAltScreenOff) + string(seqCursorShow)
}

func TestWriteSequences_Order(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	writeSequences(int(w.Fd()))
	require.NoError(t, w.Close())

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "\x1b[?1006l\x1b[?1003l\x1b[?1002l\x1b[?1000l\x1b[?1049l\x1b[?25h", string(got))
}

func TestCapture_NotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	err = Capture(int(r.Fd()))
	require.ErrorIs(t, err, ErrNotTerminal)
	require.Nil(t, original.Load())
}

func TestRestore_RunsHookOnce(t *testing.T) {
	calls := 0
	SetShutdownHook(func() { calls++ })

	require.NoError(t, Restore())
	require.NoError(t, Restore())
	require.Equal(t, 1, calls)
}

// TestSignalHelperProcess is not a real test. It is run as a child process
// by TestInstallSignalHandler_ReraisesSignal.
func TestSignalHelperProcess(t *testing.T) {
	if os.Getenv(signalHelperEnv) != "1" {
		t.Skip("helper process")
	}
	InstallSignalHandler(int(os.Stdout.Fd()))
	_ = unix.Kill(unix.Getpid(), unix.SIGTERM)
	time.Sleep(5 * time.Second)
	os.Exit(0)
}

func TestInstallSignalHandler_ReraisesSignal(t *testing.T) {
	cmd := exec.Command(os.Args[0], "-test.run=^TestSignalHelperProcess$")
	cmd.Env = append(os.Environ(), signalHelperEnv+"=1")

	out, err := cmd.Output()

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected the child to die, got %v", err)
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	require.True(t, ok)
	require.True(t, status.Signaled(), "child exited instead of being signaled")
	require.Equal(t, syscall.SIGTERM, status.Signal())
	require.Equal(t, restoreSequence(), string(out))
}
