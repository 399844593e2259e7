package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
	"unicode/utf8"
)

// waitDelay bounds how long Wait blocks on a killed tool's pipes.
const waitDelay = 100 * time.Millisecond

// Command is a clipboard backed by a pair of external programs.
// Copy receives the text on stdin; Paste prints the clipboard on stdout.
type Command struct {
	Name  string
	Copy  []string
	Paste []string
}

// Write runs the copy program and feeds it text.
func (c Command) Write(ctx context.Context, text string) error {
	if len(c.Copy) == 0 {
		return fmt.Errorf("%s: %w", c.Name, ErrUnsupported)
	}
	cmd := exec.CommandContext(ctx, c.Copy[0], c.Copy[1:]...) //nolint:gosec // G204: fixed tool table
	cmd.WaitDelay = waitDelay

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%s: stdin: %w", c.Name, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: start: %w", c.Name, err)
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("%s: write: %w", c.Name, err)
	}

	if err := pipe.Close(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("%s: close: %w", c.Name, err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}

// Read runs the paste program and returns its output.
func (c Command) Read(ctx context.Context) (string, error) {
	if len(c.Paste) == 0 {
		return "", fmt.Errorf("%s: %w", c.Name, ErrUnsupported)
	}
	cmd := exec.CommandContext(ctx, c.Paste[0], c.Paste[1:]...) //nolint:gosec // G204: fixed tool table
	cmd.WaitDelay = waitDelay

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%s: output is not valid UTF-8", c.Name)
	}
	return string(out), nil
}

// Tools returns the external clipboard programs for an OS, preferred first.
func Tools(goos string) []Command {
	switch goos {
	case "darwin":
		return []Command{
			{Name: "pbcopy", Copy: []string{"pbcopy"}, Paste: []string{"pbpaste"}},
		}
	case "windows":
		return nil
	default:
		return []Command{
			{Name: "wl-clipboard", Copy: []string{"wl-copy"}, Paste: []string{"wl-paste", "--no-newline"}},
			{Name: "xclip", Copy: []string{"xclip", "-selection", "clipboard"}, Paste: []string{"xclip", "-selection", "clipboard", "-o"}},
			{Name: "xsel", Copy: []string{"xsel", "--clipboard", "--input"}, Paste: []string{"xsel", "--clipboard", "--output"}},
		}
	}
}

// System returns the fallback chain of external tools for this platform.
func System() Chain {
	tools := Tools(runtime.GOOS)
	chain := make(Chain, 0, len(tools))
	for _, t := range tools {
		chain = append(chain, t)
	}
	return chain
}
