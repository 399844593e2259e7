package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 writes to the terminal's clipboard with an OSC 52 escape sequence.
// It works over SSH but cannot read the clipboard back.
type OSC52 struct {
	Out io.Writer
}

// NewOSC52 returns an OSC52 link that writes to stderr, wrapping the
// sequence for tmux or screen when either is detected.
func NewOSC52() OSC52 {
	return OSC52{Out: os.Stderr}
}

// Read is not supported by the terminal protocol.
func (OSC52) Read(context.Context) (string, error) {
	return "", fmt.Errorf("osc52: %w", ErrUnsupported)
}

// Write emits the copy sequence.
func (o OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}
