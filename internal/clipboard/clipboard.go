// Package clipboard bridges the editor to the system clipboard.
//
// Every bridge takes a context; callers are expected to bound it with a
// timeout so that a hung or missing external tool degrades to an error
// instead of blocking the editor.
package clipboard

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when no clipboard backend succeeded.
	ErrUnavailable = errors.New("clipboard unavailable")
	// ErrUnsupported is returned by write-only or read-only backends.
	ErrUnsupported = errors.New("clipboard operation not supported")
)

// Bridge reads and writes the system clipboard as flat text.
type Bridge interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
}

// Chain tries each bridge in order and uses the first that succeeds.
type Chain []Bridge

// Read returns the text from the first bridge that can read.
func (c Chain) Read(ctx context.Context) (string, error) {
	var errs []error
	for _, b := range c {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		text, err := b.Read(ctx)
		if err == nil {
			return text, nil
		}
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// Write sends text to the first bridge that accepts it.
func (c Chain) Write(ctx context.Context, text string) error {
	var errs []error
	for _, b := range c {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := b.Write(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

// Mock is an in-memory clipboard for tests.
type Mock struct {
	Text     string
	ReadErr  error
	WriteErr error
	Reads    int
	Writes   int
}

// Read returns the stored text or ReadErr.
func (m *Mock) Read(context.Context) (string, error) {
	m.Reads++
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Text, nil
}

// Write stores text or returns WriteErr.
func (m *Mock) Write(_ context.Context, text string) error {
	m.Writes++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Text = text
	return nil
}
