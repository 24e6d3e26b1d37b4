// Package clipboard copies generated links to the system clipboard.
package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")

// Copier writes text to a clipboard.
type Copier struct {
	write       func(string) error
	unsupported func() bool
}

// Option configures a Copier.
type Option func(*Copier)

// WithWriter replaces the clipboard write function.
func WithWriter(write func(string) error) Option {
	return func(c *Copier) {
		c.write = write
		c.unsupported = func() bool { return false }
	}
}

// New returns a Copier using the system clipboard.
func New(opts ...Option) *Copier {
	c := &Copier{
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy writes text to the clipboard. It gives up when ctx is done; the
// clipboard helper process may still finish in the background.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if c.unsupported() {
		return pnlerr.WithCause(pnlerr.ErrClipboard, ErrUnsupported)
	}

	done := make(chan error, 1)
	go func() { done <- c.write(text) }()

	select {
	case err := <-done:
		if err != nil {
			return pnlerr.WithCause(pnlerr.ErrClipboard, err)
		}
		return nil
	case <-ctx.Done():
		return pnlerr.WithCause(pnlerr.ErrClipboard, ctx.Err())
	}
}

// Copy writes text to the system clipboard.
func Copy(ctx context.Context, text string) error {
	return New().Copy(ctx, text)
}
