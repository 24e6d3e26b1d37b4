// Package browser opens generated links in the user's default browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// ErrUnsupportedPlatform is returned when no opener is known for the OS.
var ErrUnsupportedPlatform = errors.New("no browser opener for this platform")

// Runner starts a command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// Opener launches URLs with the platform opener.
type Opener struct {
	goos string
	run  Runner
}

// Option configures an Opener.
type Option func(*Opener)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(o *Opener) { o.run = r }
}

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(o *Opener) { o.goos = goos }
}

// New returns an Opener for the current platform.
func New(opts ...Option) *Opener {
	o := &Opener{goos: runtime.GOOS, run: execRunner}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Command returns the program and arguments that open url on goos.
func Command(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Open launches url in the default browser.
func (o *Opener) Open(ctx context.Context, url string) error {
	name, args, err := Command(o.goos, url)
	if err != nil {
		return pnlerr.WithCause(pnlerr.ErrBrowser, err)
	}
	if err := o.run(ctx, name, args...); err != nil {
		return pnlerr.WithCause(pnlerr.ErrBrowser, fmt.Errorf("%s: %w", name, err))
	}
	return nil
}

// Open launches url with the default Opener.
func Open(ctx context.Context, url string) error {
	return New().Open(ctx, url)
}

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // Program is chosen from a fixed list; the URL is a single argument
	return cmd.Run()
}
