package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// SetColorMode switches colored status lines on or off for the process.
// Auto leaves the decision to the terminal and NO_COLOR detection.
func SetColorMode(mode string) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
}

var (
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// Messenger writes human-facing status lines. Results go to the Formatter;
// status lines go here so JSON output stays parseable.
type Messenger struct {
	out io.Writer
	err io.Writer
}

// NewMessenger writes info and success lines to out, warnings to errOut.
func NewMessenger(out, errOut io.Writer) *Messenger {
	return &Messenger{out: out, err: errOut}
}

// Info prints an informational line.
func (m *Messenger) Info(format string, args ...any) {
	_, _ = infoColor.Fprintln(m.out, "ℹ "+fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (m *Messenger) Warn(format string, args ...any) {
	_, _ = warnColor.Fprintln(m.err, "⚠ "+fmt.Sprintf(format, args...))
}

// Success prints a success line.
func (m *Messenger) Success(format string, args ...any) {
	_, _ = successColor.Fprintln(m.out, "✓ "+fmt.Sprintf(format, args...))
}

// Warnf prints a warning to stderr.
func Warnf(format string, args ...any) {
	NewMessenger(os.Stdout, os.Stderr).Warn(format, args...)
}
