// Package output renders pnlink results as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// Format represents the output format.
type Format string

// Output format constants.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatAuto Format = "auto"
)

// Formatter writes command results in one format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter. FormatAuto is resolved against w.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{
		format: DetectFormat(w, format),
		writer: w,
	}
}

// Format returns the resolved output format.
func (f *Formatter) Format() Format {
	return f.format
}

// Writer returns the output writer.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// IsJSON reports whether results are written as JSON.
func (f *Formatter) IsJSON() bool {
	return f.format == FormatJSON
}

// Print writes v as indented JSON, or as a line of text.
func (f *Formatter) Print(v any) error {
	if f.format == FormatJSON {
		return writeJSON(f.writer, v)
	}
	switch val := v.(type) {
	case string:
		_, err := fmt.Fprintln(f.writer, val)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, val.String())
		return err
	default:
		_, err := fmt.Fprintf(f.writer, "%v\n", val)
		return err
	}
}

// Printf writes formatted text.
func (f *Formatter) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(f.writer, format, args...)
	return err
}

// Println writes a line of text.
func (f *Formatter) Println(args ...any) error {
	_, err := fmt.Fprintln(f.writer, args...)
	return err
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// DetectFormat resolves FormatAuto: text for a terminal, JSON otherwise.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto && explicit != "" {
		return explicit
	}
	if IsTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: Fd() returns uintptr, safe conversion for term.IsTerminal
}

// ParseFormat parses a format string. Unknown values yield FormatAuto.
func ParseFormat(s string) Format {
	f, err := ParseFormatStrict(s)
	if err != nil {
		return FormatAuto
	}
	return f
}

// ParseFormatStrict parses a format string, rejecting unknown values.
func ParseFormatStrict(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "auto", "":
		return FormatAuto, nil
	default:
		return "", pnlerr.WithDetails(pnlerr.ErrInvalidFormat, map[string]string{"format": s})
	}
}
