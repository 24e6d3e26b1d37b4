package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// ErrorOutput is the JSON document written for a failed command.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one error.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// NewErrorDetail extracts the structured fields of err.
func NewErrorDetail(err error) ErrorDetail {
	var pe *pnlerr.PnlinkError
	if errors.As(err, &pe) {
		msg := pe.Message
		var inner *pnlerr.PnlinkError
		if pe.Cause != nil && !errors.As(pe.Cause, &inner) {
			msg = fmt.Sprintf("%s: %v", msg, pe.Cause)
		}
		// keep context added by fmt.Errorf wrappers above the structured error
		msg = strings.TrimSuffix(err.Error(), pe.Error()) + msg
		return ErrorDetail{
			Code:       pe.Code,
			Message:    msg,
			Details:    pe.Details,
			Suggestion: pe.Suggestion,
			ExitCode:   pe.ExitCode,
		}
	}
	return ErrorDetail{
		Code:     pnlerr.Code(err),
		Message:  err.Error(),
		ExitCode: pnlerr.ExitCode(err),
	}
}

// FormatError writes err for display. Nil errors write nothing.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	detail := NewErrorDetail(err)
	if format == FormatJSON {
		return writeJSON(w, ErrorOutput{Error: detail})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", detail.Message)

	if len(detail.Details) > 0 {
		keys := make([]string, 0, len(detail.Details))
		for k := range detail.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, detail.Details[k])
		}
	}

	if detail.Suggestion != "" {
		fmt.Fprintf(&sb, "\nSuggestion: %s\n", detail.Suggestion)
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}

// FormatSuccess writes a one-line confirmation.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, map[string]string{"status": "success", "message": message})
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
