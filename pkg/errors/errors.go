// Package errors provides structured error handling for pnlink.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Process exit codes.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitNotFound = 4 // Resource not found
)

// PnlinkError is the structured error type for pnlink.
type PnlinkError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *PnlinkError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *PnlinkError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for PnlinkError. Two errors match when their codes match.
func (e *PnlinkError) Is(target error) bool {
	var t *PnlinkError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &PnlinkError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &PnlinkError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// ErrValidation reports a missing or empty required field.
	ErrValidation = &PnlinkError{
		Code:     "VALIDATION_FAILED",
		Message:  "required field missing",
		ExitCode: ExitInput,
	}

	// ErrIndexOutOfRange reports a history position that does not exist.
	ErrIndexOutOfRange = &PnlinkError{
		Code:     "INDEX_OUT_OF_RANGE",
		Message:  "history position out of range",
		ExitCode: ExitInput,
	}

	// ErrStorageDecode reports persisted JSON that could not be decoded.
	// Managers recover from it locally; it is only ever logged.
	ErrStorageDecode = &PnlinkError{
		Code:     "STORAGE_DECODE_FAILED",
		Message:  "persisted data is malformed",
		ExitCode: ExitGeneral,
	}

	ErrStorage = &PnlinkError{
		Code:     "STORAGE_FAILED",
		Message:  "failed to write to storage",
		ExitCode: ExitGeneral,
	}

	ErrClipboard = &PnlinkError{
		Code:     "CLIPBOARD_FAILED",
		Message:  "failed to copy link",
		ExitCode: ExitGeneral,
	}

	ErrBrowser = &PnlinkError{
		Code:     "BROWSER_FAILED",
		Message:  "failed to open link",
		ExitCode: ExitGeneral,
	}

	ErrWalletNotFound = &PnlinkError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "saved wallet not found",
		ExitCode: ExitNotFound,
	}

	// Config-specific errors.
	ErrConfigNotFound = &PnlinkError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &PnlinkError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	ErrUnknownConfigKey = &PnlinkError{
		Code:     "UNKNOWN_CONFIG_KEY",
		Message:  "unknown config key",
		ExitCode: ExitInput,
	}

	ErrInvalidFormat = &PnlinkError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid format",
		ExitCode: ExitInput,
	}
)

// New creates a new PnlinkError with the given code and message.
func New(code, message string) *PnlinkError {
	return &PnlinkError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var pe *PnlinkError
	if errors.As(err, &pe) {
		return &PnlinkError{
			Code:       pe.Code,
			Message:    fmt.Sprintf("%s: %s", msg, pe.Message),
			Details:    pe.Details,
			Suggestion: pe.Suggestion,
			Cause:      err,
			ExitCode:   pe.ExitCode,
		}
	}

	return &PnlinkError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithCause attaches an underlying cause to a sentinel, keeping its code.
func WithCause(sentinel *PnlinkError, cause error) error {
	return &PnlinkError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Details:    sentinel.Details,
		Suggestion: sentinel.Suggestion,
		Cause:      cause,
		ExitCode:   sentinel.ExitCode,
	}
}

// WithMessage returns a copy of a sentinel carrying a more specific message.
func WithMessage(sentinel *PnlinkError, message string) error {
	return &PnlinkError{
		Code:       sentinel.Code,
		Message:    message,
		Details:    sentinel.Details,
		Suggestion: sentinel.Suggestion,
		Cause:      sentinel.Cause,
		ExitCode:   sentinel.ExitCode,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var pe *PnlinkError
	if errors.As(err, &pe) {
		return &PnlinkError{
			Code:       pe.Code,
			Message:    pe.Message,
			Details:    details,
			Suggestion: pe.Suggestion,
			Cause:      pe.Cause,
			ExitCode:   pe.ExitCode,
		}
	}

	return &PnlinkError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var pe *PnlinkError
	if errors.As(err, &pe) {
		return &PnlinkError{
			Code:       pe.Code,
			Message:    pe.Message,
			Details:    pe.Details,
			Suggestion: suggestion,
			Cause:      pe.Cause,
			ExitCode:   pe.ExitCode,
		}
	}

	return &PnlinkError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var pe *PnlinkError
	if errors.As(err, &pe) {
		return pe.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var pe *PnlinkError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
