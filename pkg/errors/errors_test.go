package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

var (
	errInner = errors.New("inner")
	errPlain = errors.New("plain error")
)

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, pnlerr.ExitSuccess},
		{"general error", pnlerr.ErrGeneral, pnlerr.ExitGeneral},
		{"validation", pnlerr.ErrValidation, pnlerr.ExitInput},
		{"index out of range", pnlerr.ErrIndexOutOfRange, pnlerr.ExitInput},
		{"wallet not found", pnlerr.ErrWalletNotFound, pnlerr.ExitNotFound},
		{"clipboard", pnlerr.ErrClipboard, pnlerr.ExitGeneral},
		{"plain error", errPlain, pnlerr.ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, pnlerr.ExitCode(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("preserves identity", func(t *testing.T) {
		t.Parallel()
		wrapped := pnlerr.Wrap(pnlerr.ErrWalletNotFound, "wallet %s", "alice")
		require.ErrorIs(t, wrapped, pnlerr.ErrWalletNotFound)
		assert.Contains(t, wrapped.Error(), "wallet alice")
		assert.Equal(t, pnlerr.ExitNotFound, pnlerr.ExitCode(wrapped))
	})

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, pnlerr.Wrap(nil, "context"))
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()
		wrapped := pnlerr.Wrap(errPlain, "context")
		var pe *pnlerr.PnlinkError
		require.ErrorAs(t, wrapped, &pe)
		assert.Equal(t, "GENERAL_ERROR", pe.Code)
		assert.Equal(t, "context", pe.Message)
		assert.Equal(t, errPlain, pe.Cause)
	})
}

func TestWithMessage(t *testing.T) {
	t.Parallel()
	err := pnlerr.WithMessage(pnlerr.ErrValidation, "nickname is required")
	assert.Equal(t, "nickname is required", err.Error())
	require.ErrorIs(t, err, pnlerr.ErrValidation)
	assert.Equal(t, pnlerr.ExitInput, pnlerr.ExitCode(err))
}

func TestWithCause(t *testing.T) {
	t.Parallel()
	err := pnlerr.WithCause(pnlerr.ErrClipboard, errInner)
	assert.Equal(t, "failed to copy link: inner", err.Error())
	require.ErrorIs(t, err, pnlerr.ErrClipboard)
	require.ErrorIs(t, err, errInner)
}

func TestWithDetailsAndSuggestion(t *testing.T) {
	t.Parallel()
	details := map[string]string{"position": "12"}

	err := pnlerr.WithDetails(pnlerr.ErrIndexOutOfRange, details)
	err = pnlerr.WithSuggestion(err, "run 'pnlink history list'")

	var pe *pnlerr.PnlinkError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, details, pe.Details)
	assert.Equal(t, "run 'pnlink history list'", pe.Suggestion)
	assert.Equal(t, "history position out of range (position: 12)", err.Error())
}

func TestPnlinkError_Error(t *testing.T) {
	t.Parallel()

	t.Run("details sorted", func(t *testing.T) {
		t.Parallel()
		err := &pnlerr.PnlinkError{
			Code:    "TEST",
			Message: "failed",
			Details: map[string]string{"beta": "2", "alpha": "1"},
		}
		assert.Equal(t, "failed (alpha: 1) (beta: 2)", err.Error())
	})

	t.Run("details and cause", func(t *testing.T) {
		t.Parallel()
		err := &pnlerr.PnlinkError{
			Code:    "TEST",
			Message: "outer",
			Details: map[string]string{"key": "val"},
			Cause:   errInner,
		}
		assert.Equal(t, "outer (key: val): inner", err.Error())
	})
}

func TestPnlinkError_Is(t *testing.T) {
	t.Parallel()
	a := &pnlerr.PnlinkError{Code: "SAME_CODE", Message: "a"}
	b := &pnlerr.PnlinkError{Code: "SAME_CODE", Message: "b"}
	c := &pnlerr.PnlinkError{Code: "OTHER", Message: "c"}

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
	assert.False(t, a.Is(errPlain))
	assert.False(t, pnlerr.Is(nil, pnlerr.ErrGeneral))
}

func TestCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "VALIDATION_FAILED", pnlerr.Code(pnlerr.ErrValidation))
	assert.Equal(t, "GENERAL_ERROR", pnlerr.Code(errPlain))
	assert.Equal(t, "GENERAL_ERROR", pnlerr.Code(nil))
}
