package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	got, err := Generate("TOK", "WAL")
	require.NoError(t, err)
	assert.Equal(t, "https://dexscreener.com/solana/TOK?maker=WAL", got)
}

func TestGenerate_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		token  string
		wallet string
	}{
		{"missing token", "", "W"},
		{"missing wallet", "T", ""},
		{"both missing", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Generate(tc.token, tc.wallet)
			require.ErrorIs(t, err, pnlerr.ErrValidation)
			assert.Empty(t, got)
			assert.Equal(t, pnlerr.ExitInput, pnlerr.ExitCode(err))
		})
	}
}

func TestGenerate_NoEscaping(t *testing.T) {
	t.Parallel()

	got, err := Generate("a b&c", "x?y=z#w")
	require.NoError(t, err)
	assert.Equal(t, "https://dexscreener.com/solana/a b&c?maker=x?y=z#w", got)

	got, err = Generate(" ", " ")
	require.NoError(t, err, "whitespace is not trimmed away")
	assert.Equal(t, "https://dexscreener.com/solana/ ?maker= ", got)
}

func TestBuilder_Options(t *testing.T) {
	t.Parallel()

	b := New(WithBaseURL("https://example.com/"), WithChain("base"))
	got, err := b.Build("0xTok", "0xWal")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/base/0xTok?maker=0xWal", got)

	b = New(WithBaseURL(""), WithChain(""))
	got, err = b.Build("T", "W")
	require.NoError(t, err)
	assert.Equal(t, "https://dexscreener.com/solana/T?maker=W", got)
}

func TestValidatePair_Details(t *testing.T) {
	t.Parallel()

	err := ValidatePair("", "W")
	var pe *pnlerr.PnlinkError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, map[string]string{"token": "missing"}, pe.Details)
	assert.Contains(t, err.Error(), "both token address and wallet address are required")

	require.NoError(t, ValidatePair("T", "W"))
}

func TestCheckPair(t *testing.T) {
	t.Parallel()

	const usdc = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	const wallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

	assert.Empty(t, CheckPair(usdc, wallet))

	warnings := CheckPair("not-base58!", wallet)
	require.Len(t, warnings, 1)
	assert.Equal(t, "token", warnings[0].Field)
	assert.Contains(t, warnings[0].String(), "not-base58!")

	warnings = CheckPair("0xabc", "0xdef")
	assert.Len(t, warnings, 2)
}
