package cli

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

func seedHistory(t *testing.T, home string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		res := runCLI(t, home, "generate", fmt.Sprintf("T%d", i), fmt.Sprintf("W%d", i))
		require.NoError(t, res.err)
	}
}

func listHistory(t *testing.T, home string) []HistoryEntry {
	t.Helper()
	res := runCLI(t, home, "history", "list", "-o", "json")
	require.NoError(t, res.err)
	var entries []HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	return entries
}

func TestHistoryList_Empty(t *testing.T) {
	home := newHome(t)
	res := runCLI(t, home, "history", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "No recent queries.\n", res.stdout)
}

func TestHistoryList_Text(t *testing.T) {
	home := newHome(t)
	seedHistory(t, home, 2)

	res := runCLI(t, home, "history", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "#  TOKEN  WALLET\n-  -----  ------\n1  T2     W2\n2  T1     W1\n", res.stdout)
}

func TestHistory_CapacityAndDedup(t *testing.T) {
	home := newHome(t)
	seedHistory(t, home, 11)

	entries := listHistory(t, home)
	require.Len(t, entries, 10)
	assert.Equal(t, "T11", entries[0].TokenAddress)
	assert.Equal(t, "T2", entries[9].TokenAddress)

	require.NoError(t, runCLI(t, home, "generate", "T5", "W5").err)
	entries = listHistory(t, home)
	require.Len(t, entries, 10)
	assert.Equal(t, "T5", entries[0].TokenAddress)
	assert.Equal(t, 1, entries[0].Position)
}

func TestHistory_ConfiguredCapacity(t *testing.T) {
	home := newHome(t)
	require.NoError(t, runCLI(t, home, "config", "set", "history.max_entries", "3").err)
	seedHistory(t, home, 5)

	assert.Len(t, listHistory(t, home), 3)
}

func TestHistoryRemove(t *testing.T) {
	home := newHome(t)
	seedHistory(t, home, 3)

	res := runCLI(t, home, "history", "remove", "2")
	require.NoError(t, res.err)
	assert.Equal(t, "Removed T2 / W2\n", res.stdout)

	entries := listHistory(t, home)
	require.Len(t, entries, 2)
	assert.Equal(t, "T3", entries[0].TokenAddress)
	assert.Equal(t, "T1", entries[1].TokenAddress)
}

func TestHistoryRemove_OutOfRange(t *testing.T) {
	home := newHome(t)
	seedHistory(t, home, 2)

	res := runCLI(t, home, "history", "remove", "3")
	require.ErrorIs(t, res.err, pnlerr.ErrIndexOutOfRange)
	assert.Equal(t, pnlerr.ExitInput, ExitCode(res.err))

	var pe *pnlerr.PnlinkError
	require.ErrorAs(t, res.err, &pe)
	assert.Equal(t, map[string]string{"position": "3", "entries": "2"}, pe.Details)

	assert.Len(t, listHistory(t, home), 2)
}

func TestHistory_BadPosition(t *testing.T) {
	home := newHome(t)
	for _, pos := range []string{"0", "abc"} {
		res := runCLI(t, home, "history", "use", pos)
		require.ErrorIs(t, res.err, pnlerr.ErrInvalidInput, pos)
	}
}

func TestHistoryUse(t *testing.T) {
	home := newHome(t)
	seedHistory(t, home, 2)
	require.NoError(t, runCLI(t, home, "draft", "clear").err)

	res := runCLI(t, home, "history", "use", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Token:  T1")

	res = runCLI(t, home, "generate")
	require.NoError(t, res.err)
	assert.Equal(t, "https://dexscreener.com/solana/T1?maker=W1\n", res.stdout)
}

func TestHistoryClear(t *testing.T) {
	home := newHome(t)
	seedHistory(t, home, 2)

	res := runCLI(t, home, "history", "clear")
	require.NoError(t, res.err)
	assert.Equal(t, "History cleared\n", res.stdout)
	assert.Empty(t, listHistory(t, home))
}
