package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/pnlink/internal/output"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyCmd = &cobra.Command{
	Use:     "history",
	GroupID: groupSaved,
	Short:   "Browse and edit recent queries",
	Long: `Recent queries are listed newest first. Positions start at 1. Running the
same query again moves it to the top instead of adding a duplicate.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent queries",
	Long:    `List recent queries with their position and link.`,
	Example: `  pnlink history list
  pnlink history list -o json`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyUseCmd = &cobra.Command{
	Use:   "use <position>",
	Short: "Load a past query into the draft",
	Long: `Copy the token and wallet of a past query into the draft so that the next
generate uses them. The history order does not change.`,
	Example: `  pnlink history use 2 && pnlink generate`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryUse,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyRemoveCmd = &cobra.Command{
	Use:     "remove <position>",
	Aliases: []string{"rm"},
	Short:   "Remove one query",
	Long:    `Remove the query at a position shown by history list.`,
	Example: `  pnlink history remove 3`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryRemove,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all queries",
	Long:    `Remove every query from the history.`,
	Example: `  pnlink history clear`,
	Args:    cobra.NoArgs,
	RunE:    runHistoryClear,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyUseCmd, historyRemoveCmd, historyClearCmd)
}

// HistoryEntry is one row of history list output.
type HistoryEntry struct {
	Position      int    `json:"position"`
	TokenAddress  string `json:"tokenAddress"`
	WalletAddress string `json:"walletAddress"`
	URL           string `json:"url"`
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	svc := cmdCtx.Finder()
	queries := svc.History().List()

	entries := make([]HistoryEntry, 0, len(queries))
	for i, q := range queries {
		url, _ := svc.Link(q.TokenAddress, q.WalletAddress)
		entries = append(entries, HistoryEntry{
			Position:      i + 1,
			TokenAddress:  q.TokenAddress,
			WalletAddress: q.WalletAddress,
			URL:           url,
		})
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, entries)
	}

	if len(entries) == 0 {
		outln(w, "No recent queries.")
		return nil
	}

	table := output.NewTable("#", "TOKEN", "WALLET")
	for _, e := range entries {
		table.AddRow(strconv.Itoa(e.Position), e.TokenAddress, e.WalletAddress)
	}
	return table.Render(w)
}

func runHistoryUse(cmd *cobra.Command, args []string) error {
	idx, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	q, err := cmdCtx.Finder().UseHistory(idx)
	if err != nil {
		return withHistoryHint(err, idx)
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, q)
	}
	cmdCtx.Messenger.Success("Draft set from history entry %d", idx+1)
	out(w, "Token:  %s\n", q.TokenAddress)
	out(w, "Wallet: %s\n", q.WalletAddress)
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	idx, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	h := cmdCtx.Finder().History()
	q, err := h.Get(idx)
	if err != nil {
		return withHistoryHint(err, idx)
	}
	if err := h.RemoveAt(idx); err != nil {
		return withHistoryHint(err, idx)
	}

	msg := fmt.Sprintf("Removed %s / %s", q.TokenAddress, q.WalletAddress)
	return output.FormatSuccess(cmd.OutOrStdout(), msg, formatter.Format())
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if err := cmdCtx.Finder().History().Clear(); err != nil {
		return err
	}
	return output.FormatSuccess(cmd.OutOrStdout(), "History cleared", formatter.Format())
}

// parsePosition converts a 1-based position to a 0-based index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, pnlerr.WithSuggestion(
			pnlerr.WithDetails(pnlerr.WithMessage(pnlerr.ErrInvalidInput, "position must be a number from 1"),
				map[string]string{"position": s}),
			"see positions with: pnlink history list",
		)
	}
	return n - 1, nil
}

// withHistoryHint reports a bad index with the 1-based position the user typed.
func withHistoryHint(err error, idx int) error {
	if !pnlerr.Is(err, pnlerr.ErrIndexOutOfRange) {
		return err
	}
	err = pnlerr.WithDetails(err, map[string]string{
		"position": strconv.Itoa(idx + 1),
		"entries":  strconv.Itoa(cmdCtx.Finder().History().Len()),
	})
	return pnlerr.WithSuggestion(err, "see positions with: pnlink history list")
}
