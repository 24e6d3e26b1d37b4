package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/pnlink/internal/output"
	"github.com/mrz1836/pnlink/internal/wallets"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	editNickname string
	editAddress  string
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsCmd = &cobra.Command{
	Use:     "wallets",
	Aliases: []string{"wallet"},
	GroupID: groupSaved,
	Short:   "Manage saved wallets",
	Long: `Saved wallets pair a nickname with an address. Commands that take a wallet
accept either its id or its nickname (case-insensitive).`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved wallets",
	Long:    `List saved wallets in the order they were added.`,
	Example: `  pnlink wallets list
  pnlink wallets list -o json`,
	Args: cobra.NoArgs,
	RunE: runWalletsList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsAddCmd = &cobra.Command{
	Use:     "add <nickname> <address>",
	Aliases: []string{"save"},
	Short:   "Save a wallet under a nickname",
	Long:    `Save a wallet. Surrounding spaces are trimmed and both values are required.`,
	Example: `  pnlink wallets add whale 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM`,
	Args:    cobra.ExactArgs(2),
	RunE:    runWalletsAdd,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsEditCmd = &cobra.Command{
	Use:   "edit <id|nickname>",
	Short: "Change a saved wallet",
	Long: `Change the nickname and/or address of a saved wallet. Its id and position
stay the same.`,
	Example: `  pnlink wallets edit whale --nickname big-whale
  pnlink wallets edit 1718000000000 --address 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletsEdit,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsDeleteCmd = &cobra.Command{
	Use:     "delete <id|nickname>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved wallet",
	Long:    `Delete a saved wallet. Other wallets keep their order.`,
	Example: `  pnlink wallets delete whale`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWalletsDelete,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletsSelectCmd = &cobra.Command{
	Use:   "select <id|nickname>",
	Short: "Use a saved wallet as the draft wallet",
	Long: `Copy a saved wallet's address into the draft wallet field so that the next
generate uses it.`,
	Example: `  pnlink wallets select whale && pnlink generate <token>`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWalletsSelect,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletsCmd)
	walletsCmd.AddCommand(walletsListCmd, walletsAddCmd, walletsEditCmd, walletsDeleteCmd, walletsSelectCmd)

	walletsEditCmd.Flags().StringVar(&editNickname, "nickname", "", "new nickname")
	walletsEditCmd.Flags().StringVar(&editAddress, "address", "", "new address")
}

func runWalletsList(cmd *cobra.Command, _ []string) error {
	list := cmdCtx.Finder().Wallets().List()

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, list)
	}

	if len(list) == 0 {
		outln(w, "No saved wallets.")
		outln(w, "Save one with: pnlink wallets add <nickname> <address>")
		return nil
	}

	table := output.NewTable("ID", "NICKNAME", "ADDRESS")
	for _, sw := range list {
		table.AddRow(sw.ID, sw.Nickname, sw.Address)
	}
	return table.Render(w)
}

func runWalletsAdd(cmd *cobra.Command, args []string) error {
	sw, err := cmdCtx.Finder().SaveWallet(args[0], args[1])
	if err != nil {
		return err
	}
	return displayWallet(cmd, sw, fmt.Sprintf("Saved wallet %q (id %s)", sw.Nickname, sw.ID))
}

func runWalletsEdit(cmd *cobra.Command, args []string) error {
	nickSet := cmd.Flags().Changed("nickname")
	addrSet := cmd.Flags().Changed("address")
	if !nickSet && !addrSet {
		return pnlerr.WithSuggestion(
			pnlerr.WithMessage(pnlerr.ErrInvalidInput, "nothing to change"),
			"pass --nickname and/or --address",
		)
	}

	svc := cmdCtx.Finder()
	sw, err := svc.ResolveWallet(args[0])
	if err != nil {
		return err
	}

	nickname, address := sw.Nickname, sw.Address
	if nickSet {
		nickname = editNickname
	}
	if addrSet {
		address = editAddress
	}

	ok, err := svc.UpdateWallet(sw.ID, nickname, address)
	if err != nil {
		return err
	}
	if !ok {
		return pnlerr.WithDetails(pnlerr.ErrWalletNotFound, map[string]string{"id": sw.ID})
	}

	updated, _ := svc.Wallets().Get(sw.ID)
	return displayWallet(cmd, updated, fmt.Sprintf("Updated wallet %q", updated.Nickname))
}

func runWalletsDelete(cmd *cobra.Command, args []string) error {
	svc := cmdCtx.Finder()
	sw, err := svc.ResolveWallet(args[0])
	if err != nil {
		return err
	}

	ok, err := svc.DeleteWallet(sw.ID)
	if err != nil {
		return err
	}
	if !ok {
		return pnlerr.WithDetails(pnlerr.ErrWalletNotFound, map[string]string{"id": sw.ID})
	}
	return output.FormatSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted wallet %q", sw.Nickname), formatter.Format())
}

func runWalletsSelect(cmd *cobra.Command, args []string) error {
	sw, err := cmdCtx.Finder().UseWallet(args[0])
	if err != nil {
		return err
	}
	return displayWallet(cmd, sw, fmt.Sprintf("Draft wallet set to %q", sw.Nickname))
}

func displayWallet(cmd *cobra.Command, sw wallets.SavedWallet, status string) error {
	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, sw)
	}
	cmdCtx.Messenger.Success("%s", status)
	out(w, "ID:       %s\n", sw.ID)
	out(w, "Nickname: %s\n", sw.Nickname)
	out(w, "Address:  %s\n", sw.Address)
	return nil
}
