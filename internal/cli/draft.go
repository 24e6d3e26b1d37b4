package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/pnlink/internal/draft"
	"github.com/mrz1836/pnlink/internal/output"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	draftToken  string
	draftWallet string
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var draftCmd = &cobra.Command{
	Use:     "draft",
	GroupID: groupLinks,
	Short:   "Show or edit the saved token and wallet inputs",
	Long: `The draft holds the last token and wallet address entered. It is written
on every change and used by generate for any address you leave out.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var draftShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show the draft",
	Long:    `Print the saved token and wallet addresses. Missing values print as empty.`,
	Example: `  pnlink draft show -o json`,
	Args:    cobra.NoArgs,
	RunE:    runDraftShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var draftSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update one or both draft fields",
	Long: `Save new draft values. Only the fields passed as flags change. Values are
stored exactly as given.`,
	Example: `  pnlink draft set --token So11111111111111111111111111111111111111112
  pnlink draft set --wallet 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM`,
	Args: cobra.NoArgs,
	RunE: runDraftSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var draftClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Forget the draft",
	Long:    `Remove both saved draft values.`,
	Example: `  pnlink draft clear`,
	Args:    cobra.NoArgs,
	RunE:    runDraftClear,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(draftCmd)
	draftCmd.AddCommand(draftShowCmd, draftSetCmd, draftClearCmd)

	draftSetCmd.Flags().StringVar(&draftToken, "token", "", "token address")
	draftSetCmd.Flags().StringVar(&draftWallet, "wallet", "", "wallet address")
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	return displayDraft(cmd, cmdCtx.Finder().Draft().Load())
}

func runDraftSet(cmd *cobra.Command, _ []string) error {
	tokenSet := cmd.Flags().Changed("token")
	walletSet := cmd.Flags().Changed("wallet")
	if !tokenSet && !walletSet {
		return pnlerr.WithSuggestion(
			pnlerr.WithMessage(pnlerr.ErrInvalidInput, "nothing to set"),
			"pass --token and/or --wallet",
		)
	}

	p := cmdCtx.Finder().Draft()
	if tokenSet {
		if err := p.SetToken(draftToken); err != nil {
			return err
		}
	}
	if walletSet {
		if err := p.SetWallet(draftWallet); err != nil {
			return err
		}
	}
	return displayDraft(cmd, p.Load())
}

func runDraftClear(cmd *cobra.Command, _ []string) error {
	if err := cmdCtx.Finder().Draft().Clear(); err != nil {
		return err
	}
	return output.FormatSuccess(cmd.OutOrStdout(), "Draft cleared", formatter.Format())
}

func displayDraft(cmd *cobra.Command, f draft.Fields) error {
	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, f)
	}
	out(w, "Token:  %s\n", f.TokenAddress)
	out(w, "Wallet: %s\n", f.WalletAddress)
	return nil
}
