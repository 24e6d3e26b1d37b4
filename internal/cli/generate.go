package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/pnlink/internal/output"
	"github.com/mrz1836/pnlink/internal/service/finder"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// desktopTimeout bounds clipboard and browser helpers.
const desktopTimeout = 5 * time.Second

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	generateToken  string
	generateWallet string
	generateSaved  string
	generateCopy   bool
	generateOpen   bool
	generateQR     bool
)

// generateCmd builds a PnL link.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var generateCmd = &cobra.Command{
	Use:     "generate [token] [wallet]",
	Aliases: []string{"gen", "link"},
	GroupID: groupLinks,
	Short:   "Build a PnL link for a token and wallet",
	Long: `Build the DexScreener PnL link for a token address and a wallet address.

Addresses come from the positional arguments, then --token/--wallet, then the
saved draft. --saved uses a saved wallet (id or nickname) as the wallet.
The inputs are saved as the new draft. A successful link is added to the
front of the query history.`,
	Example: `  pnlink generate So11111111111111111111111111111111111111112 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM
  pnlink generate --token So11111111111111111111111111111111111111112 --saved whale --copy
  pnlink generate --open`,
	Args: cobra.MaximumNArgs(2),
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateToken, "token", "", "token address")
	generateCmd.Flags().StringVar(&generateWallet, "wallet", "", "wallet address")
	generateCmd.Flags().StringVar(&generateSaved, "saved", "", "use a saved wallet by id or nickname")
	generateCmd.Flags().BoolVar(&generateCopy, "copy", false, "copy the link to the clipboard")
	generateCmd.Flags().BoolVar(&generateOpen, "open", false, "open the link in the default browser")
	generateCmd.Flags().BoolVar(&generateQR, "qr", false, "show the link as a QR code (terminal only)")
	generateCmd.MarkFlagsMutuallyExclusive("wallet", "saved")
}

// GenerateResponse is the JSON result of generate.
type GenerateResponse struct {
	URL           string   `json:"url"`
	TokenAddress  string   `json:"tokenAddress"`
	WalletAddress string   `json:"walletAddress"`
	Recorded      bool     `json:"recorded"`
	Warnings      []string `json:"warnings,omitempty"`
	Copied        *bool    `json:"copied,omitempty"`
	Opened        *bool    `json:"opened,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc := cmdCtx.Finder()

	token, wallet, err := resolveGenerateInputs(svc, args)
	if err != nil {
		return err
	}

	res, err := svc.Generate(token, wallet)
	if err != nil {
		return pnlerr.WithSuggestion(err, "pass both addresses, e.g. pnlink generate <token> <wallet>")
	}

	resp := GenerateResponse{
		URL:           res.URL,
		TokenAddress:  res.Query.TokenAddress,
		WalletAddress: res.Query.WalletAddress,
		Recorded:      res.Recorded,
	}
	for _, w := range res.Warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}

	// Desktop actions run after the link is final; their failures never
	// touch saved state. Both are attempted; the first failure is returned.
	var actionErrs []error
	if generateCopy {
		ctx, cancel := contextWithTimeout(cmd, desktopTimeout)
		err := cmdCtx.Clipboard.Copy(ctx, res.URL)
		cancel()
		resp.Copied = succeeded(err)
		if err != nil {
			actionErrs = append(actionErrs, err)
		}
	}
	if generateOpen {
		ctx, cancel := contextWithTimeout(cmd, desktopTimeout)
		err := cmdCtx.Browser.Open(ctx, res.URL)
		cancel()
		resp.Opened = succeeded(err)
		if err != nil {
			actionErrs = append(actionErrs, err)
		}
	}

	if err := displayGenerate(cmd, resp); err != nil {
		return err
	}
	if len(actionErrs) == 0 {
		return nil
	}
	for _, err := range actionErrs[1:] {
		cmdCtx.Logger.Error("%v", err)
		cmdCtx.Messenger.Warn("%v", err)
	}
	return actionErrs[0]
}

func succeeded(err error) *bool {
	ok := err == nil
	return &ok
}

// resolveGenerateInputs picks each address from args, flags or the draft, in that order.
func resolveGenerateInputs(svc *finder.Service, args []string) (string, string, error) {
	d := svc.Draft().Load()
	token, wallet := d.TokenAddress, d.WalletAddress

	if generateToken != "" {
		token = generateToken
	}
	if generateWallet != "" {
		wallet = generateWallet
	}
	if generateSaved != "" {
		w, err := svc.ResolveWallet(generateSaved)
		if err != nil {
			return "", "", err
		}
		wallet = w.Address
	}
	if len(args) > 0 {
		token = args[0]
	}
	if len(args) > 1 {
		wallet = args[1]
	}
	return token, wallet, nil
}

func displayGenerate(cmd *cobra.Command, resp GenerateResponse) error {
	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, resp)
	}

	for _, warning := range resp.Warnings {
		cmdCtx.Messenger.Warn("%s", warning)
	}
	outln(w, resp.URL)
	if !resp.Recorded {
		cmdCtx.Messenger.Warn("link not saved to history")
	}
	if resp.Copied != nil && *resp.Copied {
		cmdCtx.Messenger.Success("Link copied to clipboard")
	}
	if resp.Opened != nil && *resp.Opened {
		cmdCtx.Messenger.Success("Opened in browser")
	}
	if generateQR && !output.RenderQR(w, resp.URL, output.DefaultQRConfig()) {
		cmdCtx.Logger.Debug("qr skipped: output is not a terminal")
	}
	return nil
}
