// Package cli implements the pnlink command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/pnlink/internal/config"
	"github.com/mrz1836/pnlink/internal/metrics"
	"github.com/mrz1836/pnlink/internal/output"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// Command group IDs.
const (
	groupLinks  = "links"
	groupSaved  = "saved"
	groupConfig = "config"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
	cmdCtx    *CommandContext
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pnlink",
	Short: "Build DexScreener PnL links for a token and wallet",
	Long: `pnlink builds DexScreener PnL deep links for a token and a wallet.

It remembers the last token and wallet you entered, keeps the ten most
recent queries, and lets you save wallets under a nickname.`,
	Example: `  pnlink generate So11111111111111111111111111111111111111112 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM
  pnlink wallets add whale 9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM
  pnlink history list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	rootCmd.Version = formatVersion(info)

	err := rootCmd.Execute()
	if err != nil {
		format := output.FormatText
		if formatter != nil {
			format = formatter.Format()
		}
		_ = output.FormatError(os.Stderr, err, format)
		cleanup()
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return pnlerr.ExitCode(err)
}

func formatVersion(info BuildInfo) string {
	v, c, d := info.Version, info.Commit, info.Date
	if v == "" {
		v = "dev"
	}
	if c == "" {
		c = "unknown"
	}
	if d == "" {
		d = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// initGlobals resolves configuration, logger and formatter. Precedence is
// flags, then environment, then the config file, then defaults.
func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	config.LoadDotEnv(home)

	var err error
	cfg, err = config.Load(config.Path(home))
	switch {
	case err == nil:
	case errors.Is(err, pnlerr.ErrConfigNotFound):
		cfg = config.Defaults()
		cfg.Home = home
		cfg.Logging.File = ""
	default:
		return pnlerr.WithSuggestion(
			pnlerr.WithCause(pnlerr.ErrConfigInvalid, err),
			fmt.Sprintf("fix or remove %s", config.Path(home)),
		)
	}
	cfg.Home = home

	if err := config.ApplyEnvironment(cfg); err != nil {
		return pnlerr.WithCause(pnlerr.ErrConfigInvalid, err)
	}

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != string(output.FormatAuto) {
		cfg.Output.DefaultFormat = outputFormat
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = defaultLogFile(cfg.Home)
	}
	logger, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), config.ExpandPath(logFile))
	if err != nil {
		logger = config.NullLogger()
	}

	output.SetColorMode(cfg.Output.Color)

	stdout := cmd.OutOrStdout()
	format, err := output.ParseFormatStrict(cfg.Output.DefaultFormat)
	if err != nil {
		return pnlerr.WithSuggestion(err, "use one of: text, json, auto")
	}
	formatter = output.NewFormatter(format, stdout)

	cmdCtx = NewCommandContext(cfg, logger, formatter).
		WithMessenger(output.NewMessenger(stdout, cmd.ErrOrStderr())).
		WithClipboard(newClipboardFn()).
		WithBrowser(newBrowserFn())

	logger.Debug("command %s: home=%s backend=%s format=%s", cmd.CommandPath(), cfg.Home, cfg.Storage.Backend, formatter.Format())
	return nil
}

func defaultLogFile(home string) string {
	return filepath.Join(config.ExpandPath(home), "pnlink.log")
}

// cleanup releases resources.
func cleanup() {
	if cmdCtx != nil {
		cmdCtx.Close()
	}
	if snap := metrics.Global.Snapshot(); !snap.Empty() && logger != nil {
		logger.Debug("metrics: %s", snap)
	}
	metrics.Global.Reset()
	if logger != nil {
		_ = logger.Close()
	}
}

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "pnlink data directory (default: ~/.pnlink)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupLinks, Title: "Links:"},
		&cobra.Group{ID: groupSaved, Title: "Saved Data:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID(groupConfig)
	rootCmd.SetCompletionCommandGroupID(groupConfig)
}
