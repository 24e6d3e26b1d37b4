package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mrz1836/pnlink/internal/browser"
	"github.com/mrz1836/pnlink/internal/clipboard"
	"github.com/mrz1836/pnlink/internal/config"
)

// isolateEnv unsets every variable initGlobals reads and restores them on cleanup.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvHome, config.EnvStorageBackend, config.EnvBaseURL, config.EnvChain,
		config.EnvOutputFormat, config.EnvVerbose, config.EnvLogLevel, config.EnvHistoryMax,
		config.EnvNoColor,
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

// resetCommandState puts flags and globals back to their defaults.
func resetCommandState(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	walkCommands(rootCmd, func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(reset)
		cmd.PersistentFlags().VisitAll(reset)
	})
	cfg, logger, formatter, cmdCtx = nil, nil, nil, nil

	t.Cleanup(func() {
		cleanup()
		cfg, logger, formatter, cmdCtx = nil, nil, nil, nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

// withDesktop replaces clipboard and browser with recorders.
func withDesktop(t *testing.T, copyErr, openErr error) (*string, *string) {
	t.Helper()
	origClip, origBrowser := newClipboardFn, newBrowserFn
	t.Cleanup(func() {
		newClipboardFn, newBrowserFn = origClip, origBrowser
	})

	var copied, opened string
	newClipboardFn = func() *clipboard.Copier {
		return clipboard.New(clipboard.WithWriter(func(s string) error {
			if copyErr != nil {
				return copyErr
			}
			copied = s
			return nil
		}))
	}
	newBrowserFn = func() *browser.Opener {
		return browser.New(browser.WithGOOS("linux"), browser.WithRunner(func(_ context.Context, _ string, args ...string) error {
			if openErr != nil {
				return openErr
			}
			opened = args[len(args)-1]
			return nil
		}))
	}
	return &copied, &opened
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes pnlink against home with text output unless args override it.
func runCLI(t *testing.T, home string, args ...string) cliResult {
	t.Helper()
	resetCommandState(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--home", home, "-o", "text"}, args...))

	err := rootCmd.Execute()
	if err != nil {
		cleanup()
	}
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// newHome returns an empty pnlink home with a clean environment.
func newHome(t *testing.T) string {
	t.Helper()
	isolateEnv(t)
	return t.TempDir()
}
