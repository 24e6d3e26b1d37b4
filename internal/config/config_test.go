package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/pnlink/internal/config"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := config.Defaults()
	cfg.Storage.Backend = config.BackendSQLite
	cfg.Link.Chain = "base"
	cfg.History.MaxEntries = 25
	cfg.Output.Verbose = true

	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Version, loaded.Version)
	assert.Equal(t, config.BackendSQLite, loaded.Storage.Backend)
	assert.Equal(t, "base", loaded.Link.Chain)
	assert.Equal(t, 25, loaded.History.MaxEntries)
	assert.True(t, loaded.Output.Verbose)
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/.pnlink", cfg.Home)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "https://dexscreener.com", cfg.Link.BaseURL)
	assert.Equal(t, "solana", cfg.Link.Chain)
	assert.False(t, cfg.Link.CheckAddresses)
	assert.Equal(t, 10, cfg.History.MaxEntries)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()
	_, err := config.Load("/nonexistent/config.yaml")
	require.ErrorIs(t, err, pnlerr.ErrConfigNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, pnlerr.ExitNotFound, pnlerr.ExitCode(err))
	assert.Contains(t, err.Error(), "(path: /nonexistent/config.yaml)")
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, pnlerr.ErrConfigNotFound)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("link:\n  chain: bsc\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bsc", cfg.Link.Chain)
	assert.Equal(t, config.DefaultBaseURL, cfg.Link.BaseURL)
	assert.Equal(t, config.DefaultHistoryMax, cfg.History.MaxEntries)
}

func TestStoragePath(t *testing.T) {
	t.Parallel()

	t.Run("file backend", func(t *testing.T) {
		t.Parallel()
		cfg := config.Defaults()
		cfg.Home = "/data/pnlink"
		assert.Equal(t, filepath.Join("/data/pnlink", "storage.json"), cfg.StoragePath())
	})

	t.Run("sqlite backend", func(t *testing.T) {
		t.Parallel()
		cfg := config.Defaults()
		cfg.Home = "/data/pnlink"
		cfg.Storage.Backend = config.BackendSQLite
		assert.Equal(t, filepath.Join("/data/pnlink", "storage.db"), cfg.StoragePath())
	})

	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()
		cfg := config.Defaults()
		cfg.Storage.Path = "/tmp/custom.json"
		assert.Equal(t, "/tmp/custom.json", cfg.StoragePath())
	})
}

func TestGetHistoryMax_FallsBackToDefault(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()
	cfg.History.MaxEntries = 0
	assert.Equal(t, config.DefaultHistoryMax, cfg.GetHistoryMax())

	cfg.History.MaxEntries = 3
	assert.Equal(t, 3, cfg.GetHistoryMax())
}

func TestExpandPath(t *testing.T) {
	t.Parallel()
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".pnlink"), config.ExpandPath("~/.pnlink"))
	assert.Equal(t, "/abs/path", config.ExpandPath("/abs/path"))
	assert.Equal(t, "relative", config.ExpandPath("relative"))
}
