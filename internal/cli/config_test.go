package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/pnlink/internal/config"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

func TestGetConfigValue(t *testing.T) {
	testCfg := config.Defaults()
	testCfg.Home = "/test/home"
	testCfg.Storage.Backend = "sqlite"
	testCfg.Link.CheckAddresses = true
	testCfg.History.MaxEntries = 25
	testCfg.Output.DefaultFormat = "json"
	testCfg.Output.Color = "always"
	testCfg.Logging.Level = "debug"
	testCfg.Logging.File = "/var/log/pnlink.log"

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "home", want: "/test/home"},
		{path: "storage.backend", want: "sqlite"},
		{path: "storage.path", want: ""},
		{path: "link.base_url", want: "https://dexscreener.com"},
		{path: "link.chain", want: "solana"},
		{path: "link.check_addresses", want: "true"},
		{path: "history.max_entries", want: "25"},
		{path: "output.default_format", want: "json"},
		{path: "output.verbose", want: "false"},
		{path: "output.color", want: "always"},
		{path: "logging.level", want: "debug"},
		{path: "logging.file", want: "/var/log/pnlink.log"},

		{path: "unknown", wantErr: true},
		{path: "storage.unknown", wantErr: true},
		{path: "link.unknown", wantErr: true},
		{path: "history.unknown", wantErr: true},
		{path: "unknown.key", wantErr: true},
		{path: "a.b.c", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := getConfigValue(testCfg, tc.path)
			if tc.wantErr {
				require.ErrorIs(t, err, pnlerr.ErrUnknownConfigKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		path    string
		value   string
		check   func(*config.Config) any
		want    any
		wantErr error
	}{
		{path: "storage.backend", value: "SQLite", check: func(c *config.Config) any { return c.Storage.Backend }, want: "sqlite"},
		{path: "storage.backend", value: "redis", wantErr: pnlerr.ErrInvalidFormat},
		{path: "link.base_url", value: " https://example.test/ ", check: func(c *config.Config) any { return c.Link.BaseURL }, want: "https://example.test"},
		{path: "link.base_url", value: "ftp://x", wantErr: pnlerr.ErrInvalidFormat},
		{path: "link.chain", value: "base", check: func(c *config.Config) any { return c.Link.Chain }, want: "base"},
		{path: "link.chain", value: "a/b", wantErr: pnlerr.ErrInvalidFormat},
		{path: "link.check_addresses", value: "true", check: func(c *config.Config) any { return c.Link.CheckAddresses }, want: true},
		{path: "link.check_addresses", value: "maybe", wantErr: pnlerr.ErrInvalidFormat},
		{path: "history.max_entries", value: "20", check: func(c *config.Config) any { return c.History.MaxEntries }, want: 20},
		{path: "history.max_entries", value: "0", wantErr: pnlerr.ErrInvalidFormat},
		{path: "output.default_format", value: "yaml", wantErr: pnlerr.ErrInvalidFormat},
		{path: "output.color", value: "never", check: func(c *config.Config) any { return c.Output.Color }, want: "never"},
		{path: "logging.level", value: "warn", check: func(c *config.Config) any { return c.Logging.Level }, want: "warn"},
		{path: "logging.level", value: "trace", wantErr: pnlerr.ErrInvalidFormat},
		{path: "output.nope", value: "x", wantErr: pnlerr.ErrUnknownConfigKey},
	}

	for _, tc := range tests {
		t.Run(tc.path+"="+tc.value, func(t *testing.T) {
			c := config.Defaults()
			err := setConfigValue(c, tc.path, tc.value)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, tc.check(c))
		})
	}
}

func TestConfigInit(t *testing.T) {
	home := newHome(t)

	res := runCLI(t, home, "config", "init")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Configuration initialized at")

	loaded, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pnlink.log"), loaded.Logging.File)
	assert.Equal(t, config.BackendFile, loaded.Storage.Backend)

	res = runCLI(t, home, "config", "init")
	require.Error(t, res.err)

	res = runCLI(t, home, "config", "init", "--force")
	require.NoError(t, res.err)
}

func TestConfigSetGet(t *testing.T) {
	home := newHome(t)

	res := runCLI(t, home, "config", "set", "link.chain", "base")
	require.NoError(t, res.err)
	assert.Equal(t, "Set link.chain = base\n", res.stdout)

	res = runCLI(t, home, "config", "get", "link.chain")
	require.NoError(t, res.err)
	assert.Equal(t, "base\n", res.stdout)

	res = runCLI(t, home, "generate", "T", "W")
	require.NoError(t, res.err)
	assert.Equal(t, "https://dexscreener.com/base/T?maker=W\n", res.stdout)

	res = runCLI(t, home, "config", "get", "link.nope")
	require.ErrorIs(t, res.err, pnlerr.ErrUnknownConfigKey)
}

func TestConfigShow_JSON(t *testing.T) {
	home := newHome(t)

	res := runCLI(t, home, "config", "show", "-o", "json")
	require.NoError(t, res.err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, home, doc["home"])
	storage := doc["storage"].(map[string]any)
	assert.Equal(t, filepath.Join(home, "storage.json"), storage["path"])
}

func TestConfigShow_Text(t *testing.T) {
	home := newHome(t)
	res := runCLI(t, home, "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "base_url: https://dexscreener.com")
	assert.Contains(t, res.stdout, "max_entries: 10")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	home := newHome(t)
	require.NoError(t, runCLI(t, home, "config", "set", "link.chain", "base").err)

	t.Setenv(config.EnvChain, "solana")
	t.Setenv(config.EnvBaseURL, "https://example.test/")

	res := runCLI(t, home, "generate", "T", "W")
	require.NoError(t, res.err)
	assert.Equal(t, "https://example.test/solana/T?maker=W\n", res.stdout)

	// config set edits the file, not the environment-adjusted view
	res = runCLI(t, home, "config", "set", "history.max_entries", "5")
	require.NoError(t, res.err)
	loaded, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "base", loaded.Link.Chain)
}

func TestInvalidConfigFile(t *testing.T) {
	home := newHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("link: [oops"), 0o600))

	res := runCLI(t, home, "draft", "show")
	require.ErrorIs(t, res.err, pnlerr.ErrConfigInvalid)
}
