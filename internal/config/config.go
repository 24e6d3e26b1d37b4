// Package config provides configuration management for pnlink.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version int           `yaml:"version"`
	Home    string        `yaml:"home"`
	Storage StorageConfig `yaml:"storage"`
	Link    LinkConfig    `yaml:"link"`
	History HistoryConfig `yaml:"history"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the key-value store backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, sqlite, memory
	Path    string `yaml:"path,omitempty"`
}

// LinkConfig defines how deep links are built.
type LinkConfig struct {
	BaseURL        string `yaml:"base_url"`
	Chain          string `yaml:"chain"`
	CheckAddresses bool   `yaml:"check_addresses"`
}

// HistoryConfig defines query history settings.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file. A missing file returns
// ErrConfigNotFound wrapping the os.ErrNotExist cause.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pnlerr.WithDetails(pnlerr.WithCause(pnlerr.ErrConfigNotFound, err), map[string]string{"path": path})
	}
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the config file path inside home.
func Path(home string) string {
	return filepath.Join(ExpandPath(home), "config.yaml")
}

// StoragePath returns the resolved path of the key-value store.
// An explicit storage.path wins; otherwise the file name follows the backend.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return ExpandPath(c.Storage.Path)
	}
	name := "storage.json"
	if c.Storage.Backend == BackendSQLite {
		name = "storage.db"
	}
	return filepath.Join(ExpandPath(c.Home), name)
}

// GetHome returns the pnlink home directory path.
func (c *Config) GetHome() string {
	return ExpandPath(c.Home)
}

// GetStorageBackend returns the configured store backend.
func (c *Config) GetStorageBackend() string {
	return c.Storage.Backend
}

// GetBaseURL returns the link base URL.
func (c *Config) GetBaseURL() string {
	return c.Link.BaseURL
}

// GetChain returns the chain path segment used in links.
func (c *Config) GetChain() string {
	return c.Link.Chain
}

// GetHistoryMax returns the history capacity.
func (c *Config) GetHistoryMax() int {
	if c.History.MaxEntries <= 0 {
		return DefaultHistoryMax
	}
	return c.History.MaxEntries
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default pnlink home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pnlink"
	}
	return filepath.Join(home, ".pnlink")
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
