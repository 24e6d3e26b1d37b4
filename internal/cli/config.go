package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/pnlink/internal/config"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: groupConfig,
	Short:   "Manage configuration",
	Long:    `View and modify pnlink configuration settings.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at <home>/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.`,
	Example: `  pnlink config init
  pnlink config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, after environment and flag overrides.`,
	Example: `  pnlink config show
  pnlink config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its dot path.

Paths: home, storage.backend, storage.path, link.base_url, link.chain,
link.check_addresses, history.max_entries, output.default_format,
output.verbose, output.color, logging.level, logging.file.`,
	Example: `  pnlink config get link.base_url
  pnlink config get history.max_entries`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its dot path.
The configuration file is updated immediately.`,
	Example: `  pnlink config set storage.backend sqlite
  pnlink config set link.check_addresses true
  pnlink config set history.max_entries 20`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd, configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return pnlerr.WithSuggestion(
			pnlerr.WithMessage(pnlerr.ErrGeneral, "configuration already exists"),
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home
	defaultCfg.Logging.File = filepath.Join(config.ExpandPath(cfg.Home), "pnlink.log")

	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - storage.backend: file, sqlite or memory")
	outln(w, "  - link.base_url / link.chain: where links point")
	outln(w, "  - history.max_entries: how many recent queries to keep")
	outln(w, "  - output.default_format: Output format (text/json/auto)")
	outln(w, "  - logging.level: Log level (off/error/warn/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return displayConfigJSON(w, cfg)
	}
	displayConfigText(w, cfg)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := getConfigValue(cfg, path)
	if err != nil {
		return pnlerr.WithSuggestion(err, fmt.Sprintf("configuration path '%s' not found", path))
	}

	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, value := args[0], args[1]

	if _, err := getConfigValue(cfg, path); err != nil {
		return pnlerr.WithSuggestion(err, fmt.Sprintf("configuration path '%s' not found", path))
	}

	// Edit the file, not the effective config, so env and flag overrides
	// are not written back.
	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	switch {
	case err == nil:
	case !errors.Is(err, pnlerr.ErrConfigNotFound):
		return pnlerr.WithCause(pnlerr.ErrConfigInvalid, err)
	default:
		currentCfg = config.Defaults()
		currentCfg.Home = cfg.Home
		currentCfg.Logging.File = filepath.Join(config.ExpandPath(cfg.Home), "pnlink.log")
	}

	if err := setConfigValue(currentCfg, path, value); err != nil {
		return err
	}

	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	stored, _ := getConfigValue(currentCfg, path)
	out(cmd.OutOrStdout(), "Set %s = %s\n", path, stored)
	return nil
}

func unknownKey(section, key string) error {
	details := map[string]string{"key": key}
	if section != "" {
		details["section"] = section
	}
	return pnlerr.WithDetails(pnlerr.ErrUnknownConfigKey, details)
}

func invalidValue(value, valid string) error {
	return pnlerr.WithDetails(
		pnlerr.ErrInvalidFormat,
		map[string]string{"value": value, "valid": valid},
	)
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		if parts[0] == "home" {
			return c.Home, nil
		}
		return "", unknownKey("", parts[0])
	case 2:
		section, key := parts[0], parts[1]
		switch section {
		case "storage":
			return getStorageValue(c, key)
		case "link":
			return getLinkValue(c, key)
		case "history":
			return getHistoryValue(c, key)
		case "output":
			return getOutputValue(c, key)
		case "logging":
			return getLoggingValue(c, key)
		default:
			return "", pnlerr.WithDetails(pnlerr.ErrUnknownConfigKey, map[string]string{"section": section})
		}
	default:
		return "", pnlerr.WithDetails(pnlerr.ErrUnknownConfigKey, map[string]string{"path": path})
	}
}

func getStorageValue(c *config.Config, key string) (string, error) {
	switch key {
	case "backend":
		return c.Storage.Backend, nil
	case "path":
		return c.Storage.Path, nil
	default:
		return "", unknownKey("storage", key)
	}
}

func getLinkValue(c *config.Config, key string) (string, error) {
	switch key {
	case "base_url":
		return c.Link.BaseURL, nil
	case "chain":
		return c.Link.Chain, nil
	case "check_addresses":
		return strconv.FormatBool(c.Link.CheckAddresses), nil
	default:
		return "", unknownKey("link", key)
	}
}

func getHistoryValue(c *config.Config, key string) (string, error) {
	if key == "max_entries" {
		return strconv.Itoa(c.History.MaxEntries), nil
	}
	return "", unknownKey("history", key)
}

func getOutputValue(c *config.Config, key string) (string, error) {
	switch key {
	case "default_format":
		return c.Output.DefaultFormat, nil
	case "verbose":
		return strconv.FormatBool(c.Output.Verbose), nil
	case "color":
		return c.Output.Color, nil
	default:
		return "", unknownKey("output", key)
	}
}

func getLoggingValue(c *config.Config, key string) (string, error) {
	switch key {
	case "level":
		return c.Logging.Level, nil
	case "file":
		return c.Logging.File, nil
	default:
		return "", unknownKey("logging", key)
	}
}

// setConfigValue sets a value in the config using dot notation.
func setConfigValue(c *config.Config, path, value string) error {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		if parts[0] == "home" {
			c.Home = value
			return nil
		}
		return unknownKey("", parts[0])
	case 2:
		section, key := parts[0], parts[1]
		switch section {
		case "storage":
			return setStorageValue(c, key, value)
		case "link":
			return setLinkValue(c, key, value)
		case "history":
			return setHistoryValue(c, key, value)
		case "output":
			return setOutputValue(c, key, value)
		case "logging":
			return setLoggingValue(c, key, value)
		default:
			return pnlerr.WithDetails(pnlerr.ErrUnknownConfigKey, map[string]string{"section": section})
		}
	default:
		return pnlerr.WithDetails(pnlerr.ErrUnknownConfigKey, map[string]string{"path": path})
	}
}

func setStorageValue(c *config.Config, key, value string) error {
	switch key {
	case "backend":
		v := strings.ToLower(strings.TrimSpace(value))
		if v != config.BackendFile && v != config.BackendSQLite && v != config.BackendMemory {
			return invalidValue(value, "file, sqlite, or memory")
		}
		c.Storage.Backend = v
		return nil
	case "path":
		c.Storage.Path = value
		return nil
	default:
		return unknownKey("storage", key)
	}
}

func setLinkValue(c *config.Config, key, value string) error {
	switch key {
	case "base_url":
		u := config.SanitizeURL(value)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return invalidValue(value, "an http or https URL")
		}
		c.Link.BaseURL = u
		return nil
	case "chain":
		v := strings.TrimSpace(value)
		if v == "" || strings.Contains(v, "/") {
			return invalidValue(value, "a single path segment such as solana")
		}
		c.Link.Chain = v
		return nil
	case "check_addresses":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalidValue(value, "true or false")
		}
		c.Link.CheckAddresses = b
		return nil
	default:
		return unknownKey("link", key)
	}
}

func setHistoryValue(c *config.Config, key, value string) error {
	if key != "max_entries" {
		return unknownKey("history", key)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return invalidValue(value, "a whole number of at least 1")
	}
	c.History.MaxEntries = n
	return nil
}

func setOutputValue(c *config.Config, key, value string) error {
	switch key {
	case "default_format":
		if value != "text" && value != "json" && value != "auto" {
			return invalidValue(value, "text, json, or auto")
		}
		c.Output.DefaultFormat = value
		return nil
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalidValue(value, "true or false")
		}
		c.Output.Verbose = b
		return nil
	case "color":
		if value != "auto" && value != "always" && value != "never" {
			return invalidValue(value, "auto, always, or never")
		}
		c.Output.Color = value
		return nil
	default:
		return unknownKey("output", key)
	}
}

func setLoggingValue(c *config.Config, key, value string) error {
	switch key {
	case "level":
		for _, l := range []string{"off", "error", "warn", "debug"} {
			if value == l {
				c.Logging.Level = value
				return nil
			}
		}
		return invalidValue(value, "off, error, warn, or debug")
	case "file":
		c.Logging.File = value
		return nil
	default:
		return unknownKey("logging", key)
	}
}

// displayConfigText shows the config in text format.
func displayConfigText(w io.Writer, c *config.Config) {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Storage:")
	out(w, "    backend: %s\n", c.Storage.Backend)
	out(w, "    path: %s\n", c.StoragePath())
	outln(w)
	outln(w, "  Link:")
	out(w, "    base_url: %s\n", c.Link.BaseURL)
	out(w, "    chain: %s\n", c.Link.Chain)
	out(w, "    check_addresses: %t\n", c.Link.CheckAddresses)
	outln(w)
	outln(w, "  History:")
	out(w, "    max_entries: %d\n", c.GetHistoryMax())
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)
}

// displayConfigJSON shows the config in JSON format.
func displayConfigJSON(w io.Writer, c *config.Config) error {
	type configJSON struct {
		Version int    `json:"version"`
		Home    string `json:"home"`
		Storage struct {
			Backend string `json:"backend"`
			Path    string `json:"path"`
		} `json:"storage"`
		Link struct {
			BaseURL        string `json:"base_url"`
			Chain          string `json:"chain"`
			CheckAddresses bool   `json:"check_addresses"`
		} `json:"link"`
		History struct {
			MaxEntries int `json:"max_entries"`
		} `json:"history"`
		Output struct {
			DefaultFormat string `json:"default_format"`
			Color         string `json:"color"`
			Verbose       bool   `json:"verbose"`
		} `json:"output"`
		Logging struct {
			Level string `json:"level"`
			File  string `json:"file"`
		} `json:"logging"`
	}

	outCfg := configJSON{Version: c.Version, Home: c.Home}
	outCfg.Storage.Backend = c.Storage.Backend
	outCfg.Storage.Path = c.StoragePath()
	outCfg.Link.BaseURL = c.Link.BaseURL
	outCfg.Link.Chain = c.Link.Chain
	outCfg.Link.CheckAddresses = c.Link.CheckAddresses
	outCfg.History.MaxEntries = c.GetHistoryMax()
	outCfg.Output.DefaultFormat = c.Output.DefaultFormat
	outCfg.Output.Color = c.Output.Color
	outCfg.Output.Verbose = c.Output.Verbose
	outCfg.Logging.Level = c.Logging.Level
	outCfg.Logging.File = c.Logging.File

	return writeJSON(w, outCfg)
}
