package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mrz1836/go-sanitize"
)

// EnvPrefix is the prefix shared by all pnlink environment variables.
const EnvPrefix = "PNLINK"

// Environment variable names.
const (
	EnvHome           = "PNLINK_HOME"
	EnvStorageBackend = "PNLINK_STORAGE_BACKEND"
	EnvBaseURL        = "PNLINK_BASE_URL"
	EnvChain          = "PNLINK_CHAIN"
	EnvOutputFormat   = "PNLINK_OUTPUT_FORMAT"
	EnvVerbose        = "PNLINK_VERBOSE"
	EnvLogLevel       = "PNLINK_LOG_LEVEL"
	EnvHistoryMax     = "PNLINK_HISTORY_MAX"
	EnvNoColor        = "NO_COLOR"
)

// envOverrides mirrors the PNLINK_* variables. Empty strings and zero values mean "unset".
// Keys come from split_words so there is no unprefixed fallback (HOME must not leak in).
type envOverrides struct {
	Home           string `split_words:"true"`
	StorageBackend string `split_words:"true"`
	BaseURL        string `split_words:"true"`
	Chain          string `split_words:"true"`
	OutputFormat   string `split_words:"true"`
	Verbose        string `split_words:"true"`
	LogLevel       string `split_words:"true"`
	HistoryMax     int    `split_words:"true"`
}

// LoadDotEnv loads .env files from the working directory and from home.
// Variables already present in the environment are never overwritten and
// missing files are ignored.
func LoadDotEnv(home string) {
	candidates := []string{".env"}
	if home != "" {
		candidates = append(candidates, filepath.Join(ExpandPath(home), ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if env.Home != "" {
		cfg.Home = env.Home
	}

	if env.StorageBackend != "" {
		cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(env.StorageBackend))
	}

	if env.BaseURL != "" {
		cfg.Link.BaseURL = SanitizeURL(env.BaseURL)
	}

	if env.Chain != "" {
		cfg.Link.Chain = strings.TrimSpace(env.Chain)
	}

	if env.OutputFormat != "" {
		cfg.Output.DefaultFormat = strings.ToLower(env.OutputFormat)
	}

	if env.Verbose != "" {
		cfg.Output.Verbose = parseBool(env.Verbose)
	}

	if env.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(env.LogLevel)
	}

	if env.HistoryMax > 0 {
		cfg.History.MaxEntries = env.HistoryMax
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	return nil
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

// SanitizeURL cleans a URL string by removing invalid characters and trimming
// whitespace and any trailing slash.
func SanitizeURL(url string) string {
	return strings.TrimRight(sanitize.URL(strings.TrimSpace(url)), "/")
}
