package config

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Link defaults. Together they produce https://dexscreener.com/solana/<token>?maker=<wallet>.
const (
	DefaultBaseURL = "https://dexscreener.com"
	DefaultChain   = "solana"
)

// DefaultHistoryMax is the number of past queries kept.
const DefaultHistoryMax = 10

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.pnlink",
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		Link: LinkConfig{
			BaseURL:        DefaultBaseURL,
			Chain:          DefaultChain,
			CheckAddresses: false,
		},
		History: HistoryConfig{
			MaxEntries: DefaultHistoryMax,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.pnlink/pnlink.log",
		},
	}
}
