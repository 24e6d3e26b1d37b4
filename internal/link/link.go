// Package link builds DexScreener PnL deep links.
//
// A link has the shape
//
//	https://dexscreener.com/solana/<tokenAddress>?maker=<walletAddress>
//
// Addresses are interpolated verbatim. They are not trimmed, checked or
// percent-encoded, so the output matches what the DexScreener site expects
// byte for byte.
package link

import (
	"strings"

	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// Defaults used by New.
const (
	DefaultBaseURL = "https://dexscreener.com"
	DefaultChain   = "solana"
)

// Builder builds links for one base URL and chain.
type Builder struct {
	baseURL string
	chain   string
}

// Option configures a Builder.
type Option func(*Builder)

// WithBaseURL overrides the site root. Trailing slashes are dropped; an
// empty value keeps the default.
func WithBaseURL(baseURL string) Option {
	return func(b *Builder) {
		if u := strings.TrimRight(baseURL, "/"); u != "" {
			b.baseURL = u
		}
	}
}

// WithChain overrides the chain path segment. An empty value keeps the default.
func WithChain(chain string) Option {
	return func(b *Builder) {
		if chain != "" {
			b.chain = chain
		}
	}
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{baseURL: DefaultBaseURL, chain: DefaultChain}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the PnL link for the pair. Both addresses must be non-empty.
func (b *Builder) Build(tokenAddress, walletAddress string) (string, error) {
	if err := ValidatePair(tokenAddress, walletAddress); err != nil {
		return "", err
	}
	return b.baseURL + "/" + b.chain + "/" + tokenAddress + "?maker=" + walletAddress, nil
}

// Generate builds a link with the default site and chain.
func Generate(tokenAddress, walletAddress string) (string, error) {
	return New().Build(tokenAddress, walletAddress)
}

// ValidatePair reports ErrValidation unless both addresses are non-empty.
func ValidatePair(tokenAddress, walletAddress string) error {
	if tokenAddress == "" || walletAddress == "" {
		err := pnlerr.WithMessage(pnlerr.ErrValidation, "both token address and wallet address are required")
		details := map[string]string{}
		if tokenAddress == "" {
			details["token"] = "missing"
		}
		if walletAddress == "" {
			details["wallet"] = "missing"
		}
		return pnlerr.WithDetails(err, details)
	}
	return nil
}
