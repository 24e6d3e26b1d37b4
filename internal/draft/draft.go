// Package draft mirrors the two link inputs into the store so that the next
// run starts from the last values entered.
package draft

import (
	"fmt"

	"github.com/mrz1836/pnlink/internal/kvstore"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// Store keys for the draft fields.
const (
	TokenKey  = "tokenAddress"
	WalletKey = "walletAddress"
)

// Fields holds the draft values. Absent keys load as empty strings.
type Fields struct {
	TokenAddress  string `json:"tokenAddress"`
	WalletAddress string `json:"walletAddress"`
}

// Persistence writes draft values through to a store.
type Persistence struct {
	store kvstore.Store
}

// New returns a Persistence backed by store.
func New(store kvstore.Store) *Persistence {
	return &Persistence{store: store}
}

// Load returns the last persisted values.
func (p *Persistence) Load() Fields {
	token, _ := p.store.Get(TokenKey)
	wallet, _ := p.store.Get(WalletKey)
	return Fields{TokenAddress: token, WalletAddress: wallet}
}

// SetToken persists the token address as given, without trimming.
func (p *Persistence) SetToken(v string) error {
	return p.set(TokenKey, v)
}

// SetWallet persists the wallet address as given, without trimming.
func (p *Persistence) SetWallet(v string) error {
	return p.set(WalletKey, v)
}

// Set persists both fields.
func (p *Persistence) Set(f Fields) error {
	if err := p.SetToken(f.TokenAddress); err != nil {
		return err
	}
	return p.SetWallet(f.WalletAddress)
}

// Clear removes both keys.
func (p *Persistence) Clear() error {
	for _, key := range []string{TokenKey, WalletKey} {
		if err := p.store.Remove(key); err != nil {
			return fmt.Errorf("clearing %s: %w", key, pnlerr.WithCause(pnlerr.ErrStorage, err))
		}
	}
	return nil
}

func (p *Persistence) set(key, value string) error {
	if err := p.store.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, pnlerr.WithCause(pnlerr.ErrStorage, err))
	}
	return nil
}
