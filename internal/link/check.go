package link

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// AddressWarning describes an address that does not look like a Solana public key.
type AddressWarning struct {
	Field   string // "token" or "wallet"
	Address string
	Reason  string
}

func (w AddressWarning) String() string {
	return fmt.Sprintf("%s address %q does not look like a Solana address: %s", w.Field, w.Address, w.Reason)
}

// CheckSolanaAddress returns an error if addr is not a base58 ed25519 public key.
func CheckSolanaAddress(addr string) error {
	_, err := solana.PublicKeyFromBase58(addr)
	return err
}

// CheckPair runs CheckSolanaAddress on both addresses. The result is advisory;
// Build never rejects an address for its format.
func CheckPair(tokenAddress, walletAddress string) []AddressWarning {
	var warnings []AddressWarning
	if err := CheckSolanaAddress(tokenAddress); err != nil {
		warnings = append(warnings, AddressWarning{Field: "token", Address: tokenAddress, Reason: err.Error()})
	}
	if err := CheckSolanaAddress(walletAddress); err != nil {
		warnings = append(warnings, AddressWarning{Field: "wallet", Address: walletAddress, Reason: err.Error()})
	}
	return warnings
}
