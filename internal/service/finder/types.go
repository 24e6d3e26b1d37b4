package finder

import (
	"github.com/mrz1836/pnlink/internal/history"
	"github.com/mrz1836/pnlink/internal/link"
)

// GenerateResult is the outcome of a successful Generate.
type GenerateResult struct {
	URL   string
	Query history.Query

	// Recorded is false when the link was built but history could not be saved.
	Recorded bool

	// Warnings lists addresses that failed the advisory format check.
	Warnings []link.AddressWarning
}
