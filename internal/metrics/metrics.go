// Package metrics provides process-level counters for pnlink operations.
// Counters are atomic and live for one CLI invocation; they are reported
// through the debug log when the command finishes.
package metrics

import (
	"fmt"
	"sync/atomic"
)

// Metrics holds operation counters using atomic values for thread safety.
type Metrics struct {
	// Link generation
	linksGenerated   atomic.Int64
	linkRejections   atomic.Int64
	addressWarnings  atomic.Int64
	historyWrites    atomic.Int64
	historyWriteErrs atomic.Int64

	// Saved wallet mutations
	walletOpsTotal  atomic.Int64
	walletOpsErrors atomic.Int64

	// Storage
	draftWriteErrs atomic.Int64
}

// Global is the process-wide metrics instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordLink records a generate attempt. A non-nil err means the pair was
// rejected and no link was produced.
func (m *Metrics) RecordLink(warnings int, err error) {
	if err != nil {
		m.linkRejections.Add(1)
		return
	}
	m.linksGenerated.Add(1)
	m.addressWarnings.Add(int64(warnings))
}

// RecordHistoryWrite records a history persistence attempt.
func (m *Metrics) RecordHistoryWrite(err error) {
	m.historyWrites.Add(1)
	if err != nil {
		m.historyWriteErrs.Add(1)
	}
}

// RecordWalletOp records a saved wallet mutation.
func (m *Metrics) RecordWalletOp(err error) {
	m.walletOpsTotal.Add(1)
	if err != nil {
		m.walletOpsErrors.Add(1)
	}
}

// RecordDraftError records a draft field that could not be persisted.
func (m *Metrics) RecordDraftError() {
	m.draftWriteErrs.Add(1)
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	LinksGenerated   int64
	LinkRejections   int64
	AddressWarnings  int64
	HistoryWrites    int64
	HistoryWriteErrs int64
	WalletOpsTotal   int64
	WalletOpsErrors  int64
	DraftWriteErrs   int64
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		LinksGenerated:   m.linksGenerated.Load(),
		LinkRejections:   m.linkRejections.Load(),
		AddressWarnings:  m.addressWarnings.Load(),
		HistoryWrites:    m.historyWrites.Load(),
		HistoryWriteErrs: m.historyWriteErrs.Load(),
		WalletOpsTotal:   m.walletOpsTotal.Load(),
		WalletOpsErrors:  m.walletOpsErrors.Load(),
		DraftWriteErrs:   m.draftWriteErrs.Load(),
	}
}

// Empty reports whether nothing has been recorded.
func (s Snapshot) Empty() bool {
	return s == Snapshot{}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("links=%d rejected=%d warnings=%d history_writes=%d history_errors=%d wallet_ops=%d wallet_errors=%d draft_errors=%d",
		s.LinksGenerated, s.LinkRejections, s.AddressWarnings,
		s.HistoryWrites, s.HistoryWriteErrs,
		s.WalletOpsTotal, s.WalletOpsErrors, s.DraftWriteErrs)
}

// HistoryErrorRate returns the share of failed history writes as a percentage (0-100).
// Returns 0 if no writes have occurred.
func (m *Metrics) HistoryErrorRate() float64 {
	total := m.historyWrites.Load()
	if total == 0 {
		return 0
	}
	return float64(m.historyWriteErrs.Load()) / float64(total) * 100
}

// Reset resets all metrics to zero.
// Useful for testing.
func (m *Metrics) Reset() {
	m.linksGenerated.Store(0)
	m.linkRejections.Store(0)
	m.addressWarnings.Store(0)
	m.historyWrites.Store(0)
	m.historyWriteErrs.Store(0)
	m.walletOpsTotal.Store(0)
	m.walletOpsErrors.Store(0)
	m.draftWriteErrs.Store(0)
}
