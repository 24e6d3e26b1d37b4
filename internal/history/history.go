// Package history keeps the most-recent-first list of past link queries.
package history

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/mrz1836/pnlink/internal/kvstore"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// StorageKey is the store key holding the JSON-encoded history.
const StorageKey = "queryHistory"

// DefaultCapacity is the number of queries kept.
const DefaultCapacity = 10

// Query is one (token, wallet) pair. Two queries are the same query when both fields match.
type Query struct {
	TokenAddress  string `json:"tokenAddress"`
	WalletAddress string `json:"walletAddress"`
}

// Logger receives decode diagnostics.
type Logger interface {
	Debug(format string, args ...any)
}

// Manager owns the query history and persists it after every mutation.
// Entries are ordered most recent first, hold no duplicates and never
// exceed the capacity.
type Manager struct {
	mu       sync.Mutex
	store    kvstore.Store
	capacity int
	entries  []Query
	log      Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithCapacity sets the maximum number of entries. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager backed by store and loads any persisted history.
func New(store kvstore.Store, opts ...Option) *Manager {
	m := &Manager{store: store, capacity: DefaultCapacity, log: nopLogger{}}
	for _, opt := range opts {
		opt(m)
	}
	m.Load()
	return m
}

// Load replaces the in-memory list with the persisted one, dropping repeated
// queries and anything past capacity. Missing or malformed data yields an
// empty history; the problem is only logged.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil

	raw, ok := m.store.Get(StorageKey)
	if !ok {
		return
	}

	var entries []Query
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		m.log.Debug("%v", pnlerr.WithCause(pnlerr.ErrStorageDecode, fmt.Errorf("%s: %w", StorageKey, err)))
		return
	}

	m.entries = dedupe(entries, m.capacity)
}

// dedupe keeps the first occurrence of each query, up to limit entries.
func dedupe(entries []Query, limit int) []Query {
	seen := make(map[Query]struct{}, len(entries))
	out := make([]Query, 0, min(len(entries), limit))
	for _, e := range entries {
		if len(out) == limit {
			break
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Record moves q to the front, dropping an earlier equal entry and anything
// past capacity, then persists the list.
func (m *Manager) Record(q Query) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]Query, 0, len(m.entries)+1)
	next = append(next, q)
	for _, e := range m.entries {
		if e == q {
			continue
		}
		next = append(next, e)
	}
	if len(next) > m.capacity {
		next = next[:m.capacity]
	}

	return m.commit(next)
}

// RemoveAt deletes the entry at the 0-based display position. An invalid
// index returns ErrIndexOutOfRange and leaves the history untouched.
func (m *Manager) RemoveAt(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIndex(index); err != nil {
		return err
	}

	next := make([]Query, 0, len(m.entries)-1)
	next = append(next, m.entries[:index]...)
	next = append(next, m.entries[index+1:]...)

	return m.commit(next)
}

// Get returns the entry at the 0-based display position.
func (m *Manager) Get(index int) (Query, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkIndex(index); err != nil {
		return Query{}, err
	}
	return m.entries[index], nil
}

// Clear removes every entry.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commit(nil)
}

// List returns a copy of the entries, most recent first.
func (m *Manager) List() []Query {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Query, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Capacity returns the maximum number of entries.
func (m *Manager) Capacity() int {
	return m.capacity
}

func (m *Manager) checkIndex(index int) error {
	if index < 0 || index >= len(m.entries) {
		return pnlerr.WithDetails(pnlerr.ErrIndexOutOfRange, map[string]string{
			"index": strconv.Itoa(index),
			"size":  strconv.Itoa(len(m.entries)),
		})
	}
	return nil
}

// commit persists next and only then adopts it, so a failed write keeps the old list.
func (m *Manager) commit(next []Query) error {
	if next == nil {
		next = []Query{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := m.store.Set(StorageKey, string(data)); err != nil {
		return pnlerr.WithCause(pnlerr.ErrStorage, err)
	}
	m.entries = next
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
