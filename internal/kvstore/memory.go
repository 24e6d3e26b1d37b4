package kvstore

import "sync"

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = NopStore{}
)

// MemoryStore keeps entries in memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// Remove deletes key.
func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len returns the number of entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// NopStore stands in when no storage is available. Reads report absent and
// writes succeed without effect, so callers fall back to empty state.
type NopStore struct{}

// Get always reports absent.
func (NopStore) Get(string) (string, bool) { return "", false }

// Set discards the value.
func (NopStore) Set(string, string) error { return nil }

// Remove does nothing.
func (NopStore) Remove(string) error { return nil }

// Close does nothing.
func (NopStore) Close() error { return nil }
