// Package kvstore provides the persistent string key-value store that backs
// drafts, query history and saved wallets.
//
// Values are opaque strings; callers encode structured data as JSON before
// Set and decode after Get. There are no transactions and the last write wins.
package kvstore

import (
	"errors"
	"fmt"
	"strings"
)

// Store is a persistent key-value store of string values.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Close releases resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrUnknownBackend indicates Open was given a backend name it does not know.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrCorruptStore indicates the on-disk store could not be decoded and was reset.
	ErrCorruptStore = errors.New("storage file is corrupted")

	// ErrClosed indicates the store was used after Close.
	ErrClosed = errors.New("store is closed")
)

// Open opens the store for backend at path.
// A FileStore whose file was corrupt is returned together with ErrCorruptStore;
// it is usable and starts empty.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		s, err := OpenFile(path)
		if s == nil {
			return nil, err
		}
		return s, err
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
