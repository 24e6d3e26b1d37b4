package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mrz1836/pnlink/internal/fileutil"
)

// storeFilePermissions is the permission mode for the store file.
const storeFilePermissions = 0o600

var _ Store = (*FileStore)(nil)

// FileStore keeps the whole key space as one JSON object on disk.
// Every mutation rewrites the file atomically.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
}

// OpenFile opens the store at path. A missing file yields an empty store.
// A file that is not a JSON object of strings is moved aside and the store
// starts empty; in that case the returned error wraps ErrCorruptStore and the
// returned store is still usable.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, entries: make(map[string]string)}

	// #nosec G304 -- store path comes from validated config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading storage file: %w", err)
	}

	if len(data) == 0 {
		return s, nil
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		moved, moveErr := fileutil.MoveAside(path)
		if moveErr != nil {
			return s, fmt.Errorf("%w: %w (also failed to move file: %w)", ErrCorruptStore, err, moveErr)
		}
		return s, fmt.Errorf("%w: %w (moved to %s)", ErrCorruptStore, err, moved)
	}

	if entries != nil {
		s.entries = entries
	}
	return s, nil
}

// Path returns the store file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores value under key and flushes the file. On a failed write the
// in-memory entry is restored so memory and disk stay in step.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[key]
	s.entries[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and flushes the file.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[key]
	if !had {
		return nil
	}
	delete(s.entries, key)
	if err := s.flush(); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

// Close is a no-op; every mutation is already on disk.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling storage: %w", err)
	}
	if err := fileutil.WriteAtomic(s.path, data, storeFilePermissions); err != nil {
		return fmt.Errorf("writing storage file: %w", err)
	}
	return nil
}
