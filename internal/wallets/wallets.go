// Package wallets manages nicknamed wallet addresses saved for quick reuse.
package wallets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/mrz1836/pnlink/internal/kvstore"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// StorageKey is the store key holding the JSON-encoded records.
const StorageKey = "savedWallets"

// MaxSuggestionDistance is the largest edit distance Suggest will accept.
const MaxSuggestionDistance = 3

// SavedWallet is a nicknamed address. ID is assigned at creation and never changes.
type SavedWallet struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Address  string `json:"address"`
}

// Logger receives decode diagnostics.
type Logger interface {
	Debug(format string, args ...any)
}

// Manager owns the saved wallet records in insertion order and persists the
// full collection after every mutation.
type Manager struct {
	mu      sync.Mutex
	store   kvstore.Store
	now     func() time.Time
	lastID  int64
	records []SavedWallet
	log     Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used for ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
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

// New creates a Manager backed by store and loads any persisted records.
func New(store kvstore.Store, opts ...Option) *Manager {
	m := &Manager{store: store, now: time.Now, log: nopLogger{}}
	for _, opt := range opts {
		opt(m)
	}
	m.Load()
	return m
}

// Load replaces the in-memory records with the persisted ones. Missing or
// malformed data yields an empty collection; the problem is only logged.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil

	raw, ok := m.store.Get(StorageKey)
	if !ok {
		return
	}

	var records []SavedWallet
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		m.log.Debug("%v", pnlerr.WithCause(pnlerr.ErrStorageDecode, fmt.Errorf("%s: %w", StorageKey, err)))
		return
	}
	m.records = records
}

// Save trims both fields, rejects empty ones, and appends a new record.
func (m *Manager) Save(nickname, address string) (SavedWallet, error) {
	nickname, address, err := normalize(nickname, address)
	if err != nil {
		return SavedWallet{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w := SavedWallet{ID: m.nextID(), Nickname: nickname, Address: address}

	next := make([]SavedWallet, 0, len(m.records)+1)
	next = append(next, m.records...)
	next = append(next, w)

	if err := m.commit(next); err != nil {
		return SavedWallet{}, err
	}
	return w, nil
}

// Update replaces the nickname and address of the record with id, keeping
// its id and position. It reports false, with no error, when id is unknown.
func (m *Manager) Update(id, nickname, address string) (bool, error) {
	nickname, address, err := normalize(nickname, address)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]SavedWallet, len(m.records))
	copy(next, m.records)
	next[idx].Nickname = nickname
	next[idx].Address = address

	if err := m.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the record with id. It reports false when id is unknown.
func (m *Manager) Delete(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]SavedWallet, 0, len(m.records)-1)
	next = append(next, m.records[:idx]...)
	next = append(next, m.records[idx+1:]...)

	if err := m.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// Select returns the address saved under id.
func (m *Manager) Select(id string) (string, bool) {
	w, ok := m.Get(id)
	return w.Address, ok
}

// Get returns the record with id.
func (m *Manager) Get(id string) (SavedWallet, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return SavedWallet{}, false
	}
	return m.records[idx], true
}

// Find resolves ref as an id first, then as a case-insensitive nickname.
// When several records share a nickname the earliest wins.
func (m *Manager) Find(ref string) (SavedWallet, bool) {
	ref = strings.TrimSpace(ref)

	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := m.indexOf(ref); idx >= 0 {
		return m.records[idx], true
	}
	for _, w := range m.records {
		if strings.EqualFold(w.Nickname, ref) {
			return w, true
		}
	}
	return SavedWallet{}, false
}

// Suggest returns the nickname closest to ref, or "" if none is within
// MaxSuggestionDistance.
func (m *Manager) Suggest(ref string) string {
	ref = strings.ToLower(strings.TrimSpace(ref))

	m.mu.Lock()
	defer m.mu.Unlock()

	best := ""
	bestDist := MaxSuggestionDistance + 1
	for _, w := range m.records {
		dist := levenshtein.ComputeDistance(ref, strings.ToLower(w.Nickname))
		if dist < bestDist {
			bestDist = dist
			best = w.Nickname
		}
	}
	return best
}

// List returns a copy of the records in insertion order.
func (m *Manager) List() []SavedWallet {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SavedWallet, len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of records.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *Manager) indexOf(id string) int {
	for i, w := range m.records {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// nextID returns the current Unix time in milliseconds as a decimal string,
// bumped past the last issued id and any existing numeric id so that ids are
// unique even when several are created within one millisecond.
func (m *Manager) nextID() string {
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	for m.idTaken(id) {
		id++
	}
	m.lastID = id
	return strconv.FormatInt(id, 10)
}

func (m *Manager) idTaken(id int64) bool {
	return m.indexOf(strconv.FormatInt(id, 10)) >= 0
}

func (m *Manager) commit(next []SavedWallet) error {
	if next == nil {
		next = []SavedWallet{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding saved wallets: %w", err)
	}
	if err := m.store.Set(StorageKey, string(data)); err != nil {
		return pnlerr.WithCause(pnlerr.ErrStorage, err)
	}
	m.records = next
	return nil
}

func normalize(nickname, address string) (string, string, error) {
	nickname = strings.TrimSpace(nickname)
	address = strings.TrimSpace(address)

	details := map[string]string{}
	if nickname == "" {
		details["nickname"] = "missing"
	}
	if address == "" {
		details["address"] = "missing"
	}
	if len(details) > 0 {
		return "", "", pnlerr.WithDetails(
			pnlerr.WithMessage(pnlerr.ErrValidation, "both nickname and address are required"),
			details,
		)
	}
	return nickname, address, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
