package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// Backend durably stores the whole history as one document.
type Backend interface {
	Name() string
	Load(ctx context.Context) (map[string]matches.HistoryEntry, error)
	Save(ctx context.Context, entries map[string]matches.HistoryEntry) error
	Close() error
}

// ErrNotLoaded is returned by Persist until the backend contents have been loaded once.
// Saving before that would replace durable history with a partial view.
var ErrNotLoaded = errors.New("history not loaded")

// StoreError wraps a backend failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store keeps match history in memory and flushes it to a Backend on Persist.
// Entries are keyed by match identity, so there is never more than one per match.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	entries map[string]matches.HistoryEntry
	version uint64
	saved   uint64
	loaded  bool
}

// NewStore constructs an empty store over backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		entries: make(map[string]matches.HistoryEntry),
	}
}

// Load reads the backend contents into memory. Entries upserted before a
// successful load are kept when they were seen more recently than the stored copy.
func (s *Store) Load(ctx context.Context) error {
	loaded, err := s.backend.Load(ctx)
	if err != nil {
		return &StoreError{Op: "load", Err: err}
	}

	entries := make(map[string]matches.HistoryEntry, len(loaded))
	for id, e := range loaded {
		if id == "" {
			continue
		}
		e.Record.ID = id
		entries[id] = e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pending := len(s.entries) > 0
	for id, e := range s.entries {
		if stored, ok := entries[id]; ok && stored.LastSeenAt.After(e.LastSeenAt) {
			continue
		}
		entries[id] = e
	}
	s.entries = entries
	s.loaded = true
	s.version++
	if !pending {
		s.saved = s.version
	}
	return nil
}

// Loaded reports whether a Load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Upsert stores entry under its record id, replacing any previous entry.
func (s *Store) Upsert(entry matches.HistoryEntry) {
	id := entry.Record.ID
	if id == "" {
		return
	}
	entry.Record = entry.Record.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry
	s.version++
}

// Prune drops entries last seen more than retentionDays ago and returns how many were removed.
func (s *Store) Prune(now time.Time, retentionDays int) int {
	retention := matches.RetentionFromDays(retentionDays)
	if retention <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.Expired(now, retention) {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		s.version++
	}
	return removed
}

// Persist flushes the current contents when they changed since the last flush.
// On failure the store stays dirty and the next Persist retries. Nothing is
// written before a successful Load.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.RLock()
	if !s.loaded {
		dirty := s.version != s.saved
		s.mu.RUnlock()
		if !dirty {
			return nil
		}
		return &StoreError{Op: "persist", Err: ErrNotLoaded}
	}
	if s.version == s.saved {
		s.mu.RUnlock()
		return nil
	}
	version := s.version
	snapshot := copyEntries(s.entries)
	s.mu.RUnlock()

	if err := s.backend.Save(ctx, snapshot); err != nil {
		return &StoreError{Op: "persist", Err: err}
	}

	s.mu.Lock()
	if version > s.saved {
		s.saved = version
	}
	s.mu.Unlock()
	return nil
}

// Dirty reports whether there are changes not yet persisted.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version != s.saved
}

// Entries returns a copy of the current contents.
func (s *Store) Entries() map[string]matches.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEntries(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// BackendName identifies the backend for logs and metrics.
func (s *Store) BackendName() string {
	return s.backend.Name()
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func copyEntries(src map[string]matches.HistoryEntry) map[string]matches.HistoryEntry {
	out := make(map[string]matches.HistoryEntry, len(src))
	for id, e := range src {
		e.Record = e.Record.Clone()
		out[id] = e
	}
	return out
}
