// Package store persists favorites and playback history in an embedded
// BadgerDB key-value store.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/litescript/ls-globeradio/internal/station"
)

const (
	favoritesKey = "favorites"
	historyKey   = "history"

	// MaxHistory caps the history log; the oldest entry is evicted first.
	MaxHistory = 50
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store is closed")

// Store keeps an in-memory mirror of the favorite set and history log,
// writing through to Badger on every mutation. All methods are safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	db        *badger.DB
	favorites map[string]struct{}
	history   []station.Record // most-recent-first
	closed    bool
}

// Open opens (or creates) the store in dir and loads both persisted keys.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Store{
		db:        db,
		favorites: make(map[string]struct{}),
	}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) load() error {
	var favKeys []string
	err := s.db.View(func(txn *badger.Txn) error {
		if err := readJSON(txn, favoritesKey, &favKeys); err != nil {
			return err
		}
		return readJSON(txn, historyKey, &s.history)
	})
	if err != nil {
		return err
	}
	for _, k := range favKeys {
		s.favorites[k] = struct{}{}
	}
	return nil
}

func readJSON(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, dest); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	})
}

func (s *Store) writeJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ToggleFavorite flips membership for a station key and persists the set.
// Returns the new membership state.
func (s *Store) ToggleFavorite(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}

	_, fav := s.favorites[key]
	if fav {
		delete(s.favorites, key)
	} else {
		s.favorites[key] = struct{}{}
	}

	if err := s.writeJSON(favoritesKey, s.favoriteKeysLocked()); err != nil {
		// Roll the mirror back so memory and disk stay consistent.
		if fav {
			s.favorites[key] = struct{}{}
		} else {
			delete(s.favorites, key)
		}
		return fav, err
	}
	return !fav, nil
}

// IsFavorite reports membership for a station key.
func (s *Store) IsFavorite(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[key]
	return ok
}

// Favorites returns all favorite station keys in unspecified order.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteKeysLocked()
}

func (s *Store) favoriteKeysLocked() []string {
	keys := make([]string, 0, len(s.favorites))
	for k := range s.favorites {
		keys = append(keys, k)
	}
	return keys
}

// PushHistory records a played station at the front of the history log.
// Re-adding an existing key moves its entry to the front instead of
// duplicating; the log is capped at MaxHistory with oldest-first eviction.
// The log is persisted before the mirror is updated, so a failed write
// leaves memory unchanged.
func (s *Store) PushHistory(rec station.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next := make([]station.Record, 0, len(s.history)+1)
	next = append(next, rec)
	for _, h := range s.history {
		if h.Key() == rec.Key() {
			continue
		}
		next = append(next, h)
	}
	if len(next) > MaxHistory {
		next = next[:MaxHistory]
	}

	if err := s.writeJSON(historyKey, next); err != nil {
		return err
	}
	s.history = next
	return nil
}

// History returns a copy of the log, most-recent-first.
func (s *Store) History() []station.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]station.Record, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryAt returns the entry at index i (0 = most recent).
func (s *Store) HistoryAt(i int) (station.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.history) {
		return station.Record{}, false
	}
	return s.history[i], true
}

// HistoryLen returns the number of history entries.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}
