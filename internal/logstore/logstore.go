// Package logstore holds the ordered health log and mirrors it to a key/value
// backend. The whole sequence is written on every mutation.
package logstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"health_tracker/internal/entry"
)

// DefaultKey is the storage key the log is kept under.
const DefaultKey = "logs"

// ErrIndex is matched by every *IndexError.
var ErrIndex = errors.New("index out of range")

// IndexError reports an index that does not address a stored entry.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// Backend is the key/value storage the log is persisted to.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type Store struct {
	backend Backend
	key     string
	logger  *slog.Logger
	entries []entry.Entry
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty Store. Call Load to hydrate it from the backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key the log is persisted under.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory log with the stored one. Missing or malformed
// data yields an empty log; only backend failures are returned.
func (s *Store) Load() error {
	data, ok, err := s.backend.Get(s.key)
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	if !ok || len(data) == 0 {
		s.entries = nil
		return nil
	}

	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding unreadable logs", "key", s.key, "error", err)
		s.entries = nil
		return nil
	}
	s.entries = entries
	s.logger.Debug("logs loaded", "key", s.key, "count", len(entries))
	return nil
}

// Save writes the full log to the backend.
func (s *Store) Save() error {
	return s.write(s.entries)
}

func (s *Store) write(entries []entry.Entry) error {
	if entries == nil {
		entries = []entry.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode logs: %w", err)
	}
	if err := s.backend.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to save logs: %w", err)
	}
	return nil
}

// commit persists next and adopts it only if the write succeeded.
func (s *Store) commit(op string, next []entry.Entry) error {
	if err := s.write(next); err != nil {
		return err
	}
	s.entries = next
	s.logger.Debug("logs saved", "op", op, "count", len(next))
	return nil
}

func (s *Store) checkIndex(op string, i int) error {
	if i < 0 || i >= len(s.entries) {
		return &IndexError{Op: op, Index: i, Len: len(s.entries)}
	}
	return nil
}

func (s *Store) Append(e entry.Entry) error {
	next := make([]entry.Entry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	return s.commit("append", append(next, e))
}

// ReplaceAt overwrites the entry at i, keeping its position.
func (s *Store) ReplaceAt(i int, e entry.Entry) error {
	if err := s.checkIndex("replace", i); err != nil {
		return err
	}
	next := s.All()
	next[i] = e
	return s.commit("replace", next)
}

// DeleteAt removes the entry at i; later entries shift down by one.
func (s *Store) DeleteAt(i int) error {
	if err := s.checkIndex("delete", i); err != nil {
		return err
	}
	next := make([]entry.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	return s.commit("delete", next)
}

// Clear removes the log from the backend and empties the store.
func (s *Store) Clear() error {
	if err := s.backend.Delete(s.key); err != nil {
		return fmt.Errorf("failed to clear logs: %w", err)
	}
	s.entries = nil
	s.logger.Debug("logs cleared", "key", s.key)
	return nil
}

func (s *Store) At(i int) (entry.Entry, error) {
	if err := s.checkIndex("get", i); err != nil {
		return entry.Entry{}, err
	}
	return s.entries[i], nil
}

// All returns a copy of the log in order.
func (s *Store) All() []entry.Entry {
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}
