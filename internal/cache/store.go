package cache

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/rohmanhakim/termdeck/pkg/failure"
	"github.com/rohmanhakim/termdeck/pkg/fileutil"
	"github.com/rohmanhakim/termdeck/pkg/timeutil"
)

/*
Responsibilities

- Hold the term -> raw definition mapping in memory
- Persist the mapping to a single human-readable JSON file
- Coalesce disk writes behind a dirty flag and a flush cadence

Persistence Semantics

- The in-memory map is always a superset of the on-disk map between flushes
- A flush makes the two equal
- Entries are never removed or expired
- Definitions are stored as source markdown, never as rendered markup

The store is exclusively owned by a single fetcher instance for its
lifetime. Concurrent stores pointed at the same file would race on Flush
(last writer wins) and are not supported.
*/

type Store struct {
	path      string
	entries   map[string]string
	dirty     bool
	lastFlush time.Time
	clock     timeutil.Clock
}

func NewStore(path string, clock timeutil.Clock) *Store {
	return &Store{
		path:    path,
		entries: map[string]string{},
		clock:   clock,
	}
}

// Load reads the backing file into memory. An absent file is not an error
// and leaves the store empty; a present but unparseable file is fatal,
// because silently starting over would mask corruption of prior runs.
// Load also records the current time as the last-flush timestamp.
func (s *Store) Load() failure.ClassifiedError {
	s.lastFlush = s.clock.Now()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.entries = map[string]string{}
			return nil
		}
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseReadFailure,
			Path:    s.path,
		}
	}

	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseParseFailure,
			Path:    s.path,
		}
	}

	s.entries = entries
	return nil
}

// Get is a pure lookup with no side effect.
func (s *Store) Get(term string) (string, bool) {
	definition, ok := s.entries[term]
	return definition, ok
}

// Put inserts or overwrites the entry and marks the store dirty.
// An unchanged value still marks dirty; the extra flush is cheaper
// than equality checks on every insert.
func (s *Store) Put(term string, definition string) {
	s.entries[term] = definition
	s.dirty = true
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Flush serializes the whole mapping to the backing file if the store is
// dirty, through a temp-file rename so prior content survives a failed
// write. A clean store performs no I/O at all.
func (s *Store) Flush() failure.ClassifiedError {
	if !s.dirty {
		return nil
	}

	payload, err := marshalEntries(s.entries)
	if err != nil {
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseEncodeFailure,
			Path:    s.path,
		}
	}

	if err := fileutil.WriteFileAtomic(s.path, payload, 0644); err != nil {
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseWriteFailure,
			Path:    s.path,
		}
	}

	s.dirty = false
	s.lastFlush = s.clock.Now()
	return nil
}

// MaybeFlush flushes only when the store is dirty and at least interval
// has elapsed since the last successful flush. Used to amortize disk
// writes during a long run without holding everything until the end.
func (s *Store) MaybeFlush(interval time.Duration) failure.ClassifiedError {
	if !s.dirty {
		return nil
	}
	if s.clock.Now().Sub(s.lastFlush) < interval {
		return nil
	}
	return s.Flush()
}

// marshalEntries encodes the mapping as indented UTF-8 JSON without HTML
// escaping, matching the cache files written by earlier versions so they
// remain re-loadable and diffable across runs.
func marshalEntries(entries map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
