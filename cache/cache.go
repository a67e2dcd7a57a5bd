// Package cache holds computed results for the lifetime of one workspace session.
//
// Entries are never invalidated: no TTL, no eviction, no file watching. A
// result computed once for a key is returned for every later request with the
// same key until the Store is discarded. Staleness is bounded by the session,
// not by the cache.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// Store is a session-scoped key-value store. Keys are canonical strings built
// with Key; they are digested with xxhash for lookup and the full string is
// kept alongside the value to rule out digest collisions.
type Store struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   string
	value any
}

// Stats reports store usage.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[uint64]entry)}
}

// Key builds the canonical key for an operation and its serialized options.
// Parts are joined in the order given, so callers that pass the same values in
// a different order get a different key.
func Key(operation string, parts ...string) string {
	if len(parts) == 0 {
		return operation
	}
	return operation + "_" + strings.Join(parts, ",")
}

// Get returns the cached value for key.
func (s *Store) Get(key string) (any, bool) {
	sum := xxhash.Sum64String(key)

	s.mu.RLock()
	e, ok := s.entries[sum]
	s.mu.RUnlock()

	if !ok || e.key != key {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. A digest collision with a different key leaves
// the existing entry in place.
func (s *Store) Set(key string, value any) {
	sum := xxhash.Sum64String(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[sum]; ok && e.key != key {
		return
	}
	s.entries[sum] = entry{key: key, value: value}
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns a snapshot of entry count and hit/miss counters.
func (s *Store) Stats() Stats {
	return Stats{
		Entries: s.Len(),
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
	}
}

// Load returns the cached value for key, computing it with fn on a miss.
// Concurrent misses for the same key share one call to fn. When fn reports
// cacheable=false the value is returned but not stored, so failures are
// retried on the next request.
func Load[T any](s *Store, key string, fn func() (value T, cacheable bool)) T {
	if v, ok := s.Get(key); ok {
		s.hits.Add(1)
		return v.(T)
	}

	sum := xxhash.Sum64String(key)
	v, _, _ := s.group.Do(strconv.FormatUint(sum, 16)+":"+key, func() (any, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		s.misses.Add(1)
		value, cacheable := fn()
		if cacheable {
			s.Set(key, value)
		}
		return value, nil
	})
	return v.(T)
}
