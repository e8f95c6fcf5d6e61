// Package infracache is the hierarchy half of THE CORE's materialized
// cache (C5): one generic, lock-guarded store per entity type, each
// keeping by-composite-key and by-id maps, a sorted-by-name list, a
// content-hash version, and a live count, grounded on
// original_source/crates/customer/src/cache/infra.rs's InfraDB. The
// count stays a plain field rather than an exported metric — the
// teacher's stack wires otel spans, not a gauge library, for this kind of
// internal bookkeeping.
package infracache

import (
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

func emptyVersion() string {
	sum := sha512.Sum512(nil)
	return hex.EncodeToString(sum[:])
}

// store is a generic single-entity-type cache. Zero value is not usable;
// construct with newStore.
type store[T any] struct {
	mu      sync.RWMutex
	byKey   map[string]T
	byID    map[string]T
	list    []T
	version string

	keyFn  func(T) string
	idFn   func(T) string
	nameFn func(T) string
}

func newStore[T any](keyFn, idFn, nameFn func(T) string) *store[T] {
	return &store[T]{
		byKey:   make(map[string]T),
		byID:    make(map[string]T),
		version: emptyVersion(),
		keyFn:   keyFn,
		idFn:    idFn,
		nameFn:  nameFn,
	}
}

// Load replaces the store's contents wholesale and recomputes derived
// state once, used by the startup full load and by reload-after-cascade.
func (s *store[T]) Load(rows []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey = make(map[string]T, len(rows))
	s.byID = make(map[string]T, len(rows))

	for _, r := range rows {
		s.byKey[s.keyFn(r)] = r
		s.byID[s.idFn(r)] = r
	}

	s.recomputeLocked()
}

// Insert upserts e into both indexes and recomputes derived state.
func (s *store[T]) Insert(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey[s.keyFn(e)] = e
	s.byID[s.idFn(e)] = e
	s.recomputeLocked()
}

// Update removes the entry addressed by oldKey/oldID and inserts newE.
func (s *store[T]) Update(newE T, oldKey, oldID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, oldKey)
	delete(s.byID, oldID)
	s.byKey[s.keyFn(newE)] = newE
	s.byID[s.idFn(newE)] = newE
	s.recomputeLocked()
}

// Remove deletes the entry addressed by key/id, if present.
func (s *store[T]) Remove(key, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, key)
	delete(s.byID, id)
	s.recomputeLocked()
}

// recomputeLocked rebuilds list/version from byID. Callers must hold mu.
func (s *store[T]) recomputeLocked() {
	list := make([]T, 0, len(s.byID))
	for _, v := range s.byID {
		list = append(list, v)
	}

	sort.Slice(list, func(i, j int) bool { return s.nameFn(list[i]) < s.nameFn(list[j]) })

	h := sha512.New()

	for _, v := range list {
		if buf, err := msgpack.Marshal(v); err == nil {
			h.Write(buf)
		}
	}

	s.version = hex.EncodeToString(h.Sum(nil))
	s.list = list
}

func (s *store[T]) ByKey(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]

	return v, ok
}

func (s *store[T]) ByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byID[id]

	return v, ok
}

// List returns a defensive copy of the sorted-by-name snapshot.
func (s *store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.list))
	copy(out, s.list)

	return out
}

func (s *store[T]) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

func (s *store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.list)
}
