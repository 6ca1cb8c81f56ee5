package internal

import (
	"maps"
	"slices"
	"sync"
)

type set[T comparable] map[T]struct{}

func newSet[T comparable](ts ...T) set[T] {
	s := set[T]{}
	for _, t := range ts {
		s[t] = struct{}{}
	}
	return s
}

func (s set[T]) has(t T) bool {
	_, ok := s[t]
	return ok
}

// syncset is a set safe for concurrent use. It tracks which slugs currently
// have a backfill running.
type syncset[T comparable] struct {
	mu sync.Mutex
	s  set[T]
}

// add returns false if t was already present.
func (ss *syncset[T]) add(t T) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.s == nil {
		ss.s = set[T]{}
	}
	if ss.s.has(t) {
		return false
	}
	ss.s[t] = struct{}{}
	return true
}

func (ss *syncset[T]) remove(t T) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.s, t)
}

func (ss *syncset[T]) has(t T) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.s.has(t)
}

// items returns a snapshot of the set's members in no particular order.
func (ss *syncset[T]) items() []T {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return slices.Collect(maps.Keys(ss.s))
}
