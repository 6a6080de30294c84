package cache

import (
	"sync"
)

// ProcessedSet is an in-memory set of call ids already handed to the
// notifier. Its lifetime is the lifetime of the process.
type ProcessedSet struct {
	mu    sync.RWMutex
	items map[string]struct{}
}

// NewProcessedSet creates an empty set
func NewProcessedSet() *ProcessedSet {
	return &ProcessedSet{
		items: make(map[string]struct{}),
	}
}

// CheckAndMark inserts id and reports whether it was absent. Check and
// insert happen under one lock, so concurrent callers with the same id
// see exactly one true.
func (ps *ProcessedSet) CheckAndMark(id string) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.items[id]; exists {
		return false
	}
	ps.items[id] = struct{}{}
	return true
}

// Contains reports whether id was already marked
func (ps *ProcessedSet) Contains(id string) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	_, exists := ps.items[id]
	return exists
}

// Unmark removes id so a later delivery is processed again
func (ps *ProcessedSet) Unmark(id string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	delete(ps.items, id)
}

// Len returns the number of marked ids
func (ps *ProcessedSet) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.items)
}
