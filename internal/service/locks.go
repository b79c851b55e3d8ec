package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// EntityLocker serializes mutations per entity identifier. Structural
// mutations (child creation, reassignment, cascade deletes) lock the parent id
// so two concurrent writers cannot interleave on the same subtree. A single
// locker instance is shared by all mutating services.
type EntityLocker struct {
	mutexes sync.Map
}

// NewEntityLocker creates a shared entity locker.
func NewEntityLocker() *EntityLocker {
	return &EntityLocker{}
}

// Get returns the mutex guarding a specific entity id.
func (l *EntityLocker) Get(id uuid.UUID) *sync.Mutex {
	value, _ := l.mutexes.LoadOrStore(id.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// LockOrdered locks two entity mutexes in a stable global order so callers
// holding both (e.g. category reassignment) cannot deadlock each other.
// The returned function unlocks both.
func (l *EntityLocker) LockOrdered(a, b uuid.UUID) func() {
	if a == b {
		mu := l.Get(a)
		mu.Lock()
		return mu.Unlock
	}
	ids := []uuid.UUID{a, b}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	first, second := l.Get(ids[0]), l.Get(ids[1])
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
