package spinx

import (
	"github.com/llxisdsh/pb"
)

// TicketLockGroup allows fair locking on arbitrary keys (string, int,
// struct, etc.). It dynamically manages a set of TicketLocks associated with
// values.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - FIFO per key: waiters on the same key are admitted in arrival order.
//   - Auto-Cleanup: Locks are automatically removed from memory when
//     unlocked and no one else is waiting.
//
// Usage:
//
//	var group TicketLockGroup[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
//
// Implementation Note:
// It uses reference counting to safely delete entries; the count is mutated
// inside ProcessEntry callbacks, which the map runs under its bucket lock.
type TicketLockGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *lockGroupEntry]
}

type lockGroupEntry struct {
	mu  TicketLock
	ref int32
}

// Lock acquires the lock for k, blocking until it is available.
func (g *TicketLockGroup[K]) Lock(k K) {
	e := g.retain(k)
	e.mu.Lock()
}

// TryLock attempts to acquire the lock for k without blocking and reports
// whether it succeeded. A failed attempt leaves no trace: the reservation
// taken while looking up the entry is dropped again.
func (g *TicketLockGroup[K]) TryLock(k K) bool {
	e := g.retain(k)
	if e.mu.TryLock() {
		return true
	}
	g.release(k)
	return false
}

// Unlock releases the lock for k. Unlocking a key that was never locked is
// a no-op.
func (g *TicketLockGroup[K]) Unlock(k K) {
	e, ok := g.m.Load(k)
	if !ok {
		return
	}
	e.mu.Unlock()
	g.release(k)
}

// retain returns k's entry, creating it if needed, with its refcount bumped.
func (g *TicketLockGroup[K]) retain(k K) *lockGroupEntry {
	var e *lockGroupEntry
	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *lockGroupEntry]) (*pb.EntryOf[K, *lockGroupEntry], *lockGroupEntry, bool) {
			if l != nil {
				e = l.Value
				e.ref++
				return l, e, true
			}
			e = &lockGroupEntry{ref: 1}
			return &pb.EntryOf[K, *lockGroupEntry]{Value: e}, e, false
		},
	)
	return e
}

// release drops one reference to k's entry and deletes it at zero.
func (g *TicketLockGroup[K]) release(k K) {
	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *lockGroupEntry]) (*pb.EntryOf[K, *lockGroupEntry], *lockGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			e := l.Value
			e.ref--
			if e.ref <= 0 {
				return nil, nil, false
			}
			return l, e, true
		},
	)
}
