package spinx

import (
	"sync"
	"testing"
)

func TestTicketLockGroupBasic(t *testing.T) {
	var g TicketLockGroup[string]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	counter := 0
	for range n {
		go func() {
			defer wg.Done()
			g.Lock("k")
			counter++
			g.Unlock("k")
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestTicketLockGroupKeysIndependent(t *testing.T) {
	var g TicketLockGroup[int]
	g.Lock(1)
	// A different key must not be blocked by key 1's holder.
	if !g.TryLock(2) {
		t.Fatal("TryLock(2) blocked by holder of key 1")
	}
	g.Unlock(2)
	g.Unlock(1)
}

func TestTicketLockGroupTryLock(t *testing.T) {
	var g TicketLockGroup[string]
	if !g.TryLock("k") {
		t.Fatal("TryLock failed on an idle key")
	}
	if g.TryLock("k") {
		t.Fatal("TryLock succeeded on a held key")
	}
	g.Unlock("k")
	if !g.TryLock("k") {
		t.Fatal("TryLock failed after Unlock")
	}
	g.Unlock("k")
}

func TestTicketLockGroupCleanup(t *testing.T) {
	var g TicketLockGroup[string]
	g.Lock("k")
	g.Unlock("k")
	if _, ok := g.m.Load("k"); ok {
		t.Fatal("entry not removed after last Unlock")
	}

	// A failed TryLock must not leak the reservation it took while looking
	// up the entry.
	g.Lock("k2")
	if g.TryLock("k2") {
		t.Fatal("TryLock succeeded on a held key")
	}
	g.Unlock("k2")
	if _, ok := g.m.Load("k2"); ok {
		t.Fatal("entry leaked by failed TryLock")
	}
}

func TestTicketLockGroupUnlockUnknownKey(t *testing.T) {
	var g TicketLockGroup[string]
	g.Unlock("never-locked") // must not panic or create state
	if _, ok := g.m.Load("never-locked"); ok {
		t.Fatal("Unlock of unknown key created an entry")
	}
}
