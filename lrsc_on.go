//go:build !spinx_nolrscdelay

package spinx

import (
	"github.com/llxisdsh/spinx/internal/opt"
)

// LRSCBackoff throttles retry loops that contend on a single memory word,
// in the spirit of the LR/SC (load-reserved/store-conditional) delay tables
// some many-core systems use to keep competing cores from invalidating each
// other's reservations in lockstep.
//
// A fixed table of per-address-bucket counters tracks roughly how many
// attempts are in flight for each address. Enter bumps the bucket before an
// attempt and injects a short bounded delay once the estimate passes a
// threshold; Leave decrements it afterwards. The counters are deliberately
// best-effort: they are read and written without atomics (except under the
// race detector), and unrelated addresses hashing to the same bucket add
// noise. That is fine: the table is a heuristic signal, not a refcount.
// Enter and Leave never block; the injected delay is always sub-microsecond.
//
// The zero value is ready to use. The table should be long-lived and passed
// by reference to every code path that brackets its retries with it; slots
// are cache-line padded so unrelated buckets do not false-share.
//
// Building with the spinx_nolrscdelay tag replaces the whole type with a
// no-op variant of the same API, so callers can bracket their retry loops
// unconditionally.
type LRSCBackoff struct {
	_     noCopy
	slots [lrscAddrNum]opt.CounterStripe_
}

// NewLRSCBackoff returns a table with all buckets idle.
func NewLRSCBackoff() *LRSCBackoff {
	return &LRSCBackoff{}
}

//go:nosplit
func (b *LRSCBackoff) slot(addr uintptr) *opt.CounterStripe_ {
	return &b.slots[hashWang64(uint64(addr))%lrscAddrNum]
}

// Enter records an attempt in flight for addr. Once the pre-increment
// estimate for addr's bucket reaches lrscNeedDelay, it busy-waits for a
// short, bounded period (a rotating multiple of 100ns derived from the
// estimate) so concurrent retriers spread out instead of failing in
// lockstep.
func (b *LRSCBackoff) Enter(addr uintptr) {
	s := b.slot(addr)
	est := loadIntFast(&s.C)
	storeIntFast(&s.C, est+1)
	if est >= lrscNeedDelay {
		ndelay((est%5 + 1) * 100)
	}
}

// Leave retires an attempt for addr. If the bucket already read zero before
// the decrement (an unmatched Leave, or collision noise from racing
// callers), the counter is reset to zero instead of wrapping, so the bucket
// can never get stuck reading as enormous and permanently trigger delays.
func (b *LRSCBackoff) Leave(addr uintptr) {
	s := b.slot(addr)
	n := loadIntFast(&s.C)
	storeIntFast(&s.C, n-1)
	if n == 0 {
		storeIntFast(&s.C, 0)
	}
}
