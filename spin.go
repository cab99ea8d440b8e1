package spinx

import (
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/llxisdsh/spinx/internal/opt"
)

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func trySpin(spins *int) bool {
	if runtime_canSpin(*spins) {
		*spins++
		runtime_doSpin()
		return true
	}
	return false
}

func delay(spins *int) {
	if trySpin(spins) {
		return
	}
	*spins = 0
	// time.Sleep with non-zero duration (≈Millisecond level) works
	// effectively as backoff under high concurrency.
	// The 500µs duration is derived from Facebook/folly's implementation:
	// https://github.com/facebook/folly/blob/main/folly/synchronization/detail/Sleeper.h
	time.Sleep(500 * time.Microsecond)
	//runtime.Gosched()
}

// ndelay busy-waits for roughly nsecs nanoseconds without yielding.
// One runtime_doSpin round is on the order of 100ns (30 PAUSE-class
// iterations), so the wait is approximate. Always short and bounded;
// usable from paths that must not sleep.
//
//go:nosplit
func ndelay(nsecs uintptr) {
	for n := (nsecs + 99) / 100; n > 0; n-- {
		runtime_doSpin()
	}
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()

// loadIntFast performs a non-atomic read, safe only for counters whose
// consumers tolerate stale or torn values. Falls back to an atomic load
// under the race detector.
//
//go:nosplit
func loadIntFast[T ~uint32 | ~uint64 | ~uintptr](addr *T) T {
	if opt.Race_ {
		if unsafe.Sizeof(T(0)) == 4 {
			return T(atomic.LoadUint32((*uint32)(unsafe.Pointer(addr))))
		} else {
			return T(atomic.LoadUint64((*uint64)(unsafe.Pointer(addr))))
		}
	}
	return *addr
}

// storeIntFast performs a non-atomic write, safe only for counters whose
// consumers tolerate lost updates. Falls back to an atomic store under the
// race detector.
//
//go:nosplit
func storeIntFast[T ~uint32 | ~uint64 | ~uintptr](addr *T, val T) {
	if opt.Race_ {
		if unsafe.Sizeof(T(0)) == 4 {
			atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), uint32(val))
		} else {
			atomic.StoreUint64((*uint64)(unsafe.Pointer(addr)), uint64(val))
		}
		return
	}
	*addr = val
}
