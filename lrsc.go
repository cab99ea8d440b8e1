package spinx

import (
	"sync/atomic"
	"unsafe"
)

// This file holds the parts of the LRSC backoff table that are common to
// both build variants (lrsc_on.go, lrsc_off.go): tuning constants, the
// bucket hash, and the CAS-retry helpers built on Enter/Leave.

const (
	// lrscAddrNum is the number of hash buckets in the table.
	lrscAddrNum = 128
	// lrscNeedDelay is the in-flight estimate at which Enter starts
	// delaying.
	lrscNeedDelay = 64
)

// hashWang64 is Thomas Wang's 64-bit integer avalanche hash. A single-bit
// change in the input flips about half the output bits, which is what keeps
// neighboring addresses from piling into the same bucket.
//
//go:nosplit
func hashWang64(key uint64) uint64 {
	key = ^key + key<<21
	key ^= key >> 24
	key = key + key<<3 + key<<8
	key ^= key >> 14
	key = key + key<<2 + key<<4
	key ^= key >> 28
	key += key << 31
	return key
}

// UpdateUint32 applies f to v through a compare-and-swap retry loop,
// bracketing every attempt with Enter/Leave on v's address. It retries
// until the swap lands and returns the value stored.
func (b *LRSCBackoff) UpdateUint32(v *atomic.Uint32, f func(uint32) uint32) uint32 {
	addr := uintptr(unsafe.Pointer(v))
	for {
		b.Enter(addr)
		old := v.Load()
		next := f(old)
		ok := v.CompareAndSwap(old, next)
		b.Leave(addr)
		if ok {
			return next
		}
	}
}

// UpdateUint64 is the 64-bit counterpart of UpdateUint32.
func (b *LRSCBackoff) UpdateUint64(v *atomic.Uint64, f func(uint64) uint64) uint64 {
	addr := uintptr(unsafe.Pointer(v))
	for {
		b.Enter(addr)
		old := v.Load()
		next := f(old)
		ok := v.CompareAndSwap(old, next)
		b.Leave(addr)
		if ok {
			return next
		}
	}
}
