//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !spinx_disable_padding && !spinx_enable_padding

package opt

import (
	"unsafe"
)

// CounterStripe_ is a counter slot padded out to its own cache line to
// prevent false sharing between neighboring slots.
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type CounterStripe_ struct {
	C uintptr // Counter value
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		C uintptr
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
