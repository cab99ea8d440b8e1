//go:build spinx_enable_padding

package opt

import (
	"unsafe"
)

// CounterStripe_ is a counter slot padded out to its own cache line to
// prevent false sharing between neighboring slots.
// Padding is force-enabled via the spinx_enable_padding build tag.
// Use: go build -tags=spinx_enable_padding
type CounterStripe_ struct {
	C uintptr // Counter value
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		C uintptr
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
