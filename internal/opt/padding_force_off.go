//go:build spinx_disable_padding

package opt

// CounterStripe_ is a counter slot padded out to its own cache line to
// prevent false sharing between neighboring slots.
// Padding is force-disabled via the spinx_disable_padding build tag.
// Use: go build -tags=spinx_disable_padding
type CounterStripe_ struct {
	C uintptr // Counter value
}
