//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !spinx_disable_padding && !spinx_enable_padding

package opt

// CounterStripe_ is a counter slot padded out to its own cache line to
// prevent false sharing between neighboring slots.
// Padding is disabled by default for:
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
type CounterStripe_ struct {
	C uintptr // Counter value
}
