//go:build race

package opt

// Race_ reports whether the race detector is enabled for this build.
// Code paths that rely on deliberately non-atomic accesses must fall back
// to atomics when it is set.
const Race_ = true
