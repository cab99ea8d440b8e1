//go:build spinx_cachelinesize_32

package opt

// CacheLineSize_ is forced to 32 bytes via the spinx_cachelinesize_32 tag.
const CacheLineSize_ = 32
