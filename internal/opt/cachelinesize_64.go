//go:build spinx_cachelinesize_64

package opt

// CacheLineSize_ is forced to 64 bytes via the spinx_cachelinesize_64 tag.
const CacheLineSize_ = 64
