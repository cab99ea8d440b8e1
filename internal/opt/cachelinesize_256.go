//go:build spinx_cachelinesize_256

package opt

// CacheLineSize_ is forced to 256 bytes via the spinx_cachelinesize_256 tag.
const CacheLineSize_ = 256
