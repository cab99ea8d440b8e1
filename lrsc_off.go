//go:build spinx_nolrscdelay

package spinx

// LRSCBackoff is compiled as a no-op under the spinx_nolrscdelay tag: the
// table carries no state and Enter/Leave reduce to nothing, so bracketed
// retry loops pay zero cost. See lrsc.go for the active variant's contract.
type LRSCBackoff struct {
	_ noCopy
}

// NewLRSCBackoff returns the no-op table.
func NewLRSCBackoff() *LRSCBackoff {
	return &LRSCBackoff{}
}

// Enter is a no-op in this build.
//
//go:nosplit
func (*LRSCBackoff) Enter(addr uintptr) {}

// Leave is a no-op in this build.
//
//go:nosplit
func (*LRSCBackoff) Leave(addr uintptr) {}
