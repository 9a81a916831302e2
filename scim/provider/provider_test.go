package provider

import "github.com/xraph/scimcore/internal/metrics"

var (
	_ Provider = (*StandardProvider)(nil)
)

// compile-time check that metrics.Operation values line up with the
// provider calls that observe them.
var _ = []metrics.Operation{
	metrics.OpCreate, metrics.OpGet, metrics.OpUpdate,
	metrics.OpDelete, metrics.OpPatch, metrics.OpList,
}
