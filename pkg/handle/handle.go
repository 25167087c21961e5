// Package handle defines the 32-bit integer handle type shared by the
// bridge's handle table, operation kernel, and ABI surface, plus its
// reserved-handle layout.
package handle

// Handle names a host value for the duration of its reference lifetime
// inside the bridge. It is an opaque 32-bit integer; callers never
// dereference it directly.
type Handle uint32

// Variant selects which prefix of reserved, permanent handles a Table is
// seeded with at construction. The extended variant is the default used
// throughout this module; VariantMinimal is kept for callers that want
// the smaller emlite-minimal layout.
type Variant int

const (
	// VariantExtended seeds 0=null, 1=undefined, 2=false, 3=true, 4=global,
	// 5=console, 6=reserved-sentinel. It is the zero Variant.
	VariantExtended Variant = iota
	// VariantMinimal seeds only 0=null, 1=undefined, 2=false, 3=true, 4=global.
	VariantMinimal
)

// ReservedMax returns R, the highest reserved handle for the variant.
// dec_ref and reset both treat handles <= R as permanent.
func (v Variant) ReservedMax() Handle {
	switch v {
	case VariantExtended:
		return 6
	default:
		return 4
	}
}

// Well-known handle values common to both variants. They are exported so
// host-side Go code that embeds the bridge can refer to them without
// magic numbers.
const (
	Null      Handle = 0
	Undefined Handle = 1
	False     Handle = 2
	True      Handle = 3
	Global    Handle = 4
	// Console and ReservedSentinel only exist under VariantExtended; under
	// VariantMinimal nothing is seeded at 5 or 6, and the allocation counter
	// starts at 5, so those handles go to ordinary values (see internal/table).
	Console         Handle = 5
	ReservedSentinel Handle = 6
)
