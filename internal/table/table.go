// Package table implements the handle table: a bidirectional,
// reference-counted, identity-interning map between host values and
// 32-bit handles, seeded with a fixed prefix of permanent reserved
// handles.
package table

import (
	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

type entry struct {
	value hostval.Value
	refs  uint64
}

// Table is the host-side handle table. It is not safe for concurrent use
// without external synchronisation; each module instance is expected to
// drive it from a single logical thread.
type Table struct {
	variant handle.Variant
	reserved map[handle.Handle]hostval.Value
	forward  map[handle.Handle]*entry
	reverse  map[any]handle.Handle
	next     handle.Handle
}

// New constructs a Table and seeds the reserved prefix in handle order.
// Handles 0..R are permanent: they are never removed by decRef or reset,
// and their refcount is not exposed.
func New(variant handle.Variant) *Table {
	t := &Table{
		variant:  variant,
		reserved: map[handle.Handle]hostval.Value{},
		forward:  map[handle.Handle]*entry{},
		reverse:  map[any]handle.Handle{},
	}
	t.seed()
	return t
}

func (t *Table) seed() {
	seedValues := []hostval.Value{
		hostval.Null,
		hostval.Undefined,
		hostval.Bool(false),
		hostval.Bool(true),
		newGlobalObject(),
	}
	if t.variant == handle.VariantExtended {
		seedValues = append(seedValues, newConsoleObject(), &hostval.Symbol{Description: "_EMLITE_RESERVED_"})
	}
	for _, v := range seedValues {
		h := t.next
		t.next++
		t.reserved[h] = v
		// Reserved entries are still discoverable by identity so that e.g.
		// Add(hostval.Null) after seeding interns back to handle 0 rather
		// than allocating a fresh duplicate.
		t.reverse[hostval.IdentityKey(v)] = h
	}
}

// ReservedMax returns R for this table's variant.
func (t *Table) ReservedMax() handle.Handle { return t.variant.ReservedMax() }

// Add interns value: if an equal (by host identity) value is already
// mapped, its refcount is incremented and the existing handle returned;
// otherwise a fresh handle is allocated.
func (t *Table) Add(value hostval.Value) handle.Handle {
	key := hostval.IdentityKey(value)
	if h, ok := t.reverse[key]; ok {
		if h <= t.ReservedMax() {
			return h
		}
		t.forward[h].refs++
		return h
	}
	h := t.next
	t.next++
	t.forward[h] = &entry{value: value, refs: 1}
	t.reverse[key] = h
	return h
}

// Get performs a constant-time forward lookup. Unknown handles yield the
// sentinel "absent" observable (host undefined) rather than an error, so
// a stale or forged handle never panics a caller.
func (t *Table) Get(h handle.Handle) (hostval.Value, bool) {
	if v, ok := t.reserved[h]; ok {
		return v, true
	}
	if e, ok := t.forward[h]; ok {
		return e.value, true
	}
	return hostval.Undefined, false
}

// GetOr returns the value at h, or hostval.Undefined if h is unknown —
// the convenience form most kernel operations want.
func (t *Table) GetOr(h handle.Handle) hostval.Value {
	v, _ := t.Get(h)
	return v
}

// IncRef increments the refcount of a live entry. It is a no-op on an
// unknown handle, and has no externally visible effect on reserved
// handles (they cannot be released regardless of refcount).
func (t *Table) IncRef(h handle.Handle) {
	if h <= t.ReservedMax() {
		return
	}
	if e, ok := t.forward[h]; ok {
		e.refs++
	}
}

// DecRef decrements the refcount of a live entry, removing it from both
// maps the instant refs reaches zero. No-op on reserved handles and on
// unknown handles.
func (t *Table) DecRef(h handle.Handle) bool {
	if h <= t.ReservedMax() {
		return false
	}
	e, ok := t.forward[h]
	if !ok {
		return false
	}
	e.refs--
	if e.refs == 0 {
		delete(t.forward, h)
		delete(t.reverse, hostval.IdentityKey(e.value))
	}
	return true
}

// Reset removes every entry with handle > R from both maps without
// touching reserved entries or the monotonic allocation counter.
func (t *Table) Reset() {
	for h, e := range t.forward {
		delete(t.reverse, hostval.IdentityKey(e.value))
		delete(t.forward, h)
	}
}

// Len reports the number of live non-reserved entries, used by
// diagnostics and tests.
func (t *Table) Len() int { return len(t.forward) }

// Each calls fn for every live entry (reserved and non-reserved) in
// ascending handle order, walking handles directly rather than relying
// on Go's unordered map iteration.
func (t *Table) Each(fn func(h handle.Handle, v hostval.Value, refs uint64, reserved bool)) {
	for h := handle.Handle(0); h < t.next; h++ {
		if v, ok := t.reserved[h]; ok {
			fn(h, v, 0, true)
			continue
		}
		if e, ok := t.forward[h]; ok {
			fn(h, e.value, e.refs, false)
		}
	}
}

func newGlobalObject() *hostval.Object {
	o := hostval.NewObject()
	o.Props["name"] = hostval.String("global")
	return o
}

func newConsoleObject() *hostval.Object {
	return hostval.NewObject()
}
