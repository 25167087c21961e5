package kernel

import (
	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/internal/logctx"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// Get implements indexed access: host_get(valueOf(obj), valueOf(key)),
// registering the result. Unknown/non-indexable targets yield undefined.
func (k *Kernel) Get(obj, key handle.Handle) handle.Handle {
	target := k.Table.GetOr(obj)
	idx, ok := target.(hostval.Indexable)
	if !ok {
		return k.Table.Add(hostval.Undefined)
	}
	v, _ := idx.Get(k.Table.GetOr(key))
	return k.Table.Add(v)
}

// Set assigns valueOf(obj)[valueOf(key)] = valueOf(val). A target that
// cannot be indexed is silently ignored rather than raising, since there
// is no guest-observable exception channel for it besides throw().
func (k *Kernel) Set(obj, key, val handle.Handle) {
	target := k.Table.GetOr(obj)
	if idx, ok := target.(hostval.Indexable); ok {
		idx.Set(k.Table.GetOr(key), k.Table.GetOr(val))
	}
}

// Has reports membership, swallowing any failure into false rather than
// raising.
func (k *Kernel) Has(obj, key handle.Handle) (result bool) {
	defer func() {
		if recover() != nil {
			result = false
		}
	}()
	target := k.Table.GetOr(obj)
	idx, ok := target.(hostval.Indexable)
	if !ok {
		return false
	}
	return idx.Has(k.Table.GetOr(key))
}

// Push appends the raw handle integer v — not valueOf(v) — to the array
// named by arr. This asymmetry with Set, which stores valueOf(val), is
// intentional and preserved; see DESIGN.md. Errors are swallowed.
func (k *Kernel) Push(arr, v handle.Handle) {
	defer func() { recover() }()
	target := k.Table.GetOr(arr)
	a, ok := target.(*hostval.Array)
	if !ok {
		return
	}
	a.Push(hostval.Number(float64(uint32(v))))
	logctx.Debug("push", "array", arr, "value", v)
}

// ObjHasOwnProp is an own-property check by a name decoded from guest
// bytes, bypassing valueOf entirely.
func (k *Kernel) ObjHasOwnProp(obj handle.Handle, name string) bool {
	switch o := k.Table.GetOr(obj).(type) {
	case *hostval.Object:
		return o.HasOwn(name)
	case *hostval.ErrorValue:
		return o.Has(hostval.String(name))
	default:
		return false
	}
}
