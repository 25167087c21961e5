package kernel

import (
	"fmt"
	"math"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/internal/logctx"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// resolveArgv reads the handle table entry at argv (expected to be a host
// array whose elements are themselves handles) and resolves each element
// via valueOf.
func (k *Kernel) resolveArgv(argv handle.Handle) []hostval.Value {
	arr, ok := k.Table.GetOr(argv).(*hostval.Array)
	if !ok {
		return nil
	}
	out := make([]hostval.Value, len(arr.Elems))
	for i, el := range arr.Elems {
		h, ok := elementAsHandle(el)
		if !ok {
			out[i] = hostval.Undefined
			continue
		}
		out[i] = k.Table.GetOr(h)
	}
	return out
}

func elementAsHandle(v hostval.Value) (handle.Handle, bool) {
	n, ok := v.(hostval.Number)
	if !ok {
		return 0, false
	}
	f := float64(n)
	if f != math.Trunc(f) || f < 0 {
		return 0, false
	}
	return handle.Handle(uint32(f)), true
}

// FuncCall applies valueOf(func) to the resolved argv sequence with host
// undefined as the receiver. This asymmetry with ObjCall, which passes
// the target object as receiver, is intentional and preserved.
func (k *Kernel) FuncCall(fn, argv handle.Handle) handle.Handle {
	f, ok := k.Table.GetOr(fn).(*hostval.Function)
	if !ok {
		return k.Table.Add(k.normalizeThrown(fmt.Errorf("value is not a function")))
	}
	args := k.resolveArgv(argv)
	ret, err := f.Call(hostval.Undefined, args)
	if err != nil {
		return k.Table.Add(k.normalizeThrown(err))
	}
	return k.Table.Add(ret)
}

// ObjCall calls valueOf(obj)[name] with valueOf(obj) as the receiver.
func (k *Kernel) ObjCall(obj handle.Handle, name string, argv handle.Handle) handle.Handle {
	objVal := k.Table.GetOr(obj)
	var method hostval.Value = hostval.Undefined
	if idx, ok := objVal.(hostval.Indexable); ok {
		method, _ = idx.Get(hostval.String(name))
	}
	f, ok := method.(*hostval.Function)
	if !ok {
		return k.Table.Add(k.normalizeThrown(fmt.Errorf("%s is not a function", name)))
	}
	args := k.resolveArgv(argv)
	ret, err := f.Call(objVal, args)
	if err != nil {
		return k.Table.Add(k.normalizeThrown(err))
	}
	return k.Table.Add(ret)
}

// ConstructNew constructs valueOf(cls) with the resolved arg array.
func (k *Kernel) ConstructNew(cls, argv handle.Handle) handle.Handle {
	fn, ok := k.Table.GetOr(cls).(*hostval.Function)
	if !ok {
		return k.Table.Add(k.normalizeThrown(fmt.Errorf("value is not a constructor")))
	}
	ctor := fn.Construct
	if ctor == nil {
		ctor = fn.Call
	}
	args := k.resolveArgv(argv)
	ret, err := ctor(hostval.Undefined, args)
	if err != nil {
		return k.Table.Add(k.normalizeThrown(err))
	}
	if o, ok := ret.(*hostval.Object); ok && o.Ctor == nil {
		o.Ctor = fn
	}
	return k.Table.Add(ret)
}

// Throw raises valueOf(h) as a host exception. The returned error wraps
// the thrown value so the ABI adaptor can trap the guest call, the only
// place a bridge operation re-enters the host's native exception
// mechanism.
func (k *Kernel) Throw(h handle.Handle) error {
	return &hostval.ThrownValue{Value: k.Table.GetOr(h)}
}

// CallbackInvoker bounces a host call back into the guest's indirect
// function table; internal/wasmabi supplies the concrete implementation.
// It returns the handle the guest function returned.
type CallbackInvoker func(argsHandle, data handle.Handle) (handle.Handle, error)

// MakeCallback registers a host closure that, when invoked, packs its
// arguments into a fresh host array and dispatches to the guest function
// at index fidx of the module's indirect-call table, passing (argsHandle,
// data). A throw during guest dispatch is normalised into an Error value
// rather than propagated, matching the other invocation entry points'
// exception contract.
func (k *Kernel) MakeCallback(fidx uint32, data handle.Handle, invoke CallbackInvoker) handle.Handle {
	fn := &hostval.Function{
		Name: fmt.Sprintf("callback#%d", fidx),
	}
	fn.Call = func(_ hostval.Value, args []hostval.Value) (hostval.Value, error) {
		arr := hostval.NewArray()
		arr.Elems = args
		argsHandle := k.Table.Add(arr)
		defer k.Table.DecRef(argsHandle)

		logctx.Debug("callback dispatch", "fidx", fidx, "args", len(args))
		retHandle, err := invoke(argsHandle, data)
		if err != nil {
			return k.normalizeThrown(err), nil
		}
		return k.Table.GetOr(retHandle), nil
	}
	return k.Table.Add(fn)
}
