package wasmabi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/pkg/handle"
)

func boolToU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// registerObjectOps wires get/set/has/push and own-property probing.
func (b *Bridge) registerObjectOps(m wazero.HostModuleBuilder) {
	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, obj, key uint32) uint32 {
		return uint32(b.Kernel().Get(handle.Handle(obj), handle.Handle(key)))
	}).Export("emlite_val_get")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, obj, key, val uint32) {
		b.Kernel().Set(handle.Handle(obj), handle.Handle(key), handle.Handle(val))
	}).Export("emlite_val_set")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, obj, key uint32) uint32 {
		return boolToU32(b.Kernel().Has(handle.Handle(obj), handle.Handle(key)))
	}).Export("emlite_val_has")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, arr, v uint32) {
		b.Kernel().Push(handle.Handle(arr), handle.Handle(v))
	}).Export("emlite_val_push")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, obj, namePtr, nameLen uint32) uint32 {
		name := b.readGuestString(mod, namePtr, nameLen)
		return boolToU32(b.Kernel().ObjHasOwnProp(handle.Handle(obj), name))
	}).Export("emlite_val_obj_has_own_prop")
}
