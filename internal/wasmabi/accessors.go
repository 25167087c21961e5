package wasmabi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/pkg/handle"
)

// registerAccessors wires typeof and the scalar accessors, including the
// string accessor, which returns an owned guest pointer rather than a
// handle.
func (b *Bridge) registerAccessors(m wazero.HostModuleBuilder) {
	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint32 {
		return b.writeGuestString(ctx, mod, b.Kernel().TypeOf(handle.Handle(h)))
	}).Export("emlite_val_typeof")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) int32 {
		return b.Kernel().GetValueInt(handle.Handle(h))
	}).Export("emlite_val_get_value_int")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint32 {
		return b.Kernel().GetValueUint(handle.Handle(h))
	}).Export("emlite_val_get_value_uint")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) int64 {
		return b.Kernel().GetValueBigint(handle.Handle(h))
	}).Export("emlite_val_get_value_bigint")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint64 {
		return b.Kernel().GetValueBiguint(handle.Handle(h))
	}).Export("emlite_val_get_value_biguint")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) float64 {
		return b.Kernel().GetValueDouble(handle.Handle(h))
	}).Export("emlite_val_get_value_double")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint32 {
		s, ok := b.Kernel().GetValueString(handle.Handle(h))
		if !ok {
			return 0
		}
		return b.writeGuestString(ctx, mod, s)
	}).Export("emlite_val_get_value_string")
}
