package wasmabi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// registerConstructors wires the value-allocating entry points: arrays,
// objects, and the primitive wrappers.
func (b *Bridge) registerConstructors(m wazero.HostModuleBuilder) {
	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module) uint32 {
		return uint32(b.Kernel().NewArray())
	}).Export("emlite_val_new_array")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module) uint32 {
		return uint32(b.Kernel().NewObject())
	}).Export("emlite_val_new_object")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, v int32) uint32 {
		return uint32(b.Kernel().MakeInt(v))
	}).Export("emlite_val_make_int")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, v uint32) uint32 {
		return uint32(b.Kernel().MakeUint(v))
	}).Export("emlite_val_make_uint")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, v int64) uint32 {
		return uint32(b.Kernel().MakeBigint(v))
	}).Export("emlite_val_make_bigint")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, v int64) uint32 {
		return uint32(b.Kernel().MakeBiguint(v))
	}).Export("emlite_val_make_biguint")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, v float64) uint32 {
		return uint32(b.Kernel().MakeDouble(v))
	}).Export("emlite_val_make_double")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, ptr, length uint32) uint32 {
		return uint32(b.Kernel().MakeStr(b.readGuestString(mod, ptr, length)))
	}).Export("emlite_val_make_str")
}
