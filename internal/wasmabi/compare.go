package wasmabi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/pkg/handle"
)

// registerCompare wires the type tests, relational comparisons, and
// equality checks.
func (b *Bridge) registerCompare(m wazero.HostModuleBuilder) {
	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint32 {
		return boolToU32(b.Kernel().IsString(handle.Handle(h)))
	}).Export("emlite_val_is_string")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint32 {
		return boolToU32(b.Kernel().IsNumber(handle.Handle(h)))
	}).Export("emlite_val_is_number")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) uint32 {
		return boolToU32(b.Kernel().Not(handle.Handle(h)))
	}).Export("emlite_val_not")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().Gt(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_gt")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().Gte(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_gte")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().Lt(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_lt")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().Lte(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_lte")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().Equals(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_equals")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().StrictlyEquals(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_strictly_equals")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, a, c uint32) uint32 {
		return boolToU32(b.Kernel().InstanceOf(handle.Handle(a), handle.Handle(c)))
	}).Export("emlite_val_instanceof")
}
