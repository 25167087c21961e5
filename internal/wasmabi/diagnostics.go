package wasmabi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/pkg/handle"
)

// registerDiagnostics wires the handle-table dump/reset and ref-count
// entry points.
func (b *Bridge) registerDiagnostics(m wazero.HostModuleBuilder) {
	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module) {
		b.Kernel().PrintObjectMap()
	}).Export("emlite_print_object_map")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module) {
		b.Kernel().ResetObjectMap()
	}).Export("emlite_reset_object_map")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) {
		b.Kernel().IncRef(handle.Handle(h))
	}).Export("emlite_val_inc_ref")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) {
		b.Kernel().DecRef(handle.Handle(h))
	}).Export("emlite_val_dec_ref")
}
