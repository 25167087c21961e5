package wasmabi

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/pkg/handle"
)

// registerInvocation wires func_call, obj_call, construct_new, throw, and
// make_callback. throw is the one operation that re-enters the host's
// native exception mechanism: wazero's WithFunc only accepts scalar
// parameter/result types, so the trap is raised by panicking with the
// error from inside the closure rather than returning it, matching
// wazero's documented convention for a panic carrying an error value.
func (b *Bridge) registerInvocation(m wazero.HostModuleBuilder) {
	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, fn, argv uint32) uint32 {
		return uint32(b.Kernel().FuncCall(handle.Handle(fn), handle.Handle(argv)))
	}).Export("emlite_val_func_call")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, obj, namePtr, nameLen, argv uint32) uint32 {
		name := b.readGuestString(mod, namePtr, nameLen)
		return uint32(b.Kernel().ObjCall(handle.Handle(obj), name, handle.Handle(argv)))
	}).Export("emlite_val_obj_call")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, cls, argv uint32) uint32 {
		return uint32(b.Kernel().ConstructNew(handle.Handle(cls), handle.Handle(argv)))
	}).Export("emlite_val_construct_new")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, h uint32) {
		if err := b.Kernel().Throw(handle.Handle(h)); err != nil {
			panic(err)
		}
	}).Export("emlite_val_throw")

	m.NewFunctionBuilder().WithFunc(func(ctx context.Context, mod api.Module, fidx, data uint32) uint32 {
		invoker := b.invokeCallback(ctx, mod, fidx)
		return uint32(b.Kernel().MakeCallback(fidx, handle.Handle(data), invoker))
	}).Export("emlite_val_make_callback")
}
