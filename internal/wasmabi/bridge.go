// Package wasmabi implements the ABI surface: the flat set of exported
// "env" module functions a guest wasm binary imports, each a thin adaptor
// over internal/kernel. Registration uses github.com/tetratelabs/wazero.
package wasmabi

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/internal/guestmem"
	"github.com/vbridgekit/vbridge/internal/kernel"
	"github.com/vbridgekit/vbridge/internal/logctx"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// Config configures a Bridge. The zero value is valid and selects the
// extended reserved-handle variant.
type Config struct {
	// Variant selects the reserved-handle layout. Defaults to
	// handle.VariantExtended.
	Variant handle.Variant
	// CallbackTrampoline is the name of the guest-exported function used
	// to dispatch into the guest's indirect-call table for make_callback.
	// The indirect call table itself is an integration detail owned by
	// the guest, not part of the portable ABI surface. The trampoline
	// must accept (fidx, argsHandle, data uint32) and return a uint32
	// handle. Defaults to "__emlite_invoke_callback".
	CallbackTrampoline string
	// MallocExport is the guest-exported allocator name used to return
	// owned strings. Defaults to "malloc".
	MallocExport string
}

func (c Config) trampoline() string {
	if c.CallbackTrampoline == "" {
		return "__emlite_invoke_callback"
	}
	return c.CallbackTrampoline
}

func (c Config) malloc() string {
	if c.MallocExport == "" {
		return "malloc"
	}
	return c.MallocExport
}

// Bridge owns one handle table's worth of host-side state for exactly one
// guest module instance. A fresh Bridge is required per instance: call
// Build once per guest instantiation rather than sharing a registered
// "env" module across instances.
type Bridge struct {
	cfg    Config
	k      *kernel.Kernel
	envMod api.Module
}

// NewBridge constructs an unstarted Bridge. The handle table is NOT built
// yet — it is constructed lazily on the first ABI call a guest makes, so
// the guest never needs a separate init step.
func NewBridge(cfg Config) *Bridge {
	return &Bridge{cfg: cfg}
}

// Kernel returns the bridge's operation kernel, initialising it on first use.
func (b *Bridge) Kernel() *kernel.Kernel {
	if b.k == nil {
		logctx.Debug("lazy-initialising handle table", "variant", b.cfg.Variant)
		b.k = kernel.New(b.cfg.Variant)
	}
	return b.k
}

// Build registers every ABI entry onto a HostModuleBuilder named "env" and
// instantiates it. Callers then instantiate their guest module against the
// same runtime. Each host function below receives the calling api.Module
// directly, so a single Bridge correctly serves exactly the one guest
// instance that imports it.
func Build(ctx context.Context, rt wazero.Runtime, cfg Config) (*Bridge, error) {
	b := NewBridge(cfg)
	builder := rt.NewHostModuleBuilder("env")
	b.registerConstructors(builder)
	b.registerAccessors(builder)
	b.registerObjectOps(builder)
	b.registerInvocation(builder)
	b.registerCompare(builder)
	b.registerDiagnostics(builder)
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("vbridge: instantiate env module: %w", err)
	}
	b.envMod = mod
	return b, nil
}

// Module returns the instantiated "env" host module, letting callers (and
// tests) invoke its exported ABI functions directly without a guest wasm
// binary.
func (b *Bridge) Module() api.Module { return b.envMod }

// readGuestString decodes a ptr+len guest string argument: length-bounded,
// never trusting a NUL terminator on input.
func (b *Bridge) readGuestString(mod api.Module, ptr, length uint32) string {
	s, ok := guestmem.ReadString(mod.Memory(), ptr, length)
	if !ok {
		logctx.Warn("guest string read out of bounds", "ptr", ptr, "len", length)
		return ""
	}
	return s
}

// writeGuestString allocates and writes a NUL-terminated UTF-8 buffer into
// guest memory via the guest's exported allocator, returning the pointer
// (0 on failure, matching a null pointer to the guest).
func (b *Bridge) writeGuestString(ctx context.Context, mod api.Module, s string) uint32 {
	mallocFn := mod.ExportedFunction(b.cfg.malloc())
	if mallocFn == nil {
		logctx.Warn("guest does not export allocator", "name", b.cfg.malloc())
		return 0
	}
	ptr, err := guestmem.WriteNULString(mod.Memory(), func(size uint32) (uint32, error) {
		res, err := mallocFn.Call(ctx, uint64(size))
		if err != nil {
			return 0, err
		}
		if len(res) == 0 {
			return 0, fmt.Errorf("vbridge: allocator returned no result")
		}
		return api.DecodeU32(res[0]), nil
	}, s)
	if err != nil {
		logctx.Warn("failed to return string to guest", "error", err)
		return 0
	}
	return ptr
}

// invokeCallback bounces a host call back into the guest's indirect-call
// table via the guest-exported trampoline (see Config.CallbackTrampoline).
func (b *Bridge) invokeCallback(ctx context.Context, mod api.Module, fidx uint32) kernel.CallbackInvoker {
	return func(argsHandle, data handle.Handle) (handle.Handle, error) {
		fn := mod.ExportedFunction(b.cfg.trampoline())
		if fn == nil {
			return 0, fmt.Errorf("vbridge: guest does not export %s", b.cfg.trampoline())
		}
		results, err := fn.Call(ctx, uint64(fidx), uint64(argsHandle), uint64(data))
		if err != nil {
			return 0, err
		}
		if len(results) == 0 {
			return 0, fmt.Errorf("vbridge: callback trampoline returned no result")
		}
		return handle.Handle(api.DecodeU32(results[0])), nil
	}
}
