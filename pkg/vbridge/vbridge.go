// Package vbridge is the embedder-facing facade over the bridge: load a
// compiled guest wasm module, instantiate it against the "env" ABI surface,
// and inspect or drive its handle table from host-side Go.
package vbridge

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/internal/kernel"
	"github.com/vbridgekit/vbridge/internal/wasmabi"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// Variant re-exports the reserved-handle layout choice.
type Variant = handle.Variant

const (
	VariantMinimal  = handle.VariantMinimal
	VariantExtended = handle.VariantExtended
)

// Value re-exports the host value interface embedders may want to inspect
// when walking a live table (see Guest.Kernel().Table).
type Value = hostval.Value

// Config configures a Runtime's guest instantiations.
type Config struct {
	Variant            Variant
	CallbackTrampoline string
	MallocExport       string
	MemoryPages        uint32 // guest linear memory cap, 0 means wazero's default
}

func (c Config) abiConfig() wasmabi.Config {
	return wasmabi.Config{
		Variant:            c.Variant,
		CallbackTrampoline: c.CallbackTrampoline,
		MallocExport:       c.MallocExport,
	}
}

// Runtime owns one wazero.Runtime and compiles/instantiates guest modules
// against it. Every Instantiate registers a new host module named "env" on
// that runtime, and wazero rejects a second module under the same name, so
// a Runtime instantiates at most one guest; use one Runtime per guest.
type Runtime struct {
	rt       wazero.Runtime
	cfg      Config
	instance uint64
}

// NewRuntime constructs a Runtime. cfg.MemoryPages, when nonzero, caps
// guest linear memory.
func NewRuntime(ctx context.Context, cfg Config) *Runtime {
	rtCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryPages > 0 {
		rtCfg = rtCfg.WithMemoryLimitPages(cfg.MemoryPages)
	}
	return &Runtime{rt: wazero.NewRuntimeWithConfig(ctx, rtCfg), cfg: cfg}
}

// Close releases the underlying wazero runtime and every module compiled
// or instantiated against it.
func (r *Runtime) Close(ctx context.Context) error { return r.rt.Close(ctx) }

// Guest is one instantiated guest module plus the Bridge (handle table and
// operation kernel) it was wired to.
type Guest struct {
	bridge *wasmabi.Bridge
	mod    wazero.CompiledModule
}

// Kernel exposes the guest's operation kernel for host-side inspection —
// e.g. for cmd/vbridge-inspect to walk the live handle table.
func (g *Guest) Kernel() *kernel.Kernel { return g.bridge.Kernel() }

// Instantiate compiles wasmBytes and instantiates it with a fresh Bridge,
// which owns the guest's handle table. A second call on the same Runtime
// fails when registering its "env" module (see Runtime).
func (r *Runtime) Instantiate(ctx context.Context, wasmBytes []byte) (*Guest, error) {
	bridge, err := wasmabi.Build(ctx, r.rt, r.cfg.abiConfig())
	if err != nil {
		return nil, fmt.Errorf("vbridge: build env module: %w", err)
	}
	compiled, err := r.rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("vbridge: compile guest module: %w", err)
	}
	// Each guest instance needs its own module name in the runtime's
	// namespace; the module's own name section is not unique across
	// repeated instantiations of the same compiled module.
	r.instance++
	cfg := wazero.NewModuleConfig().WithName(fmt.Sprintf("guest-%d", r.instance))
	if _, err := r.rt.InstantiateModule(ctx, compiled, cfg); err != nil {
		return nil, fmt.Errorf("vbridge: instantiate guest module: %w", err)
	}
	return &Guest{bridge: bridge, mod: compiled}, nil
}

// Close releases the guest's compiled module. The guest's module instance
// and handle table go away with the owning Runtime's Close.
func (g *Guest) Close(ctx context.Context) error { return g.mod.Close(ctx) }
