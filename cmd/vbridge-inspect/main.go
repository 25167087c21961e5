// Command vbridge-inspect loads a guest wasm module, instantiates it
// against the value-bridge host runtime, and renders the resulting handle
// table as a scrollable, read-only terminal view.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vbridgekit/vbridge/internal/guestio"
	"github.com/vbridgekit/vbridge/pkg/handle"
	"github.com/vbridgekit/vbridge/pkg/vbridge"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: vbridge-inspect [--minimal] <module.wasm>")
		os.Exit(1)
	}

	variant := handle.VariantExtended
	path := os.Args[len(os.Args)-1]
	for _, a := range os.Args[1 : len(os.Args)-1] {
		if a == "--minimal" {
			variant = handle.VariantMinimal
		}
	}

	ctx := context.Background()
	wasmBytes, cleanup, err := guestio.Load(path, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	rt := vbridge.NewRuntime(ctx, vbridge.Config{Variant: variant})
	defer rt.Close(ctx)

	guest, err := rt.Instantiate(ctx, wasmBytes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error instantiating %s: %v\n", path, err)
		os.Exit(1)
	}
	defer guest.Close(ctx)
	// console.log output stays discarded here: writing it straight to
	// stdout would corrupt bubbletea's alt-screen rendering. The handle
	// table view shows table entries only, not the text console.log wrote.

	m := newModel(path, guest)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running TUI: %v\n", err)
		os.Exit(1)
	}
}
