package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbridgekit/vbridge/internal/guestio"
	"github.com/vbridgekit/vbridge/pkg/handle"
	"github.com/vbridgekit/vbridge/pkg/vbridge"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <module.wasm>",
		Short: "Instantiate a guest wasm module against the value-bridge host runtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModule(cmd.Context(), args[0])
		},
	}
}

func parseVariant(s string) (handle.Variant, error) {
	switch s {
	case "", "extended":
		return handle.VariantExtended, nil
	case "minimal":
		return handle.VariantMinimal, nil
	default:
		return 0, fmt.Errorf("unknown --variant %q (want \"minimal\" or \"extended\")", s)
	}
}

func runModule(ctx context.Context, path string) error {
	variant, err := parseVariant(variantFlag)
	if err != nil {
		return err
	}

	wasmBytes, cleanup, err := guestio.Load(path, mmapFlag)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	defer cleanup()

	rt := vbridge.NewRuntime(ctx, vbridge.Config{
		Variant:     variant,
		MemoryPages: memoryPagesFlag,
	})
	defer rt.Close(ctx)

	guest, err := rt.Instantiate(ctx, wasmBytes)
	if err != nil {
		return fmt.Errorf("instantiating %s: %w", path, err)
	}
	defer guest.Close(ctx)
	guest.Kernel().SetConsoleOutput(os.Stdout)

	fmt.Printf("loaded %s: %d live handles above the reserved prefix\n", path, guest.Kernel().Table.Len())
	return nil
}
