package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbridgekit/vbridge/internal/logctx"
)

var (
	variantFlag     string
	debugFlag       bool
	memoryPagesFlag uint32
	mmapFlag        bool
)

var rootCmd = &cobra.Command{
	Use:     "vbridge",
	Short:   "Run a guest wasm module against the value-bridge host runtime",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&variantFlag, "variant", "extended", `reserved-handle layout: "minimal" or "extended"`)
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().
		Uint32Var(&memoryPagesFlag, "memory-pages", 0, "cap guest linear memory to this many 64KiB pages (0 = runtime default)")
	rootCmd.PersistentFlags().
		BoolVar(&mmapFlag, "mmap", false, "map the guest module file into memory instead of reading it")

	rootCmd.AddCommand(newRunCmd())

	cobra.OnInitialize(func() {
		logctx.Init(logctx.Options{Enabled: debugFlag, Debug: debugFlag, Writer: os.Stderr})
	})
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
