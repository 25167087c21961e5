// Package logctx is the bridge's ambient logging package: a single
// package-level slog.Logger, discarding output until Init is called.
package logctx

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger. Library code (internal/kernel, internal/wasmabi)
// logs through this; it is silent until a cmd/ entrypoint calls Init.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	// Enabled turns logging on; if false, Init discards all output.
	Enabled bool
	// Debug enables slog.LevelDebug; otherwise slog.LevelInfo.
	Debug bool
	// Writer overrides the destination (default os.Stderr).
	Writer io.Writer
}

// Init configures the package logger. Call it once from main() before any
// operation on a Table or Kernel.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
