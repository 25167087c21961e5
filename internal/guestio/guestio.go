// Package guestio loads a compiled guest wasm module's bytes from disk,
// either via a plain read or, on platforms that support it, by mapping
// the file into memory via golang.org/x/sys/unix.
package guestio

import "os"

// Load reads the wasm module at path. When mmap is true and the platform
// implements mapFile, the file is mapped read-only instead of copied; the
// returned cleanup function must be called once the bytes are no longer
// needed. On platforms without a mapFile implementation, mmap is ignored.
func Load(path string, mmap bool) ([]byte, func() error, error) {
	if mmap {
		if data, cleanup, ok, err := mapFile(path); ok {
			return data, cleanup, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
