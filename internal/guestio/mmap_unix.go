//go:build unix

package guestio

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps path read-only via mmap(2). The bool result reports whether
// this build supports mapping at all (always true here); err carries any
// failure that occurred while trying.
func mapFile(path string) (data []byte, cleanup func() error, ok bool, err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, nil, true, openErr
	}
	defer f.Close()

	info, statErr := f.Stat()
	if statErr != nil {
		return nil, nil, true, statErr
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, true, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, true, fmt.Errorf("guestio: module too large to map (%d bytes)", size)
	}

	mapped, mmapErr := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if mmapErr != nil {
		return nil, nil, true, mmapErr
	}
	cleanupFn := func() error {
		if mapped == nil {
			return nil
		}
		munmapErr := unix.Munmap(mapped)
		if errors.Is(munmapErr, unix.EINVAL) {
			return nil
		}
		return munmapErr
	}
	return mapped, cleanupFn, true, nil
}
