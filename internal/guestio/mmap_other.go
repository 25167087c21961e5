//go:build !unix

package guestio

// mapFile has no mmap-backed implementation outside unix platforms; Load
// falls back to a plain read.
func mapFile(path string) (data []byte, cleanup func() error, ok bool, err error) {
	return nil, nil, false, nil
}
