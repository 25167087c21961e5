// Package guestmem implements guest-linear-memory marshaling: strings
// crossing from the guest are raw byte pointers plus length, decoded as
// UTF-8 without trusting a NUL terminator on input; strings returned to
// the guest are NUL-terminated UTF-8 buffers allocated through the
// guest's exported allocator.
package guestmem

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tetratelabs/wazero/api"
)

// ReadString decodes len bytes at ptr in mem as UTF-8, sanitising invalid
// byte sequences through golang.org/x/text/encoding/unicode rather than
// trusting or rejecting them outright.
func ReadString(mem api.Memory, ptr uint32, length uint32) (string, bool) {
	raw, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	clean, _, err := transform.String(unicode.UTF8.NewDecoder(), string(raw))
	if err != nil {
		// Decoder only errors on malformed input it can't skip past;
		// fall back to the raw bytes rather than lose the call.
		return string(raw), true
	}
	return clean, true
}

// WriteNULString allocates len(s)+1 bytes via malloc, writes s followed
// by a trailing NUL, and returns the pointer. The guest owns the buffer
// and must free it.
func WriteNULString(mem api.Memory, malloc func(size uint32) (uint32, error), s string) (uint32, error) {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	ptr, err := malloc(uint32(len(buf)))
	if err != nil {
		return 0, err
	}
	if !mem.Write(ptr, buf) {
		return 0, errWriteFailed
	}
	return ptr, nil
}

type writeError string

func (e writeError) Error() string { return string(e) }

const errWriteFailed = writeError("guestmem: write past end of guest memory")
