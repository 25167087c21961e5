package guestmem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/internal/guestmem"
)

// minimalMemoryModule is a hand-assembled wasm binary exporting a single
// one-page linear memory and nothing else, just enough for api.Memory
// exercises without needing a guest toolchain.
var minimalMemoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic "\0asm"
	0x01, 0x00, 0x00, 0x00, // version 1
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 memory, min 1 page
	0x07, 0x0a, 0x01, // export section: 1 export
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', // name "memory"
	0x02, 0x00, // kind=memory, index=0
}

func newTestMemory(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, minimalMemoryModule)
	require.NoError(t, err)
	t.Cleanup(func() { mod.Close(ctx) })

	return mod.Memory()
}

func TestReadString_DecodesValidUTF8(t *testing.T) {
	mem := newTestMemory(t)
	msg := "hello, guest"
	require.True(t, mem.Write(0, []byte(msg)))

	s, ok := guestmem.ReadString(mem, 0, uint32(len(msg)))
	require.True(t, ok)
	require.Equal(t, msg, s)
}

func TestReadString_OutOfBoundsFails(t *testing.T) {
	mem := newTestMemory(t)
	_, ok := guestmem.ReadString(mem, mem.Size()+1, 16)
	require.False(t, ok)
}

func TestWriteNULString_AllocatesAndTerminates(t *testing.T) {
	mem := newTestMemory(t)
	var nextFree uint32 = 1024
	malloc := func(size uint32) (uint32, error) {
		ptr := nextFree
		nextFree += size
		return ptr, nil
	}

	ptr, err := guestmem.WriteNULString(mem, malloc, "owned")
	require.NoError(t, err)

	raw, ok := mem.Read(ptr, uint32(len("owned")+1))
	require.True(t, ok)
	require.Equal(t, "owned\x00", string(raw))
}
