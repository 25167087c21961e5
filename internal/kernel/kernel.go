// Package kernel implements the host-side operation kernel: every
// ABI-level operation that accepts handles (and sometimes decoded
// strings) and performs the corresponding host-value operation, returning
// a handle to the result. Exception safety lives here, not in the ABI
// adaptors, so that Kernel is independently testable without a wasm
// runtime.
package kernel

import (
	"io"
	"math"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/internal/logctx"
	"github.com/vbridgekit/vbridge/internal/table"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// Kernel is the host-side half of the bridge: a handle table plus the
// operations the ABI surface dispatches to. One Kernel per module
// instance; the table is not safe to share across instances.
type Kernel struct {
	Table *table.Table

	errorCtor  *hostval.Function
	arrayCtor  *hostval.Function
	objectCtor *hostval.Function

	// consoleOut is where the bridge's console.log writes. It defaults to
	// io.Discard; embedders that want console output surfaced (cmd/vbridge)
	// call SetConsoleOutput to redirect it.
	consoleOut io.Writer
}

// New constructs a Kernel with a freshly seeded Table and the built-in
// Error/Array/Object constructors and console.log wired onto the
// reserved global/console objects.
func New(variant handle.Variant) *Kernel {
	k := &Kernel{Table: table.New(variant), consoleOut: io.Discard}
	k.installGlobals()
	return k
}

// SetConsoleOutput redirects the bridge's console.log writes to w. A nil w
// restores the default of discarding output. This is the only sanctioned
// way for console.log to produce user-facing output; internal/kernel
// itself logs at Debug, apart from PrintObjectMap's Info-level dump.
func (k *Kernel) SetConsoleOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	k.consoleOut = w
}

// --- Constructors -----------------------------------------------------

func (k *Kernel) NewArray() handle.Handle {
	h := k.Table.Add(hostval.NewArray())
	logctx.Debug("new_array", "handle", h)
	return h
}

func (k *Kernel) NewObject() handle.Handle {
	h := k.Table.Add(hostval.NewObject())
	logctx.Debug("new_object", "handle", h)
	return h
}

func (k *Kernel) MakeInt(v int32) handle.Handle {
	return k.Table.Add(hostval.Number(float64(v)))
}

func (k *Kernel) MakeUint(v uint32) handle.Handle {
	return k.Table.Add(hostval.Number(float64(v)))
}

func (k *Kernel) MakeBigint(v int64) handle.Handle {
	return k.Table.Add(hostval.NewBigIntFromInt64(v))
}

// MakeBiguint takes the raw 64-bit word exactly as read off the wasm
// stack (via a signed decode) and reinterprets it as unsigned. Go's
// uint64(int64) conversion is a two's-complement reinterpretation, which
// renormalises a negative raw word into its unsigned equivalent with no
// extra arithmetic — see DESIGN.md.
func (k *Kernel) MakeBiguint(raw int64) handle.Handle {
	return k.Table.Add(hostval.NewBigIntFromUint64(uint64(raw)))
}

func (k *Kernel) MakeDouble(v float64) handle.Handle {
	return k.Table.Add(hostval.Number(v))
}

func (k *Kernel) MakeStr(s string) handle.Handle {
	return k.Table.Add(hostval.String(s))
}

// --- Accessors ----------------------------------------------------------

func (k *Kernel) TypeOf(h handle.Handle) string {
	return k.Table.GetOr(h).TypeOf()
}

func (k *Kernel) GetValueInt(h handle.Handle) int32 {
	switch v := k.Table.GetOr(h).(type) {
	case hostval.Number:
		return toInt32(float64(v))
	case *hostval.BigInt:
		return toInt32(v.Float64())
	default:
		return 0
	}
}

func (k *Kernel) GetValueUint(h handle.Handle) uint32 {
	switch v := k.Table.GetOr(h).(type) {
	case hostval.Number:
		return toUint32(float64(v))
	case *hostval.BigInt:
		return toUint32(v.Float64())
	default:
		return 0
	}
}

func (k *Kernel) GetValueBigint(h handle.Handle) int64 {
	switch v := k.Table.GetOr(h).(type) {
	case *hostval.BigInt:
		return v.Int64()
	case hostval.Number:
		return int64(math.Trunc(float64(v)))
	default:
		return 0
	}
}

func (k *Kernel) GetValueBiguint(h handle.Handle) uint64 {
	switch v := k.Table.GetOr(h).(type) {
	case *hostval.BigInt:
		return v.Uint64()
	case hostval.Number:
		f := math.Trunc(float64(v))
		if f < 0 {
			return 0
		}
		return uint64(f)
	default:
		return 0
	}
}

func (k *Kernel) GetValueDouble(h handle.Handle) float64 {
	switch v := k.Table.GetOr(h).(type) {
	case hostval.Number:
		return float64(v)
	case *hostval.BigInt:
		return v.Float64()
	case hostval.Bool:
		if v {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// GetValueString returns the decoded string and true when h names a host
// string; otherwise ("", false), which the ABI adaptor turns into a null
// pointer.
func (k *Kernel) GetValueString(h handle.Handle) (string, bool) {
	s, ok := k.Table.GetOr(h).(hostval.String)
	return string(s), ok
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Trunc(f))))
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(f)))
}
