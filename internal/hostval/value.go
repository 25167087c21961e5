// Package hostval implements the concrete host value representation: the
// dynamic null/undefined/boolean/number/bigint/string/array/object/
// function/symbol universe the bridge's handle table stores.
package hostval

import (
	"fmt"
	"math"
	"math/big"
)

// Kind tags the dynamic type of a Value, mirroring the set of type names
// the host runtime's typeof operator would report.
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindBoolean
	KindNumber
	KindBigInt
	KindString
	KindArray
	KindObject
	KindFunction
	KindSymbol
)

// Value is any value the host runtime admits. The bridge treats it
// opaquely except where a specific operation needs a concrete shape.
type Value interface {
	Kind() Kind
	// TypeOf returns the runtime's typeof-equivalent string for the value.
	TypeOf() string
}

// IdentityKey returns the key used by the handle table's reverse map to
// intern v. Primitives intern by value; objects/arrays/functions/symbols
// intern by Go pointer identity, matching host-identity equality.
func IdentityKey(v Value) any {
	switch t := v.(type) {
	case nullValue:
		return t
	case undefinedValue:
		return t
	case Bool:
		return bool(t)
	case Number:
		return float64(t)
	case *BigInt:
		return "big:" + t.v.String()
	case String:
		return string(t)
	default:
		// Arrays, Objects, Functions, Symbols, Errors: identity is the
		// pointer itself, which Go compares by address.
		return v
	}
}

// --- Null / Undefined -------------------------------------------------

type nullValue struct{}
type undefinedValue struct{}

// Null is the single host null value.
var Null Value = nullValue{}

// Undefined is the single host undefined value.
var Undefined Value = undefinedValue{}

func (nullValue) Kind() Kind        { return KindNull }
func (nullValue) TypeOf() string    { return "object" } // matches `typeof null === "object"`
func (undefinedValue) Kind() Kind     { return KindUndefined }
func (undefinedValue) TypeOf() string { return "undefined" }

// --- Boolean ------------------------------------------------------------

type Bool bool

func (Bool) Kind() Kind     { return KindBoolean }
func (Bool) TypeOf() string { return "boolean" }

// --- Number (int32/uint32/double all share this representation; an
// IEEE-754 double exactly represents every 32-bit integer). ---------------

type Number float64

func (Number) Kind() Kind     { return KindNumber }
func (Number) TypeOf() string { return "number" }

// --- BigInt: arbitrary-precision integer, backing make_bigint/make_biguint. --

type BigInt struct{ v *big.Int }

func NewBigIntFromInt64(x int64) *BigInt  { return &BigInt{v: big.NewInt(x)} }
func NewBigIntFromUint64(x uint64) *BigInt {
	return &BigInt{v: new(big.Int).SetUint64(x)}
}

func (*BigInt) Kind() Kind     { return KindBigInt }
func (*BigInt) TypeOf() string { return "bigint" }

// Int64 truncates the arbitrary-precision value to a signed 64-bit view,
// matching `BigInt.asIntN(64, v)` semantics closely enough for the bridge:
// values that already fit pass through exactly.
func (b *BigInt) Int64() int64 {
	if b.v.IsInt64() {
		return b.v.Int64()
	}
	// Value exceeds int64 range (e.g. produced by make_biguint with the
	// high bit set); reduce modulo 2^64 and reinterpret as signed.
	var m big.Int
	m.Mod(b.v, new(big.Int).Lsh(big.NewInt(1), 64))
	u := m.Uint64()
	return int64(u)
}

// Uint64 clamps negative values to 0, matching emlite_val_get_value_biguint_impl.
func (b *BigInt) Uint64() uint64 {
	if b.v.Sign() < 0 {
		return 0
	}
	if b.v.IsUint64() {
		return b.v.Uint64()
	}
	var m big.Int
	m.Mod(b.v, new(big.Int).Lsh(big.NewInt(1), 64))
	return m.Uint64()
}

// Float64 coerces via Number(bigint), same as `Number(EMLITE_VALMAP.get(n))`.
func (b *BigInt) Float64() float64 {
	f := new(big.Float).SetInt(b.v)
	out, _ := f.Float64()
	return out
}

func (b *BigInt) String() string { return b.v.String() }

// --- String ---------------------------------------------------------------

type String string

func (String) Kind() Kind     { return KindString }
func (String) TypeOf() string { return "string" }

// --- Symbol -----------------------------------------------------------

// Symbol is a unique, non-interned value used for the reserved sentinel
// and any guest-created symbols. Equality is always by pointer identity.
type Symbol struct {
	Description string
}

func (*Symbol) Kind() Kind     { return KindSymbol }
func (*Symbol) TypeOf() string { return "symbol" }

// --- Array --------------------------------------------------------------

// Array is a fresh empty ordered host array, grown via Push/Set.
type Array struct {
	Elems []Value
}

func NewArray() *Array { return &Array{} }

func (*Array) Kind() Kind     { return KindArray }
func (*Array) TypeOf() string { return "object" }

func (a *Array) Get(key Value) (Value, bool) {
	idx, ok := indexOf(key)
	if !ok || idx < 0 || idx >= len(a.Elems) {
		return Undefined, false
	}
	return a.Elems[idx], true
}

func (a *Array) Set(key Value, val Value) bool {
	idx, ok := indexOf(key)
	if !ok || idx < 0 {
		return false
	}
	for idx >= len(a.Elems) {
		a.Elems = append(a.Elems, Undefined)
	}
	a.Elems[idx] = val
	return true
}

func (a *Array) Has(key Value) bool {
	idx, ok := indexOf(key)
	return ok && idx >= 0 && idx < len(a.Elems)
}

func (a *Array) Push(v Value) { a.Elems = append(a.Elems, v) }

func indexOf(key Value) (int, bool) {
	switch k := key.(type) {
	case Number:
		f := float64(k)
		if f != math.Trunc(f) || f < 0 {
			return 0, false
		}
		return int(f), true
	case String:
		var idx int
		if _, err := fmt.Sscanf(string(k), "%d", &idx); err == nil {
			return idx, true
		}
	}
	return 0, false
}

// --- Object -------------------------------------------------------------

// Object is a fresh empty host property map.
type Object struct {
	Props map[string]Value
	// Ctor, when non-nil, is the Function that constructed this object via
	// construct_new; instanceof consults it.
	Ctor *Function
}

func NewObject() *Object { return &Object{Props: map[string]Value{}} }

func (*Object) Kind() Kind     { return KindObject }
func (*Object) TypeOf() string { return "object" }

func (o *Object) Get(key Value) (Value, bool) {
	v, ok := o.Props[propKey(key)]
	if !ok {
		return Undefined, false
	}
	return v, true
}

func (o *Object) Set(key Value, val Value) bool {
	if o.Props == nil {
		o.Props = map[string]Value{}
	}
	o.Props[propKey(key)] = val
	return true
}

func (o *Object) Has(key Value) bool {
	_, ok := o.Props[propKey(key)]
	return ok
}

func (o *Object) HasOwn(name string) bool {
	_, ok := o.Props[name]
	return ok
}

func propKey(v Value) string {
	switch k := v.(type) {
	case String:
		return string(k)
	case Number:
		return fmt.Sprintf("%v", float64(k))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// --- Function -------------------------------------------------------------

// NativeFunc is a Go closure backing a callable/constructible host value.
// Returning a *ThrownValue (or any error) signals a thrown exception that
// invocation sites must normalise.
type NativeFunc func(receiver Value, args []Value) (Value, error)

// Function wraps a callable host value: a plain function, a bound method,
// or a constructor. Call and Construct may be the same underlying closure;
// they are split because construct_new conventionally ignores `receiver`.
type Function struct {
	Name      string
	Call      NativeFunc
	Construct NativeFunc
	// IsErrorCtor marks the bridge's synthetic Error constructor so
	// instanceof and the error-normalisation path can recognise it without
	// a deep prototype-chain model.
	IsErrorCtor bool
}

func (*Function) Kind() Kind     { return KindFunction }
func (*Function) TypeOf() string { return "function" }

// --- Error ------------------------------------------------------------

// ErrorValue is the host Error-equivalent synthesised by §4.2.1
// normalisation, or constructed directly by guest code via the Error
// global. It implements the same Get/Set/Has surface as Object so
// `get(err, "message")` works the way property access on a real Error
// object would.
type ErrorValue struct {
	Name    string
	Message string
	Code    string
	Cause   Value
}

func NewErrorValue(message string) *ErrorValue {
	return &ErrorValue{Name: "Error", Message: message}
}

func (*ErrorValue) Kind() Kind     { return KindObject }
func (*ErrorValue) TypeOf() string { return "object" }

func (e *ErrorValue) Get(key Value) (Value, bool) {
	switch propKey(key) {
	case "message":
		return String(e.Message), true
	case "name":
		return String(e.Name), true
	case "code":
		if e.Code == "" {
			return Undefined, false
		}
		return String(e.Code), true
	case "cause":
		if e.Cause == nil {
			return Undefined, false
		}
		return e.Cause, true
	}
	return Undefined, false
}

func (e *ErrorValue) Set(key Value, val Value) bool {
	switch propKey(key) {
	case "message":
		if s, ok := val.(String); ok {
			e.Message = string(s)
		}
	case "name":
		if s, ok := val.(String); ok {
			e.Name = string(s)
		}
	case "code":
		if s, ok := val.(String); ok {
			e.Code = string(s)
		}
	case "cause":
		e.Cause = val
	default:
		return false
	}
	return true
}

func (e *ErrorValue) Has(key Value) bool {
	switch propKey(key) {
	case "message", "name", "code", "cause":
		return true
	}
	return false
}

func (e *ErrorValue) Error() string { return e.Name + ": " + e.Message }

// Indexable is implemented by every Value that supports get/set/has
// property access: Array, Object, ErrorValue, and the reserved
// global/console singletons.
type Indexable interface {
	Get(key Value) (Value, bool)
	Set(key Value, val Value) bool
	Has(key Value) bool
}

var (
	_ Indexable = (*Array)(nil)
	_ Indexable = (*Object)(nil)
	_ Indexable = (*ErrorValue)(nil)
)

// ThrownValue wraps an arbitrary Value thrown by guest or host code (via
// throw() or a NativeFunc returning an error) so invocation sites can
// recover the original value for §4.2.1 normalisation instead of just a
// string.
type ThrownValue struct {
	Value Value
}

func (t *ThrownValue) Error() string {
	if s, ok := t.Value.(String); ok {
		return string(s)
	}
	return fmt.Sprintf("%v", t.Value)
}

// Truthy implements host truthiness for not() and conditional coercions:
// false for null, undefined, false, 0, NaN, and "" — true otherwise.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nullValue, undefinedValue:
		return false
	case Bool:
		return bool(t)
	case Number:
		f := float64(t)
		return f != 0 && !math.IsNaN(f)
	case String:
		return len(t) > 0
	default:
		return true
	}
}

// ToFloat64 best-effort coerces v to a float64 for comparisons, matching
// loose JS coercion closely enough for gt/gte/lt/lte/equals.
func ToFloat64(v Value) (float64, bool) {
	switch t := v.(type) {
	case Number:
		return float64(t), true
	case *BigInt:
		return t.Float64(), true
	case Bool:
		if t {
			return 1, true
		}
		return 0, true
	case String:
		var f float64
		if _, err := fmt.Sscanf(string(t), "%g", &f); err == nil {
			return f, true
		}
		return 0, false
	case nullValue:
		return 0, true
	default:
		return 0, false
	}
}
