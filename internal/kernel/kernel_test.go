package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbridgekit/vbridge/internal/hostval"
	"github.com/vbridgekit/vbridge/internal/kernel"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

func newKernel() *kernel.Kernel { return kernel.New(handle.VariantExtended) }

func TestMakeDouble_RoundTrips(t *testing.T) {
	k := newKernel()
	h := k.MakeDouble(3.5)
	assert.Equal(t, 3.5, k.GetValueDouble(h))
}

func TestMakeBigint_RoundTripsNegative(t *testing.T) {
	k := newKernel()
	h := k.MakeBigint(-123456789)
	assert.Equal(t, int64(-123456789), k.GetValueBigint(h))
}

func TestMakeBiguint_RenormalisesNegativeRawWord(t *testing.T) {
	k := newKernel()
	// -1 as a raw 64-bit word is all ones, i.e. the maximum uint64.
	h := k.MakeBiguint(-1)
	assert.Equal(t, uint64(math.MaxUint64), k.GetValueBiguint(h))
}

func TestMakeStr_TypeOfIsString(t *testing.T) {
	k := newKernel()
	h := k.MakeStr("hello")
	assert.Equal(t, "string", k.TypeOf(h))
	assert.True(t, k.IsString(h))
	assert.False(t, k.IsNumber(h))
	s, ok := k.GetValueString(h)
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestGetValueString_OnNonStringReturnsFalse(t *testing.T) {
	k := newKernel()
	h := k.MakeInt(5)
	_, ok := k.GetValueString(h)
	assert.False(t, ok)
}

func TestObjectGetSet_RoundTrips(t *testing.T) {
	k := newKernel()
	obj := k.NewObject()
	key := k.MakeStr("count")
	val := k.MakeInt(7)
	k.Set(obj, key, val)
	got := k.Get(obj, key)
	assert.Equal(t, int32(7), k.GetValueInt(got))
}

func TestHas_SwallowsNonIndexableTarget(t *testing.T) {
	k := newKernel()
	notAnObject := k.MakeInt(1)
	key := k.MakeStr("x")
	assert.False(t, k.Has(notAnObject, key))
}

func TestPush_StoresRawHandleNotValueOf(t *testing.T) {
	k := newKernel()
	arr := k.NewArray()
	v := k.MakeInt(99)
	k.Push(arr, v)

	// push stores the raw handle integer as a Number, not valueOf(v) (99).
	first := k.Get(arr, k.MakeInt(0))
	assert.Equal(t, uint32(v), k.GetValueUint(first))
}

func TestObjHasOwnProp(t *testing.T) {
	k := newKernel()
	obj := k.NewObject()
	k.Set(obj, k.MakeStr("name"), k.MakeStr("value"))
	assert.True(t, k.ObjHasOwnProp(obj, "name"))
	assert.False(t, k.ObjHasOwnProp(obj, "missing"))
}

func TestFuncCall_NonFunctionNormalisesToError(t *testing.T) {
	k := newKernel()
	notAFunc := k.MakeInt(1)
	argv := k.NewArray()
	result := k.FuncCall(notAFunc, argv)
	assert.Equal(t, "object", k.TypeOf(result)) // ErrorValue.TypeOf() == "object"
}

func TestInstanceOf_ErrorConstructor(t *testing.T) {
	k := newKernel()
	errCtorHandle := k.Get(handle.Global, k.MakeStr("Error"))
	argv := k.NewArray()
	k.Push(argv, k.MakeStr("boom"))
	errVal := k.ConstructNew(errCtorHandle, argv)
	assert.True(t, k.InstanceOf(errVal, errCtorHandle))
}

func TestEquals_NullAndUndefinedAreMutuallyEqual(t *testing.T) {
	k := newKernel()
	assert.True(t, k.Equals(handle.Null, handle.Undefined))
	assert.False(t, k.StrictlyEquals(handle.Null, handle.Undefined))
}

func TestCompare_StringsLexicographic(t *testing.T) {
	k := newKernel()
	a := k.MakeStr("apple")
	b := k.MakeStr("banana")
	assert.True(t, k.Lt(a, b))
	assert.False(t, k.Gt(a, b))
}

func TestNot(t *testing.T) {
	k := newKernel()
	assert.True(t, k.Not(handle.False))
	assert.False(t, k.Not(handle.True))
}

func TestThrow_ExistingErrorValuePassesThroughUnwrapped(t *testing.T) {
	k := newKernel()
	errCtor := k.Get(handle.Global, k.MakeStr("Error"))
	argv := k.NewArray()
	k.Push(argv, k.MakeStr("already an error"))
	errHandle := k.ConstructNew(errCtor, argv)

	thrown := &hostval.Function{Name: "boom"}
	thrown.Call = func(_ hostval.Value, _ []hostval.Value) (hostval.Value, error) {
		return nil, k.Throw(errHandle)
	}
	thrownHandle := k.Table.Add(thrown)

	result := k.FuncCall(thrownHandle, k.NewArray())
	msg, ok := k.GetValueString(k.Get(result, k.MakeStr("message")))
	require.True(t, ok)
	assert.Equal(t, "already an error", msg)
}

func TestResetObjectMap_ThenPushAfterResetDoesNotPanic(t *testing.T) {
	k := newKernel()
	arr := k.NewArray()
	k.Push(arr, k.MakeInt(1))
	k.ResetObjectMap()
	// arr's own handle was released by Reset; pushing through the stale
	// handle must swallow the failure and no-op rather than panic.
	assert.NotPanics(t, func() { k.Push(arr, k.MakeInt(2)) })
}

func TestMakeCallback_NormalisesGuestException(t *testing.T) {
	k := newKernel()
	boom := assertError{"guest trapped"}
	cb := k.MakeCallback(0, handle.Undefined, func(argsHandle, data handle.Handle) (handle.Handle, error) {
		return 0, boom
	})
	assert.Equal(t, "function", k.TypeOf(cb))

	argv := k.NewArray()
	result := k.FuncCall(cb, argv)
	assert.Equal(t, "object", k.TypeOf(result))
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
