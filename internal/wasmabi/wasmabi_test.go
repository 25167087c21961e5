package wasmabi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vbridgekit/vbridge/internal/wasmabi"
	"github.com/vbridgekit/vbridge/pkg/handle"
)

// newTestBridge builds a Bridge against a real wazero runtime, driving the
// ABI functions directly as exported Go functions without an actual guest
// wasm binary. This also regression-tests registration itself: any
// function whose signature wazero's WithFunc reflection can't support
// makes Build panic before this helper ever returns.
func newTestBridge(t *testing.T) api.Module {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	b, err := wasmabi.Build(ctx, rt, wasmabi.Config{})
	require.NoError(t, err)
	return b.Module()
}

func call(t *testing.T, mod api.Module, name string, params ...uint64) []uint64 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	require.NotNilf(t, fn, "env does not export %s", name)
	res, err := fn.Call(context.Background(), params...)
	require.NoError(t, err)
	return res
}

func TestBuild_RegistersEveryABIFunctionWithoutPanicking(t *testing.T) {
	mod := newTestBridge(t)
	require.NotNil(t, mod)
}

func TestConstructors_NewArrayAndNewObjectReturnDistinctHandles(t *testing.T) {
	mod := newTestBridge(t)
	arr := call(t, mod, "emlite_val_new_array")[0]
	obj := call(t, mod, "emlite_val_new_object")[0]
	require.NotEqual(t, arr, obj)
	require.Greater(t, arr, uint64(handle.ReservedSentinel))
}

func TestConstructors_MakeIntRoundTripsThroughGetValueInt(t *testing.T) {
	mod := newTestBridge(t)
	h := call(t, mod, "emlite_val_make_int", uint64(uint32(int32(-7))))[0]
	got := int32(call(t, mod, "emlite_val_get_value_int", h)[0])
	require.EqualValues(t, -7, got)
}

func TestConstructors_MakeBiguintRenormalisesNegativeRawWord(t *testing.T) {
	mod := newTestBridge(t)
	h := call(t, mod, "emlite_val_make_biguint", uint64(int64(-1)))[0]
	got := call(t, mod, "emlite_val_get_value_biguint", h)[0]
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), got)
}

func TestConstructors_MakeDoubleRoundTrips(t *testing.T) {
	mod := newTestBridge(t)
	h := call(t, mod, "emlite_val_make_double", api.EncodeF64(2.5))[0]
	got := api.DecodeF64(call(t, mod, "emlite_val_get_value_double", h)[0])
	require.Equal(t, 2.5, got)
}

func TestObjectOps_SetThenGetRoundTrips(t *testing.T) {
	mod := newTestBridge(t)
	obj := call(t, mod, "emlite_val_new_object")[0]
	key := call(t, mod, "emlite_val_make_int", 1)[0]
	val := call(t, mod, "emlite_val_make_int", 42)[0]
	call(t, mod, "emlite_val_set", obj, key, val)

	got := call(t, mod, "emlite_val_get", obj, key)[0]
	require.EqualValues(t, 42, int32(call(t, mod, "emlite_val_get_value_int", got)[0]))
	require.EqualValues(t, 1, call(t, mod, "emlite_val_has", obj, key)[0])
}

func TestObjectOps_PushStoresRawHandleNotValueOf(t *testing.T) {
	mod := newTestBridge(t)
	arr := call(t, mod, "emlite_val_new_array")[0]
	v := call(t, mod, "emlite_val_make_int", 99)[0]
	call(t, mod, "emlite_val_push", arr, v)

	zero := call(t, mod, "emlite_val_make_int", 0)[0]
	first := call(t, mod, "emlite_val_get", arr, zero)[0]
	require.Equal(t, v, uint64(call(t, mod, "emlite_val_get_value_uint", first)[0]))
}

func TestInvoke_FuncCallOnNonFunctionReturnsNonNumberResult(t *testing.T) {
	mod := newTestBridge(t)
	notAFunc := call(t, mod, "emlite_val_make_int", 1)[0]
	argv := call(t, mod, "emlite_val_new_array")[0]
	result := call(t, mod, "emlite_val_func_call", notAFunc, argv)[0]
	require.EqualValues(t, 0, call(t, mod, "emlite_val_is_number", result)[0])
}

func TestInvoke_ConstructNewOnNonFunctionReturnsNonNumberResult(t *testing.T) {
	mod := newTestBridge(t)
	notACtor := call(t, mod, "emlite_val_make_int", 1)[0]
	argv := call(t, mod, "emlite_val_new_array")[0]
	result := call(t, mod, "emlite_val_construct_new", notACtor, argv)[0]
	require.EqualValues(t, 0, call(t, mod, "emlite_val_is_number", result)[0])
}

func TestInvoke_ThrowTrapsTheCall(t *testing.T) {
	mod := newTestBridge(t)
	h := call(t, mod, "emlite_val_make_int", 1)[0]
	fn := mod.ExportedFunction("emlite_val_throw")
	require.NotNil(t, fn)
	_, err := fn.Call(context.Background(), h)
	require.Error(t, err)
}

func TestCompare_EqualsAndStrictlyEquals(t *testing.T) {
	mod := newTestBridge(t)
	require.EqualValues(t, 1, call(t, mod, "emlite_val_equals", uint64(handle.Null), uint64(handle.Undefined))[0])
	require.EqualValues(t, 0, call(t, mod, "emlite_val_strictly_equals", uint64(handle.Null), uint64(handle.Undefined))[0])
}

func TestCompare_RelationalOnNumbers(t *testing.T) {
	mod := newTestBridge(t)
	a := call(t, mod, "emlite_val_make_int", 1)[0]
	b := call(t, mod, "emlite_val_make_int", 2)[0]
	require.EqualValues(t, 1, call(t, mod, "emlite_val_lt", a, b)[0])
	require.EqualValues(t, 0, call(t, mod, "emlite_val_gt", a, b)[0])
}

func TestCompare_Not(t *testing.T) {
	mod := newTestBridge(t)
	require.EqualValues(t, 1, call(t, mod, "emlite_val_not", uint64(handle.False))[0])
	require.EqualValues(t, 0, call(t, mod, "emlite_val_not", uint64(handle.True))[0])
}

func TestDiagnostics_IncRefDecRefAndResetDoNotPanicOnReservedHandles(t *testing.T) {
	mod := newTestBridge(t)
	call(t, mod, "emlite_val_inc_ref", uint64(handle.Global))
	call(t, mod, "emlite_val_dec_ref", uint64(handle.Global))
	call(t, mod, "emlite_print_object_map")
	call(t, mod, "emlite_reset_object_map")
}
