package fmtlib

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestValueInt64SignExtendsInt32(t *testing.T) {
	v := ValueInt(KindInt32, int64(int32(-1)))
	require.Equal(t, int64(-1), v.Int64())
}

func TestValueInt64PassesThroughInt64AndSize(t *testing.T) {
	require.Equal(t, int64(42), ValueInt(KindInt64, 42).Int64())
	require.Equal(t, int64(7), ValueInt(KindSize, 7).Int64())
}

func TestValueUint64MasksUint32(t *testing.T) {
	v := ValueUint(KindUint32, uint64(0xFFFFFFFF))
	require.Equal(t, uint64(0xFFFFFFFF), v.Uint64())
}

func TestValueUint64FromVoidPtr(t *testing.T) {
	var x int
	p := unsafe.Pointer(&x)
	v := ValuePointer(p)
	require.Equal(t, uint64(uintptr(p)), v.Uint64())
}

func TestValueFloat64(t *testing.T) {
	require.Equal(t, 3.14, ValueFloat(3.14).Float64())
}

func TestValueStringAndNilString(t *testing.T) {
	s := ValueString("hi")
	require.Equal(t, "hi", s.Str)
	require.False(t, s.nilString)

	n := ValueNilString()
	require.True(t, n.nilString)
	require.Equal(t, KindVoidPtr, n.Kind)
}

func TestArgKindString(t *testing.T) {
	require.Equal(t, "int32", KindInt32.String())
	require.Equal(t, "double", KindDouble.String())
	require.Equal(t, "unknown", ArgKind(99).String())
}
