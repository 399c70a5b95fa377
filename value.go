package fmtlib

import "unsafe"

// ArgKind is the closed tag set an argument is consumed and stored as
// (spec.md §3). It drives both how a value is pulled off an ArgCursor and
// how a formatter reads it back out of a Value.
//
// Grounded on utils.go's isFixedKind/FixedSize kind-dispatch tables in the
// teacher, generalized from reflect.Kind (struct fields) to the smaller,
// closed set spec.md requires for format arguments.
type ArgKind int

const (
	KindNone ArgKind = iota
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindSize
	KindDouble
	KindVoidPtr
)

func (k ArgKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindSize:
		return "size"
	case KindDouble:
		return "double"
	case KindVoidPtr:
		return "voidptr"
	default:
		return "unknown"
	}
}

// Value is a tagged container large enough to hold any argument kind (spec
// §3's "Value Slot"). Only the field matching Kind is meaningful.
//
// A C union holding an int64/double/pointer maps naturally to Go, except
// for strings: spec.md's voidptr kind models a C string pointer, but Go
// strings are not NUL-terminated byte pointers, so Str carries the string
// payload directly for the 's' built-in type instead of going through Ptr.
// This is the one deliberate deviation from the literal C shape — see
// SPEC_FULL.md §E.5.
type Value struct {
	Kind      ArgKind
	I64       int64
	U64       uint64
	F64       float64
	Str       string
	Ptr       unsafe.Pointer
	nilString bool // true when the 's' argument was an explicit nil pointer
}

// Int64 returns the value interpreted as a signed 64-bit integer,
// sign-extending from the narrower kinds.
func (v Value) Int64() int64 {
	switch v.Kind {
	case KindInt32:
		return int64(int32(v.I64))
	case KindInt64, KindSize:
		return v.I64
	default:
		return int64(v.U64)
	}
}

// Uint64 returns the value interpreted as an unsigned 64-bit integer.
func (v Value) Uint64() uint64 {
	switch v.Kind {
	case KindUint32:
		return uint64(uint32(v.U64))
	case KindUint64, KindSize:
		return v.U64
	case KindVoidPtr:
		return uint64(uintptr(v.Ptr))
	default:
		return uint64(v.I64)
	}
}

// Float64 returns the F64 field without consulting Kind; it does not
// convert integer kinds, so it is 0 for a Value built by ValueInt or
// ValueUint.
func (v Value) Float64() float64 {
	return v.F64
}

// ValueInt builds a signed-integer Value of the given kind. U64 is filled
// with the same bit pattern as I64 so KindSize values built from a signed
// Go argument still read correctly through Uint64 (spec.md §4.3: KindSize
// backs both the 'zd' and 'zu' built-in tags).
func ValueInt(kind ArgKind, i int64) Value { return Value{Kind: kind, I64: i, U64: uint64(i)} }

// ValueUint builds an unsigned-integer Value of the given kind. I64 is
// filled with the same bit pattern as U64, for the same KindSize reason as
// ValueInt above.
func ValueUint(kind ArgKind, u uint64) Value { return Value{Kind: kind, I64: int64(u), U64: u} }

// ValueFloat builds a double Value.
func ValueFloat(f float64) Value { return Value{Kind: KindDouble, F64: f} }

// ValueString builds a voidptr-kind Value carrying a Go string payload,
// used for the 's' built-in type.
func ValueString(s string) Value { return Value{Kind: KindVoidPtr, Str: s} }

// ValueNilString builds a voidptr-kind Value representing a nil string
// pointer argument; formatString renders it as "(null)", carrying over
// fmtlib.c's format_string behavior for a NULL const char*.
func ValueNilString() Value { return Value{Kind: KindVoidPtr, nilString: true} }

// ValuePointer builds a voidptr-kind Value carrying a raw pointer, used for
// the 'p' built-in type and custom formatters that need borrow semantics.
//
// The pointer is a non-owning borrow whose lifetime equals the Format call
// it was produced in; formatters must not retain it (spec.md Design Notes).
func ValuePointer(p unsafe.Pointer) Value { return Value{Kind: KindVoidPtr, Ptr: p} }
