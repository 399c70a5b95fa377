// Package argscan is a Go-native realization of the opaque, forward-only
// argument cursor spec.md's external interface section describes: a
// variadic Go argument list turned into an fmtlib.ArgCursor.
//
// Grounded on utils.go's isFixedKind/FixedSize kind-dispatch tables in the
// teacher, generalized from reflect.Kind struct fields to the closed
// fmtlib.ArgKind set a format specifier can request.
package argscan

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/rawbytedev/fmtlib"
)

// Cursor adapts a fixed slice of Go arguments to fmtlib.ArgCursor. Values
// are consumed strictly in order, exactly once, mirroring a C variadic
// argument list.
type Cursor struct {
	args []any
	pos  int
}

// New builds a Cursor over args. The slice is not copied; callers must not
// mutate it while formatting is in progress.
func New(args ...any) *Cursor {
	return &Cursor{args: args}
}

// Next implements fmtlib.ArgCursor. kind only influences how an argument
// whose Go type is itself ambiguous (nil, or a kind-overlapping numeric
// literal) gets coerced; a concretely-typed argument is read by its own
// type regardless of kind.
func (c *Cursor) Next(kind fmtlib.ArgKind) (fmtlib.Value, bool) {
	if c.pos >= len(c.args) {
		return fmtlib.Value{}, false
	}
	arg := c.args[c.pos]
	c.pos++
	return coerce(arg, kind), true
}

// Len reports the number of arguments the cursor was constructed with,
// independent of how many have been consumed.
func (c *Cursor) Len() int { return len(c.args) }

func coerce(arg any, kind fmtlib.ArgKind) fmtlib.Value {
	switch v := arg.(type) {
	case nil:
		if kind == fmtlib.KindVoidPtr {
			return fmtlib.ValueNilString()
		}
		return fmtlib.ValueInt(kind, 0)
	case bool:
		if v {
			return fmtlib.ValueInt(fmtlib.KindInt32, 1)
		}
		return fmtlib.ValueInt(fmtlib.KindInt32, 0)
	case int:
		return fmtlib.ValueInt(intKindOrDefault(kind), int64(v))
	case int8:
		return fmtlib.ValueInt(fmtlib.KindInt32, int64(v))
	case int16:
		return fmtlib.ValueInt(fmtlib.KindInt32, int64(v))
	case int32:
		return fmtlib.ValueInt(fmtlib.KindInt32, int64(v))
	case int64:
		return fmtlib.ValueInt(fmtlib.KindInt64, v)
	case uint:
		return fmtlib.ValueUint(uintKindOrDefault(kind), uint64(v))
	case uint8:
		return fmtlib.ValueUint(fmtlib.KindUint32, uint64(v))
	case uint16:
		return fmtlib.ValueUint(fmtlib.KindUint32, uint64(v))
	case uint32:
		return fmtlib.ValueUint(fmtlib.KindUint32, uint64(v))
	case uint64:
		return fmtlib.ValueUint(fmtlib.KindUint64, v)
	case uintptr:
		return fmtlib.ValueUint(fmtlib.KindSize, uint64(v))
	case float32:
		return fmtlib.ValueFloat(float64(v))
	case float64:
		return fmtlib.ValueFloat(v)
	case string:
		return fmtlib.ValueString(v)
	case *string:
		if v == nil {
			return fmtlib.ValueNilString()
		}
		return fmtlib.ValueString(*v)
	case unsafe.Pointer:
		if v == nil {
			return fmtlib.ValueNilString()
		}
		return fmtlib.ValuePointer(v)
	default:
		// Anything else is most commonly a pointer to a struct bound for a
		// user-registered formatter (spec.md §8's `{:test}` scenario, a
		// `&{a, b}` struct argument). Carry its address through as a
		// voidptr Value the way fmtlib.c's generic pointer kind does; the
		// formatter that registered this tag knows the concrete type and
		// casts back. Anything that isn't addressable falls back to its
		// string form, mirroring utils.go's reflection fallback for
		// unsupported struct field kinds.
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			return fmtlib.ValuePointer(unsafe.Pointer(rv.Pointer()))
		}
		return fmtlib.ValueString(fmt.Sprint(v))
	}
}

func intKindOrDefault(kind fmtlib.ArgKind) fmtlib.ArgKind {
	if kind == fmtlib.KindInt64 || kind == fmtlib.KindSize {
		return kind
	}
	return fmtlib.KindInt32
}

func uintKindOrDefault(kind fmtlib.ArgKind) fmtlib.ArgKind {
	if kind == fmtlib.KindUint64 || kind == fmtlib.KindSize {
		return kind
	}
	return fmtlib.KindUint32
}

// CustomCursor wraps Cursor to additionally expose the original,
// untouched Go value at each consumed index, so a user-registered
// Formatter (spec.md §6's registration API) that needs more than the
// closed ArgKind set — a struct with multiple fields, as in the `{:test}`
// scenario of spec.md §8 — can look itself up by index rather than being
// limited to fmtlib.Value's fields.
type CustomCursor struct {
	Cursor
	originals []any
}

// NewCustom builds a CustomCursor over args.
func NewCustom(args ...any) *CustomCursor {
	return &CustomCursor{Cursor: Cursor{args: args}, originals: args}
}

// Original returns the raw argument that was at position idx, for use by a
// custom formatter resolving a non-Value-shaped payload.
func (c *CustomCursor) Original(idx int) (any, bool) {
	if idx < 0 || idx >= len(c.originals) {
		return nil, false
	}
	return c.originals[idx], true
}

// Format runs fmtlib.Format over a Cursor built from args, the convenience
// path for callers with a plain Go argument list rather than a
// pre-built fmtlib.Value slice (fmtlib.Format itself stays dependency-free
// of this package to avoid an import cycle). dst follows fmtlib.Format's
// own capacity convention: one byte reserved for the trailing NUL.
func Format(dst []byte, template string, reg *fmtlib.Registry, args ...any) int {
	return fmtlib.Format(dst, template, len(args), reg, New(args...))
}

// Sprintf is Format's allocating convenience counterpart, growing a
// scratch buffer until the formatted result fits.
func Sprintf(template string, reg *fmtlib.Registry, args ...any) string {
	scratch := make([]byte, 256)
	for {
		n := fmtlib.Format(scratch, template, len(args), reg, New(args...))
		if n < len(scratch)-1 {
			return string(scratch[:n])
		}
		scratch = make([]byte, len(scratch)*2)
	}
}
