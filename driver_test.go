package fmtlib

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// runFormat is the package-local test helper: it drives Format over a
// sliceCursor (sprintf.go's unexported cursor) so driver tests don't need
// pkg/argscan's reflection-based coercion.
func runFormat(template string, maxArgs int, values ...Value) string {
	dst := make([]byte, 256)
	n := Format(dst, template, maxArgs, DefaultRegistry, &sliceCursor{values: values})
	return string(dst[:n])
}

func TestFormatLiteralTextOnly(t *testing.T) {
	require.Equal(t, "Hello, world!", runFormat("Hello, world!", 0))
}

func TestFormatEscapedBraces(t *testing.T) {
	require.Equal(t, "{}", runFormat("{{}}", 0))
	require.Equal(t, "{42}", runFormat("{{{:d}}}", 1, ValueInt(KindInt32, 42)))
}

func TestFormatBuiltinIntegerTags(t *testing.T) {
	cases := []struct {
		template string
		value    Value
		want     string
	}{
		{"{:d}", ValueInt(KindInt32, 42), "42"},
		{"{:x}", ValueUint(KindUint32, 42), "2a"},
		{"{:#x}", ValueUint(KindUint32, 42), "0x2a"},
		{"{:!x}", ValueUint(KindUint32, 42), "2A"},
		{"{:03d}", ValueInt(KindInt32, 7), "007"},
		{"{:04d}", ValueInt(KindInt32, -7), "-007"},
		{"{:+04d}", ValueInt(KindInt32, 7), "+007"},
		{"{: d}", ValueInt(KindInt32, 42), " 42"},
		{"{: d}", ValueInt(KindInt32, -42), "-42"},
		{"{:4d}", ValueInt(KindInt32, 42), "  42"},
		{"{:^4d}", ValueInt(KindInt32, 42), " 42 "},
		// spec.md §8's scenario table pairs explicit '<' with right-justified
		// output and '>' with left-justified output, the inverse of what
		// the glyphs alone suggest.
		{"{:<4d}", ValueInt(KindInt32, 42), "  42"},
		{"{:>4d}", ValueInt(KindInt32, 42), "42  "},
	}
	for _, c := range cases {
		require.Equal(t, c.want, runFormat(c.template, 1, c.value), c.template)
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	require.Equal(t, "3.14", runFormat("{:.2f}", 1, ValueFloat(3.14)))
}

func TestFormatUnknownTypeTagEmitsBadTypeMarker(t *testing.T) {
	require.Equal(t, "{bad type: q}", runFormat("{:q}", 1, ValueInt(KindInt32, 42)))
}

func TestFormatIndexExceedingMaxArgsIsSwallowed(t *testing.T) {
	require.Equal(t, "", runFormat("{99:d}", 1, ValueInt(KindInt32, 42)))
}

func TestFormatStringPrecisionTruncates(t *testing.T) {
	require.Equal(t, "hel", runFormat("{:.3s}", 1, ValueString("hello")))
}

func TestFormatNilStringRendersNull(t *testing.T) {
	require.Equal(t, "(null)", runFormat("{:s}", 1, ValueNilString()))
}

func TestFormatCharZeroEscapesViaDriver(t *testing.T) {
	require.Equal(t, "\\0", runFormat("{:c}", 1, ValueInt(KindInt32, 0)))
}

func TestFormatPointerTypeUsesAltHexWithPrefix(t *testing.T) {
	var x byte
	got := runFormat("{:p}", 1, ValuePointer(unsafe.Pointer(&x)))
	require.True(t, strings.HasPrefix(got, "0x"), got)
}

func TestFormatBareStarWidthFromCursor(t *testing.T) {
	// valueIndex resolves to implicit arg 0, the bare '*' width consumes
	// implicit arg 1: args are (value, width).
	got := runFormat("{:*d}", 2, ValueInt(KindInt32, 42), ValueInt(KindInt32, 4))
	require.Equal(t, "  42", got)
}

func TestFormatTwoPassBackReference(t *testing.T) {
	// {1:d} is seen before the implicit cursor would reach index 1, so the
	// driver must switch to two-pass mode at the very first specifier.
	got := runFormat("{1:d}, {0:.2f}", 2, ValueFloat(3.14), ValueInt(KindInt32, 42))
	require.Equal(t, "42, 3.14", got)
}

func TestFormatTwoPassTriggeredMidTemplate(t *testing.T) {
	// The first specifier is consumed in single-pass mode; the second
	// specifier's explicit index 2 is what pushes argCount past the
	// implicit cursor and forces the switch, mid-scan.
	got := runFormat("{0:.2f}, {2:s}, {1:d}", 3,
		ValueFloat(3.14), ValueInt(KindInt32, 42), ValueString("string"))
	require.Equal(t, "3.14, string, 42", got)
}

func TestFormatTruncatesToCapacityAndStaysNullTerminated(t *testing.T) {
	dst := make([]byte, 5)
	n := Format(dst, "Hello, world!", 0, DefaultRegistry, &sliceCursor{})
	require.Equal(t, 4, n)
	require.Equal(t, "Hell", string(dst[:4]))
	require.Equal(t, byte(0), dst[4])
}

func TestFormatKindConflictFirstResolvedWins(t *testing.T) {
	// {0:d} resolves index 0 as KindInt32; the later {0:s} reference is
	// incompatible and is a silent no-op rather than reinterpreting the
	// value.
	got := runFormat("{0:d} {0:s}", 1, ValueInt(KindInt32, 42))
	require.Equal(t, "42 ", got)
}
