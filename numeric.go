package fmtlib

import "math"

// numeric.go implements base-N digit emission and the integer/float
// formatters of spec.md §4.2, grounded on fmtlib.c's u64_to_str,
// format_integer and format_double.

type numFormat struct {
	base   uint64
	digits string
	prefix string
}

var (
	binaryFormat   = numFormat{base: 2, digits: "01", prefix: "0b"}
	octalFormat    = numFormat{base: 8, digits: "01234567", prefix: "0o"}
	decimalFormat  = numFormat{base: 10, digits: "0123456789", prefix: ""}
	hexLowerFormat = numFormat{base: 16, digits: "0123456789abcdef", prefix: "0x"}
	hexUpperFormat = numFormat{base: 16, digits: "0123456789ABCDEF", prefix: "0X"}
)

// pow10 mirrors fmtlib.c's pow10 table, used when scaling the fractional
// part of a double by 10^precision.
var pow10 = [...]float64{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// digitsOf emits value's digits least-significant-first into scratch, then
// reverses in place, mirroring u64_to_str. Zero always produces "0".
func digitsOf(value uint64, format *numFormat) []byte {
	var scratch [64]byte
	if value == 0 {
		return []byte{'0'}
	}
	n := 0
	for value > 0 {
		scratch[n] = format.digits[value%format.base]
		value /= format.base
		n++
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = scratch[n-1-i]
	}
	return out
}

func clampWidth(w int) int {
	if w < 0 {
		return 0
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// formatIntegerValue writes a signed or unsigned integer into scratch,
// returning the composed bytes (sign + prefix + zero-pad + digits) without
// any external alignment padding applied — alignment is a separate pass
// (align.go) driven by the caller once it knows the composed length.
func formatIntegerValue(v Value, signed bool, flags Flag, precision int, format *numFormat) []byte {
	var out []byte

	var magnitude uint64
	negative := false
	if signed {
		i := v.Int64()
		if i < 0 {
			magnitude = uint64(-i)
			negative = true
		} else {
			magnitude = uint64(i)
		}
	} else {
		magnitude = v.Uint64()
	}

	if negative {
		out = append(out, '-')
	} else if flags.has(FlagSign) {
		out = append(out, '+')
	} else if flags.has(FlagSpace) {
		out = append(out, ' ')
	}

	if flags.has(FlagAlt) {
		out = append(out, format.prefix...)
	}

	digits := digitsOf(magnitude, format)
	if precision > len(digits) {
		pad := precision - len(digits)
		for i := 0; i < pad; i++ {
			out = append(out, '0')
		}
	}

	out = append(out, digits...)
	return out
}

// applyZeroPad inserts '0' bytes between the sign/prefix and the digits so
// the sign/prefix remain leftmost, per spec.md §4.2 step 4. signPrefixLen
// is the number of leading bytes (sign + alt prefix) that must stay put.
func applyZeroPad(composed []byte, signPrefixLen, width int) []byte {
	if len(composed) >= width {
		return composed
	}
	pad := width - len(composed)
	out := make([]byte, 0, width)
	out = append(out, composed[:signPrefixLen]...)
	for i := 0; i < pad; i++ {
		out = append(out, '0')
	}
	out = append(out, composed[signPrefixLen:]...)
	return out
}

func signPrefixLen(composed []byte, negative bool, flags Flag, altPrefix string) int {
	n := 0
	if negative || flags.has(FlagSign) || flags.has(FlagSpace) {
		n++
	}
	if flags.has(FlagAlt) {
		n += len(altPrefix)
	}
	return n
}

func formatIntegerKind(buf *Buffer, spec *ResolvedSpec, signed bool, format *numFormat) int {
	flags := spec.Flags()
	precision := spec.Precision()
	if precision < 0 {
		precision = 0
	}
	v := spec.Value()

	composed := formatIntegerValue(v, signed, flags, precision, format)

	negative := signed && v.Int64() < 0
	spl := signPrefixLen(composed, negative, flags, format.prefix)

	width := clampWidth(spec.Width())
	if flags.has(FlagZero) && width > len(composed) {
		composed = applyZeroPad(composed, spl, width)
		return buf.WriteBytes(composed)
	}

	return writeAligned(buf, composed, width, spec.FillChar(), resolveAlign(spec.Align(), true))
}

func formatSigned(buf *Buffer, spec *ResolvedSpec) int   { return formatIntegerKind(buf, spec, true, &decimalFormat) }
func formatUnsigned(buf *Buffer, spec *ResolvedSpec) int { return formatIntegerKind(buf, spec, false, &decimalFormat) }
func formatBinary(buf *Buffer, spec *ResolvedSpec) int   { return formatIntegerKind(buf, spec, false, &binaryFormat) }
func formatOctal(buf *Buffer, spec *ResolvedSpec) int    { return formatIntegerKind(buf, spec, false, &octalFormat) }

func formatHex(buf *Buffer, spec *ResolvedSpec) int {
	if spec.Flags().has(FlagUpper) {
		return formatIntegerKind(buf, spec, false, &hexUpperFormat)
	}
	return formatIntegerKind(buf, spec, false, &hexLowerFormat)
}

// doubleBits decomposes an IEEE-754 double into sign/exponent/fraction,
// mirroring fmtlib.c's union double_raw.
type doubleBits struct {
	sign bool
	exp  uint64
	frac uint64
}

func decomposeDouble(bits uint64) doubleBits {
	return doubleBits{
		sign: bits>>63 != 0,
		exp:  (bits >> 52) & 0x7FF,
		frac: bits & 0xFFFFFFFFFFFFF,
	}
}

// formatDouble implements spec.md §4.2's floating-point rules: special
// encodings, zero, and the trunc/scale/round-half-to-even path, grounded on
// fmtlib.c's format_double.
func formatDouble(buf *Buffer, spec *ResolvedSpec) int {
	v := spec.Value()
	flags := spec.Flags()
	width := clampWidth(spec.Width())

	precision := spec.Precision()
	if precision <= 0 {
		precision = PrecisionDefault
	}
	if precision > PrecisionMax {
		precision = PrecisionMax
	}

	raw := math.Float64bits(v.Float64())
	bits := decomposeDouble(raw)

	n := 0
	var sign []byte
	if bits.sign {
		sign = append(sign, '-')
	} else if flags.has(FlagSign) {
		sign = append(sign, '+')
	} else if flags.has(FlagSpace) {
		sign = append(sign, ' ')
	}

	if bits.exp == 0x7FF && bits.frac == 0 {
		text := "inf"
		if flags.has(FlagUpper) {
			text = "INF"
		}
		out := append(append([]byte{}, sign...), text...)
		return writeAligned(buf, out, width, spec.FillChar(), resolveAlign(spec.Align(), true))
	}
	if bits.exp == 0x7FF && bits.frac != 0 {
		text := "nan"
		if flags.has(FlagUpper) {
			text = "NAN"
		}
		out := append(append([]byte{}, sign...), text...)
		return writeAligned(buf, out, width, spec.FillChar(), resolveAlign(spec.Align(), true))
	}
	if bits.exp == 0 && bits.frac == 0 {
		out := append([]byte{}, sign...)
		out = append(out, '0')
		if !flags.has(FlagAlt) {
			out = append(out, '.')
			for i := 0; i < precision; i++ {
				out = append(out, '0')
			}
		}
		if flags.has(FlagZero) && width > len(out) {
			out = applyZeroPad(out, len(sign), width)
			n += buf.WriteBytes(out)
			return n
		}
		return writeAligned(buf, out, width, spec.FillChar(), resolveAlign(spec.Align(), true))
	}

	absValue := v.Float64()
	if absValue < 0 {
		absValue = -absValue
	}

	whole := uint64(absValue)
	scaled := (absValue - float64(whole)) * pow10[precision]
	frac := uint64(scaled)
	delta := scaled - float64(frac)

	switch {
	case delta > 0.5:
		frac++
		// carry into whole only applies to the δ > 0.5 case per spec.md
		// §4.2; the round-half-to-even branch below intentionally does not
		// carry, matching fmtlib.c's format_double.
		if frac >= uint64(pow10[precision]) {
			frac = 0
			whole++
		}
	case delta < 0.5:
		// no change
	default:
		// round-half-to-even
		if frac == 0 || frac&1 != 0 {
			frac++
		}
	}

	writeDecimal := !(frac == 0 && flags.has(FlagAlt))

	out := append([]byte{}, sign...)
	wholeDigits := digitsOf(whole, &decimalFormat)
	out = append(out, wholeDigits...)

	if writeDecimal {
		out = append(out, '.')
		fracDigits := digitsOf(frac, &decimalFormat)
		out = append(out, fracDigits...)
		// pad with trailing zeros up to precision digits (spec.md §4.2;
		// fmtlib.c's format_double appends zero bytes after the digits it
		// already wrote rather than left-padding them).
		for i := len(fracDigits); i < precision; i++ {
			out = append(out, '0')
		}
	}

	if flags.has(FlagZero) && width > len(out) {
		out = applyZeroPad(out, len(sign), width)
		return buf.WriteBytes(out)
	}
	return writeAligned(buf, out, width, spec.FillChar(), resolveAlign(spec.Align(), true))
}

func formatString(buf *Buffer, spec *ResolvedSpec) int {
	v := spec.Value()
	s := v.Str
	if v.nilString {
		s = "(null)"
	}
	precision := spec.Precision()
	if precision >= 0 && precision < len(s) {
		s = s[:precision]
	}
	width := clampWidth(spec.Width())
	return writeAligned(buf, []byte(s), width, spec.FillChar(), resolveAlign(spec.Align(), false))
}

func formatChar(buf *Buffer, spec *ResolvedSpec) int {
	v := spec.Value()
	c := byte(v.Int64())
	var out []byte
	if c == 0 {
		out = []byte{'\\', '0'}
	} else {
		out = []byte{c}
	}
	width := clampWidth(spec.Width())
	return writeAligned(buf, out, width, spec.FillChar(), resolveAlign(spec.Align(), false))
}
