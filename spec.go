package fmtlib

// Flag is a bitset over the specifier flags recognized by the grammar in
// spec.md §4.4.
type Flag int

const (
	FlagAlt   Flag = 1 << 0 // '#' - alternate form (base prefix / suppress trailing .0)
	FlagUpper Flag = 1 << 1 // '!' - uppercase form
	FlagSign  Flag = 1 << 2 // '+' - always print sign
	FlagSpace Flag = 1 << 3 // ' ' - leave a space in front of positive numerics
	FlagZero  Flag = 1 << 4 // '0' - zero-pad between sign/prefix and digits
)

func (f Flag) has(bit Flag) bool { return f&bit != 0 }

// Align identifies how padding is distributed around formatted text
// (spec.md §4.5).
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	// alignDefault marks "no explicit alignment was given in the template";
	// the formatter resolves it to AlignRight for numerics and AlignLeft
	// otherwise (spec.md §9 Open Question, resolved in SPEC_FULL.md §E.5).
	alignDefault
)

const (
	// MaxWidth is the largest width/precision value honored; larger values
	// are silently clamped (spec.md §5, §7).
	MaxWidth = 256
	// MaxTypeLen is the largest type tag length in bytes (spec.md §3, §5).
	MaxTypeLen = 16
	// MaxArgsDefault is the minimum guaranteed MAX_ARGS (spec.md §5).
	MaxArgsDefault = 16
	// MaxSpecsDefault is the minimum guaranteed two-pass specifier cap
	// (spec.md §5).
	MaxSpecsDefault = 64
	// PrecisionDefault is the default float precision (spec.md §4.2).
	PrecisionDefault = 6
	// PrecisionMax is the largest float precision honored (spec.md §4.2).
	PrecisionMax = 9
	// RegistryCapacity is the fixed capacity of the Type Registry
	// (spec.md §3: "Capacity fixed (>= 128)").
	RegistryCapacity = 128
)

// widthSpec carries either a literal width/precision or an index into the
// argument array, mirroring spec.md §3's "either a literal nonnegative
// integer, or an index into the value array" variant.
type widthSpec struct {
	literal int
	index   int
	isIndex bool
	set     bool // only meaningful for precision: "unset" sentinel
}

// parsedSpec is one parsed `{...}` token (spec.md §3 "Parsed Specifier").
// Grounded on fmt.c's parsed_fmt_spec_t.
type parsedSpec struct {
	valueIndex int
	width      widthSpec
	precision  widthSpec
	flags      Flag
	align      Align
	fillChar   byte
	typeTag    string
	endOffset  int
	valid      bool
}

// resolvedSpec is a parsedSpec plus its looked-up formatter, argument kind
// and resolved integer width/precision/value (spec.md §3 "Resolved
// Specifier").
type resolvedSpec struct {
	parsedSpec
	formatter Formatter
	argKind   ArgKind
	value     Value
	width     int
	precision int // -1 means unset
}

// Formatter writes buf the way spec.md §6's registration API describes:
// "(buffer, resolved_spec) -> bytes_written". Custom formatters read their
// value out of spec.Value() according to the kind they registered with.
type Formatter func(buf *Buffer, spec *ResolvedSpec) int

// ResolvedSpec is the read-only view a registered Formatter receives. It
// wraps the internal resolvedSpec so custom formatter code outside this
// package cannot mutate parser-internal state.
type ResolvedSpec struct {
	inner *resolvedSpec
}

// Value returns the argument value this specifier resolved to.
func (r *ResolvedSpec) Value() Value { return r.inner.value }

// Flags returns the parsed flag bitset.
func (r *ResolvedSpec) Flags() Flag { return r.inner.flags }

// Width returns the resolved width, clamped to [0, MaxWidth].
func (r *ResolvedSpec) Width() int { return r.inner.width }

// Precision returns the resolved precision, or -1 if unset.
func (r *ResolvedSpec) Precision() int { return r.inner.precision }

// Align returns the parsed alignment.
func (r *ResolvedSpec) Align() Align { return r.inner.align }

// FillChar returns the fill byte used for alignment padding.
func (r *ResolvedSpec) FillChar() byte { return r.inner.fillChar }

// TypeTag returns the raw type tag text from the template.
func (r *ResolvedSpec) TypeTag() string { return r.inner.typeTag }
