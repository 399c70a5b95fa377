package fmtlib

// driver.go implements the Format Driver of spec.md §4.6: single-pass
// scanning by default, switching to a two-pass mode the first time a
// specifier references an argument index the cursor hasn't reached yet.
//
// Grounded structurally on fmt.c's fmt_format (the LOAD_ARG macro and the
// arg_index/arg_count/loaded_arg_count bookkeeping become the argSlot
// tracking below), and on fractus.go's Encode, which similarly walks a
// plan, splits work that can be emitted immediately from work that must be
// deferred, and stitches the two back together at the end.

// ArgCursor is the Go shape of spec.md §6's "opaque forward-only cursor
// yielding values of a specified kind". Next must be called strictly in
// increasing index order; a real cursor (pkg/argscan) enforces this by
// constructon over a Go slice of arguments.
type ArgCursor interface {
	// Next returns the value at the cursor's current position,
	// interpreted as kind, and advances the cursor. ok is false once the
	// cursor is exhausted.
	Next(kind ArgKind) (Value, bool)
}

// argSlot holds one argument index's resolved value once the driver has
// pulled it from the cursor, plus the kind it was first resolved with
// (spec.md §9: "an argument's kind is determined by the first specifier
// that references it").
type argSlot struct {
	loaded bool
	kind   ArgKind
	value  Value
}

// argLoader pulls values out of an ArgCursor strictly in forward order,
// caching them by index so repeated references to the same index don't
// re-read the cursor. It is the single point where cursor.Next is called.
type argLoader struct {
	cursor  ArgCursor
	slots   []argSlot
	nextIdx int
}

func newArgLoader(cursor ArgCursor, maxArgs int) *argLoader {
	return &argLoader{cursor: cursor, slots: make([]argSlot, 0, maxArgs)}
}

func (l *argLoader) ensure(idx int) {
	for len(l.slots) <= idx {
		l.slots = append(l.slots, argSlot{})
	}
}

// loadUpTo advances the cursor until idx has been loaded. kindOf supplies
// the kind to request for any index from the cursor's current position up
// to and including idx; intermediate indices default to KindInt32 (the
// promotion every variadic register kind in spec §3 is compatible with)
// when kindOf has nothing recorded for them yet.
func (l *argLoader) loadUpTo(idx int, kindOf func(int) (ArgKind, bool)) {
	for l.nextIdx <= idx {
		l.ensure(l.nextIdx)
		kind := KindInt32
		if k, ok := kindOf(l.nextIdx); ok {
			kind = k
		}
		v, ok := l.cursor.Next(kind)
		if !ok {
			l.nextIdx++
			continue
		}
		l.slots[l.nextIdx] = argSlot{loaded: true, kind: kind, value: v}
		l.nextIdx++
	}
}

func (l *argLoader) get(idx int) argSlot {
	l.ensure(idx)
	return l.slots[idx]
}

// Format is the package's entry point, matching spec.md §6's
// format(template_bytes, output_buffer, output_capacity, max_args,
// argument_cursor) -> bytes_written, adapted to Go: dst is the caller-owned
// output region (Buffer reserves its last byte for the trailing NUL), reg
// resolves type tags, and cursor yields argument values on demand.
func Format(dst []byte, template string, maxArgs int, reg *Registry, cursor ArgCursor) int {
	buf := NewBuffer(dst)
	runDriver(&buf, []byte(template), maxArgs, reg, cursor)
	return buf.Written()
}

// pendingSpec is one specifier recorded while the driver is in two-pass
// mode, along with the byte span it occupies so the drained replay can
// walk straight to it without re-invoking the parser.
type pendingSpec struct {
	parsed parsedSpec
	offset int
	length int
}

// runDriver is the shared engine behind Format.
func runDriver(buf *Buffer, s []byte, maxArgs int, reg *Registry, cursor ArgCursor) {
	loader := newArgLoader(cursor, maxArgs)
	implicitIndex := 0
	argCount := 0

	// kindOf consults pending specifiers collected so far for a recorded
	// kind at idx; used both for the live single-pass resolution and for
	// the two-pass drain below.
	kindByIndex := map[int]ArgKind{}
	kindOf := func(idx int) (ArgKind, bool) {
		k, ok := kindByIndex[idx]
		return k, ok
	}
	recordKind := func(idx int, kind ArgKind) {
		if kind == KindNone {
			return
		}
		if _, ok := kindByIndex[idx]; !ok {
			kindByIndex[idx] = kind
		}
	}

	i := 0
	twoPass := false
	twoPassStart := 0
	var pending []pendingSpec

	for i < len(s) {
		c := s[i]

		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			if !twoPass {
				buf.WriteByte('{')
			}
			i += 2
			continue
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			if !twoPass {
				buf.WriteByte('}')
			}
			i += 2
			continue
		case c != '{':
			if !twoPass {
				buf.WriteByte(c)
			}
			i++
			continue
		}

		consumed, ps := parseSpecifier(s, i, maxArgs, &implicitIndex, &argCount)
		if !ps.valid {
			i += consumed
			continue
		}

		// The spec references an argument index beyond what forward,
		// implicit-order consumption has reached so far: switch to
		// two-pass mode, mirroring fmt.c's "arg_count > arg_index + 1"
		// single-pass exit condition.
		if !twoPass && argCount > implicitIndex+1 {
			twoPass = true
			twoPassStart = i
		}

		if twoPass {
			_, kind, _, found := reg.Resolve(ps.typeTag)
			if found {
				recordKind(ps.valueIndex, kind)
			}
			if ps.width.isIndex {
				recordKind(ps.width.index, KindInt32)
			}
			if ps.precision.isIndex {
				recordKind(ps.precision.index, KindInt32)
			}
			if len(pending) < MaxSpecsDefault {
				// Excess tracked specifiers beyond the cap are skipped
				// silently (spec.md §4.6): they emit nothing and are not
				// replayed, rather than overflowing the tracking table.
				pending = append(pending, pendingSpec{parsed: ps, offset: i, length: consumed})
			}
			i += consumed
			continue
		}

		emitResolved(buf, ps, reg, loader, kindOf, recordKind)
		i += consumed
	}

	if !twoPass {
		return
	}

	highWater := -1
	for _, p := range pending {
		if r := maxReferencedIndex(p.parsed); r > highWater {
			highWater = r
		}
	}
	if highWater >= 0 {
		loader.loadUpTo(highWater, kindOf)
	}

	// Re-scan from the point two-pass mode began, this time emitting
	// literal bytes and dispatching the tracked specifiers for real
	// (spec.md §4.6: "re-scans the template from the point where two-pass
	// began, emitting literal bytes and driving dispatch").
	pendingByOffset := make(map[int]pendingSpec, len(pending))
	for _, p := range pending {
		pendingByOffset[p.offset] = p
	}

	j := twoPassStart
	for j < len(s) {
		c := s[j]

		switch {
		case c == '{' && j+1 < len(s) && s[j+1] == '{':
			buf.WriteByte('{')
			j += 2
			continue
		case c == '}' && j+1 < len(s) && s[j+1] == '}':
			buf.WriteByte('}')
			j += 2
			continue
		case c != '{':
			buf.WriteByte(c)
			j++
			continue
		}

		if p, ok := pendingByOffset[j]; ok {
			emitResolved(buf, p.parsed, reg, loader, kindOf, recordKind)
			j += p.length
			continue
		}

		// A '{' that was invalid or skipped (cap overflow, bad structure)
		// during tracking: resync the same way the live parser does.
		j += resyncAfterError(s, j)
	}
}

func maxReferencedIndex(ps parsedSpec) int {
	max := ps.valueIndex
	if ps.width.isIndex && ps.width.index > max {
		max = ps.width.index
	}
	if ps.precision.isIndex && ps.precision.index > max {
		max = ps.precision.index
	}
	return max
}

// emitResolved resolves ps's type tag, loads whatever argument slots it
// references, and either dispatches to the formatter or emits the
// unknown-type/invalid-specifier fallback text spec.md §4.6/§7 specify.
func emitResolved(buf *Buffer, ps parsedSpec, reg *Registry, loader *argLoader, kindOf func(int) (ArgKind, bool), recordKind func(int, ArgKind)) {
	formatter, kind, extraFlags, found := reg.Resolve(ps.typeTag)
	if !found {
		buf.WriteByte('{')
		buf.WriteBytes([]byte("bad type: "))
		buf.WriteBytes([]byte(ps.typeTag))
		buf.WriteByte('}')
		return
	}
	recordKind(ps.valueIndex, kind)

	loader.loadUpTo(ps.valueIndex, kindOf)
	slot := loader.get(ps.valueIndex)
	if !slot.loaded {
		return
	}
	if kind != KindNone && !slot.kind.compatibleWith(kind) {
		// First-resolved kind wins; a later conflicting reference is a
		// no-op per spec.md §9's resolution of the "{0:d} {0:s}" case.
		return
	}

	width := ps.width.literal
	if ps.width.isIndex {
		recordKind(ps.width.index, KindInt32)
		loader.loadUpTo(ps.width.index, kindOf)
		if ws := loader.get(ps.width.index); ws.loaded {
			width = int(ws.value.Int64())
		}
	}
	if width > MaxWidth {
		width = MaxWidth
	}
	if width < 0 {
		width = 0
	}

	precision := -1
	if ps.precision.set {
		precision = ps.precision.literal
		if ps.precision.isIndex {
			recordKind(ps.precision.index, KindInt32)
			loader.loadUpTo(ps.precision.index, kindOf)
			if pv := loader.get(ps.precision.index); pv.loaded {
				precision = int(pv.value.Int64())
			}
		}
	}

	rs := resolvedSpec{
		parsedSpec: ps,
		formatter:  formatter,
		argKind:    kind,
		value:      slot.value,
		width:      width,
		precision:  precision,
	}
	rs.flags |= extraFlags

	if formatter == nil {
		// No-type pass-through: alignment-only, used when typeTag == "".
		writeAligned(buf, []byte{}, width, rs.fillChar, resolveAlign(rs.align, false))
		return
	}

	view := ResolvedSpec{inner: &rs}
	formatter(buf, &view)
}

// compatibleWith reports whether a slot's already-resolved kind can serve a
// specifier that resolved to want. KindNone (the no-type pass-through)
// never conflicts.
func (k ArgKind) compatibleWith(want ArgKind) bool {
	if want == KindNone || k == KindNone {
		return true
	}
	return k == want
}
