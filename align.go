package fmtlib

// align.go implements the alignment pass of spec.md §4.5, grounded on
// fmtlib.c's apply_alignment.

// resolveAlign turns the parser's alignDefault sentinel into a concrete
// alignment. Per SPEC_FULL.md §E.5 (spec.md §9's open design choice),
// numeric types default to right-alignment and everything else (strings,
// chars, the no-type pass-through) defaults to left-alignment.
func resolveAlign(a Align, numeric bool) Align {
	if a != alignDefault {
		return a
	}
	if numeric {
		return AlignRight
	}
	return AlignLeft
}

// writeAligned pads text to width using fill and align, writing the result
// into buf. If text is already at least width bytes, it is written
// unchanged.
func writeAligned(buf *Buffer, text []byte, width int, fill byte, align Align) int {
	if len(text) >= width {
		return buf.WriteBytes(text)
	}

	pad := width - len(text)
	n := 0
	switch align {
	case AlignLeft:
		n += buf.WriteBytes(text)
		n += buf.WriteRepeat(fill, pad)
	case AlignRight:
		n += buf.WriteRepeat(fill, pad)
		n += buf.WriteBytes(text)
	case AlignCenter:
		left := pad / 2
		right := pad - left
		n += buf.WriteRepeat(fill, left)
		n += buf.WriteBytes(text)
		n += buf.WriteRepeat(fill, right)
	}
	return n
}
