package fmtlib

// parser.go implements the specifier grammar (spec.md §4.4):
//
//	{ [index] [ ':' [ [ '$' fill ] align ] flags width [ '.' precision ] [type] ] '}'
//
// Grounded on the original source's fmt.c parse_fmt_spec, which is written
// as a goto-driven state machine with a "fast path" that jumps straight to
// whichever section the next character can only belong to. Go has no
// goto-into-a-later-block, and the fast path is a pure performance shortcut
// rather than a semantic branch (every skipped section is a no-op for the
// characters that trigger the jump), so this port runs the sections in
// grammar order unconditionally — each section simply matches zero bytes
// when its leading character doesn't apply.

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlignChar(c byte) bool { return c == '<' || c == '^' || c == '>' }

// readInt reads a run of decimal digits starting at i, returning the parsed
// value and the index just past the last digit.
func readInt(s []byte, i int) (int, int) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n := 0
	for _, c := range s[start:i] {
		n = n*10 + int(c-'0')
	}
	return n, i
}

// resyncAfterError scans from start for the next '}' (inclusive) and
// returns the number of bytes to skip, matching spec.md §7's "scanner
// resynchronizes at the next }".
func resyncAfterError(s []byte, start int) int {
	j := start
	for j < len(s) && s[j] != '}' {
		j++
	}
	if j < len(s) {
		j++
	}
	return j - start
}

// parseSpecifier parses one specifier beginning at s[start] == '{'. It
// returns the number of bytes consumed (always >= 1) and the parsed
// specifier. implicitIndex and argCount are threaded through repeated
// calls the way fmt.c's arg_index/arg_count out-parameters are.
func parseSpecifier(s []byte, start int, maxArgs int, implicitIndex, argCount *int) (int, parsedSpec) {
	invalid := func() (int, parsedSpec) {
		return resyncAfterError(s, start), parsedSpec{valid: false}
	}

	i := start + 1
	if i >= len(s) {
		return invalid()
	}

	// ====== index ======
	var index int
	if isDigit(s[i]) {
		index, i = readInt(s, i)
		if index >= maxArgs {
			return invalid()
		}
	} else {
		if *implicitIndex >= maxArgs {
			return invalid()
		}
		index = *implicitIndex
		*implicitIndex++
	}

	if i >= len(s) {
		return invalid()
	}

	atType := false
	switch s[i] {
	case '}':
		atType = true
	case ':':
		i++
	default:
		return invalid()
	}

	flags := Flag(0)
	align := alignDefault
	fillChar := byte(' ')
	width := widthSpec{}
	precision := widthSpec{}

	if !atType {
		// ====== align ======
		if i >= len(s) {
			return invalid()
		}
		if s[i] == '$' {
			i++
			if i >= len(s) {
				return invalid()
			}
			fillChar = s[i]
			i++
			if i >= len(s) || !isAlignChar(s[i]) {
				return invalid()
			}
		}
		if i < len(s) && isAlignChar(s[i]) {
			switch s[i] {
			case '<':
				// spec.md §8's scenario table pairs explicit '<' with
				// right-justified output (and '>' with left-justified),
				// the inverse of the printf-family convention the glyphs
				// alone would suggest.
				align = AlignRight
			case '^':
				align = AlignCenter
			case '>':
				align = AlignLeft
			}
			i++
		}

		// ====== flags ======
	flagsLoop:
		for i < len(s) {
			switch s[i] {
			case '#':
				flags |= FlagAlt
			case '!':
				flags |= FlagUpper
			case '0':
				flags |= FlagZero
				fillChar = '0'
			case '+':
				flags |= FlagSign
			case ' ':
				flags |= FlagSpace
			default:
				break flagsLoop
			}
			i++
		}

		// ====== width ======
		if i >= len(s) {
			return invalid()
		}
		if isDigit(s[i]) {
			width.literal, i = readInt(s, i)
		} else if s[i] == '*' {
			i++
			if i >= len(s) {
				return invalid()
			}
			if isDigit(s[i]) {
				width.index, i = readInt(s, i)
				width.isIndex = true
				if width.index >= maxArgs {
					return invalid()
				}
			} else {
				if *implicitIndex >= maxArgs {
					return invalid()
				}
				width.index = *implicitIndex
				width.isIndex = true
				*implicitIndex++
			}
		}

		// ====== precision ======
		if i >= len(s) {
			return invalid()
		}
		if s[i] == '.' {
			i++
			if i >= len(s) {
				return invalid()
			}
			if isDigit(s[i]) {
				precision.literal, i = readInt(s, i)
				precision.set = true
			} else if s[i] == '*' {
				i++
				if i >= len(s) {
					return invalid()
				}
				if isDigit(s[i]) {
					precision.index, i = readInt(s, i)
					precision.isIndex = true
					precision.set = true
					if precision.index >= maxArgs {
						return invalid()
					}
				} else {
					if *implicitIndex >= maxArgs {
						return invalid()
					}
					precision.index = *implicitIndex
					precision.isIndex = true
					precision.set = true
					*implicitIndex++
				}
			} else {
				return invalid()
			}
		}
	}

	// ====== type ======
	typeStart := i
	for i < len(s) && s[i] != '}' {
		i++
	}
	if i >= len(s) {
		return invalid()
	}
	typeTag := string(s[typeStart:i])
	i++ // consume '}'

	maxArgIndex := index
	if width.isIndex && width.index > maxArgIndex {
		maxArgIndex = width.index
	}
	if precision.isIndex && precision.index > maxArgIndex {
		maxArgIndex = precision.index
	}
	if maxArgIndex+1 > *argCount {
		*argCount = maxArgIndex + 1
	}

	return i - start, parsedSpec{
		valueIndex: index,
		width:      width,
		precision:  precision,
		flags:      flags,
		align:      align,
		fillChar:   fillChar,
		typeTag:    typeTag,
		endOffset:  i,
		valid:      true,
	}
}
