package fmtlib

// printf.go adds ParsePrintfType, a secondary printf-style type grammar
// that the original C implementation's fmtlib_parse_printf_type validated
// custom registrations against. It is independent of the brace grammar
// (parser.go): it recognizes a single letter from the built-in tag
// alphabet, optionally preceded by the "ll" or "z" width prefix.
//
// Dropped from the distilled spec but kept here because a caller building
// a custom Formatter can use it to sanity-check a type string before
// calling RegisterType, the same role it served in the original.

// ParsePrintfType recognizes one printf-style type token at the start of s
// (e.g. "d", "lld", "zx", "f"). It returns the number of bytes consumed and
// true on a match; on no match it returns 0, false.
func ParsePrintfType(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	switch s[0] {
	case 'd', 'u', 'b', 'o', 'x', 'X', 'f', 'F', 's', 'c', 'p':
		return 1, true
	case 'l':
		if len(s) >= 3 && s[1] == 'l' && isIntegralTypeLetter(s[2]) {
			return 3, true
		}
	case 'z':
		if len(s) >= 2 && isIntegralTypeLetter(s[1]) {
			return 2, true
		}
	}
	return 0, false
}

func isIntegralTypeLetter(c byte) bool {
	switch c {
	case 'd', 'u', 'b', 'o', 'x', 'X':
		return true
	default:
		return false
	}
}
