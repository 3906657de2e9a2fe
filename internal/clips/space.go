package clips

import (
	"strings"
	"unicode"
)

// SpaceClass is a regexp character class for whitespace in note text. It adds
// vertical tab, the Unicode space separators, the line and paragraph
// separators and the byte order mark to RE2's ASCII-only \s.
const SpaceClass = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// isSpace reports whether r belongs to SpaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
