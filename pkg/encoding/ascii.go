// Package encoding provides text helpers for the ASCII-only parts of the
// mesh interchange formats.
package encoding

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ToASCII folds s to printable ASCII. Accents are stripped after canonical
// decomposition; any other non-ASCII or control rune becomes '_'.
func ToASCII(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(printable),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.Map(printable, s)
	}
	return out
}

func printable(r rune) rune {
	if r < 0x20 || r > 0x7e {
		return '_'
	}
	return r
}

// Token returns s folded to ASCII with whitespace replaced by '_', so it can
// be used as a single word in line-oriented formats. Empty input yields "mesh".
func Token(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, ToASCII(s))
	if s == "" {
		return "mesh"
	}
	return s
}

// FixedASCII returns s folded to ASCII, left-justified in a size-byte field
// padded with spaces and truncated if longer.
func FixedASCII(s string, size int) []byte {
	out := make([]byte, size)
	n := copy(out, ToASCII(s))
	for i := n; i < size; i++ {
		out[i] = ' '
	}
	return out
}

// FileName returns s as a single safe path element. It is Token with path
// separators and characters reserved on common filesystems replaced by '_',
// ".." collapsed to '_' and no leading dot.
func FileName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, Token(s))
	s = strings.ReplaceAll(s, "..", "_")
	if strings.HasPrefix(s, ".") {
		s = "_" + s[1:]
	}
	return s
}
