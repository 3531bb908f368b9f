package normalize

import (
	"strings"
	"unicode"
)

// invisibleRunes are removed unconditionally: byte-order marks and
// zero-width characters that spreadsheet round-trips commonly leave
// behind. Removing these is not an encoding artifact.
var invisibleRunes = map[rune]bool{
	'\uFEFF': true, // byte-order mark / zero-width no-break space
	'\u200B': true, // zero-width space
	'\u200C': true, // zero-width non-joiner
	'\u200D': true, // zero-width joiner
	'\u2060': true, // word joiner
}

// cleanText applies the text hygiene stage: strip invisible characters,
// drop other non-printable control characters (flagging them), normalize
// line terminators to \n, and trim the ends while preserving internal
// whitespace.
func cleanText(s string) (cleaned string, artifact bool) {
	if s == "" {
		return "", false
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if invisibleRunes[r] {
			continue
		}
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			artifact = true
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String()), artifact
}
