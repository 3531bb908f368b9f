package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// scientificPattern recognizes scientific notation directly, before any
// separator handling ("1.23E+02", "-4e5").
var scientificPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?[eE][+-]?\d+$`)

// numberShape is the coarse filter applied before separator analysis:
// digits mixed with period, comma, and space separators only.
var numberShape = regexp.MustCompile(`^[+-]?[\d.,\x{00A0} ]+$`)

// parseLocalizedNumber parses s as a number under one of three separator
// layouts: US (comma=thousands, period=decimal), EU (period=thousands,
// comma=decimal), or space-thousands. The format hint decides the layout
// when present; otherwise the separator heuristic applies, and genuinely
// ambiguous strings are flagged rather than rejected.
func parseLocalizedNumber(s, format string) (value float64, ambiguous, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, false
	}

	if scientificPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		return f, false, err == nil
	}

	if !numberShape.MatchString(s) {
		return 0, false, false
	}

	// Space-thousands layout: spaces between digit groups are grouping
	// only, the remaining separator (if any) must be decimal.
	if strings.ContainsAny(s, " \u00A0") {
		s = strings.NewReplacer(" ", "", "\u00A0", "").Replace(s)
	}

	decimal, ambiguous := decimalSeparator(s, format)

	cleaned := s
	switch decimal {
	case '.':
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case ',':
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	default:
		cleaned = strings.NewReplacer(",", "", ".", "").Replace(cleaned)
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false, false
	}
	return f, ambiguous, true
}

// decimalSeparator decides which of '.' or ',' acts as the decimal
// separator in s. It returns 0 when s carries no decimal part.
//
// With a format hint, the hint's own separators decide: whichever of '.'
// or ',' appears last in the hint is its decimal separator. Without a
// hint: when both separators appear, the later one is decimal; when a
// single separator appears once and is followed by exactly three digits
// it is read as thousands grouping (flagged ambiguous), one or two
// trailing digits make it a decimal point.
func decimalSeparator(s, format string) (sep rune, ambiguous bool) {
	if d := hintDecimalSeparator(format); d != 0 {
		return d, false
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return '.', false
		}
		return ',', false
	case lastDot < 0 && lastComma < 0:
		return 0, false
	}

	sepByte := byte('.')
	last := lastDot
	if lastComma >= 0 {
		sepByte = ','
		last = lastComma
	}

	if strings.Count(s, string(sepByte)) > 1 {
		// Repeated separator can only be grouping.
		return 0, false
	}

	trailing := len(s) - last - 1
	if trailing == 3 {
		// "1,234" / "1.234": read as thousands per the grouping heuristic,
		// but the EU/US reading disagrees, so surface the ambiguity.
		return 0, true
	}
	return rune(sepByte), false
}

// hintDecimalSeparator extracts the decimal separator from a display
// format like "#,##0.00" (US) or "#.##0,00" (EU). When the hint carries
// both separators the later one is decimal. A lone separator followed by
// exactly three placeholder digits is grouping, which makes the opposite
// separator the decimal one.
func hintDecimalSeparator(format string) rune {
	if format == "" {
		return 0
	}
	lastDot := strings.LastIndexByte(format, '.')
	lastComma := strings.LastIndexByte(format, ',')

	switch {
	case lastDot < 0 && lastComma < 0:
		return 0
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return '.'
		}
		return ','
	}

	sep, other, pos := '.', ',', lastDot
	if lastComma >= 0 {
		sep, other, pos = ',', '.', lastComma
	}
	if isPlaceholderGroup(format[pos+1:], 3) {
		return other
	}
	return sep
}

// isPlaceholderGroup reports whether s is exactly n digit placeholders.
func isPlaceholderGroup(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '#' && s[i] != '0' && s[i] != '?' {
			return false
		}
	}
	return true
}
