package normalize

import (
	"regexp"
	"strings"
	"time"
)

// DateOrder selects the day/month reading of ambiguous numeric dates.
type DateOrder int

const (
	OrderMDY DateOrder = iota // US convention, the default
	OrderDMY                  // EU convention
)

// String returns a human-readable name for the DateOrder.
func (o DateOrder) String() string {
	if o == OrderDMY {
		return "DMY"
	}
	return "MDY"
}

// serialEpoch anchors spreadsheet serial dates. Serial 1 is 1899-12-31;
// serials past the phantom 1900 leap day are corrected by one day.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// phantomLeapSerial is the serial number the 1900 date system assigns to
// the nonexistent 1900-02-29.
const phantomLeapSerial = 60

// serialToTime converts a day-count serial into a timestamp, applying the
// historical leap-year correction. Fractional days become clock time.
func serialToTime(serial float64) time.Time {
	days := int(serial)
	frac := serial - float64(days)

	t := serialEpoch.AddDate(0, 0, days)
	if serial > phantomLeapSerial {
		t = t.AddDate(0, 0, -1)
	}
	if frac > 0 {
		t = t.Add(time.Duration(frac * float64(24 * time.Hour)))
	}
	return t
}

// formatLiterals matches literal and color sections of a display format,
// stripped before its structural tokens are inspected.
var formatLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// isDateFormat reports whether a display format encodes a day/month/year
// pattern, e.g. "mm/dd/yyyy", "d-mmm-yy", "yyyy-mm-dd h:mm".
func isDateFormat(format string) bool {
	if format == "" {
		return false
	}
	f := strings.ToLower(formatLiterals.ReplaceAllString(format, ""))
	if strings.Contains(f, "#") || strings.Contains(f, "%") {
		return false
	}
	if strings.Contains(f, "yy") {
		return true
	}
	return strings.Contains(f, "d") && strings.Contains(f, "m")
}

// formatDateOrder derives the day/month order a date format implies.
// The fallback is used when the format is not a date pattern.
func formatDateOrder(format string, fallback DateOrder) DateOrder {
	if !isDateFormat(format) {
		return fallback
	}
	f := strings.ToLower(formatLiterals.ReplaceAllString(format, ""))
	d := strings.IndexByte(f, 'd')
	m := strings.IndexByte(f, 'm')
	if d < 0 || m < 0 {
		return fallback
	}
	if d < m {
		return OrderDMY
	}
	return OrderMDY
}

// numericDatePattern matches three numeric date components separated by
// "/", "-", or ".".
var numericDatePattern = regexp.MustCompile(`^(\d{1,4})([/\-.])(\d{1,2})([/\-.])(\d{1,4})$`)

// longDateLayouts accept dates written with a month name.
var longDateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"02-Jan-06",
}

// parseTextualDate parses s as a calendar date. ISO order is always
// unambiguous. For the numeric day/month forms, a component above 12
// forces the reading; otherwise the order decides, and when that order was
// only a default (hinted == false) the result is flagged ambiguous rather
// than rejected.
func parseTextualDate(s string, order DateOrder, hinted bool) (t time.Time, ambiguous, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}

	m := numericDatePattern.FindStringSubmatch(s)
	if m == nil || m[2] != m[4] {
		for _, layout := range longDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, false, true
			}
		}
		return time.Time{}, false, false
	}

	first, third := m[1], m[5]

	// ISO form: four-digit year first.
	if len(first) == 4 {
		return makeDate(atoi(first), atoi(m[3]), atoi(third))
	}
	if len(first) > 2 || len(third) > 4 {
		return time.Time{}, false, false
	}

	a, b := atoi(first), atoi(m[3])
	year := normalizeYear(atoi(third))

	switch {
	case a > 12 && b <= 12:
		return makeDate(year, b, a)
	case b > 12 && a <= 12:
		return makeDate(year, a, b)
	case a > 12 && b > 12:
		return time.Time{}, false, false
	}

	// Both components could be a month. Follow the requested order; when
	// it was only the default convention, keep the value but flag it.
	day, month := a, b
	if order == OrderMDY {
		day, month = b, a
	}
	t, _, ok = makeDate(year, month, day)
	if !ok {
		return time.Time{}, false, false
	}
	if !hinted && a != b {
		return t, true, true
	}
	return t, false, true
}

// makeDate validates the components and builds a UTC midnight timestamp.
func makeDate(year, month, day int) (time.Time, bool, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return time.Time{}, false, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject rollover like Feb 30 → Mar 2.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false, false
	}
	return t, false, true
}

// normalizeYear expands two-digit years: 00–69 → 2000s, 70–99 → 1900s.
func normalizeYear(y int) int {
	switch {
	case y >= 100:
		return y
	case y < 70:
		return y + 2000
	default:
		return y + 1900
	}
}

func atoi(s string) int {
	n := 0
	for _, ch := range s {
		n = n*10 + int(ch-'0')
	}
	return n
}
