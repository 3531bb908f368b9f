package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSerialToTime_KnownSerials(t *testing.T) {
	assert.Equal(t, date(1899, time.December, 31), serialToTime(1))
	assert.Equal(t, date(2024, time.November, 5), serialToTime(45602))
}

func TestSerialToTime_FractionBecomesClock(t *testing.T) {
	got := serialToTime(45602.5)
	assert.Equal(t, 12, got.Hour())
	assert.Equal(t, 5, got.Day())
}

func TestSerialToTime_BeforePhantomLeapDay(t *testing.T) {
	// Serials up to 60 take no correction.
	assert.Equal(t, date(1900, time.January, 1), serialToTime(2))
	assert.Equal(t, date(1900, time.February, 28), serialToTime(60))
}

func TestIsDateFormat(t *testing.T) {
	dateFormats := []string{"mm/dd/yyyy", "d-mmm-yy", "yyyy-mm-dd", "m/d/yyyy h:mm", "dd.mm.yy"}
	for _, f := range dateFormats {
		assert.True(t, isDateFormat(f), "format %q", f)
	}

	nonDate := []string{"", "#,##0.00", "0%", "0.00", "General"}
	for _, f := range nonDate {
		assert.False(t, isDateFormat(f), "format %q", f)
	}
}

func TestFormatDateOrder(t *testing.T) {
	assert.Equal(t, OrderDMY, formatDateOrder("dd/mm/yyyy", OrderMDY))
	assert.Equal(t, OrderMDY, formatDateOrder("mm/dd/yyyy", OrderDMY))
	assert.Equal(t, OrderMDY, formatDateOrder("", OrderMDY))
	assert.Equal(t, OrderDMY, formatDateOrder("#,##0", OrderDMY))
}

func TestParseTextualDate_ISO(t *testing.T) {
	got, ambiguous, ok := parseTextualDate("2024-11-05", OrderMDY, false)
	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, date(2024, time.November, 5), got)
}

func TestParseTextualDate_AmbiguousFollowsOrder(t *testing.T) {
	got, ambiguous, ok := parseTextualDate("11/05/2024", OrderMDY, false)
	require.True(t, ok)
	assert.True(t, ambiguous)
	assert.Equal(t, date(2024, time.November, 5), got)

	got, ambiguous, ok = parseTextualDate("11/05/2024", OrderDMY, false)
	require.True(t, ok)
	assert.True(t, ambiguous)
	assert.Equal(t, date(2024, time.May, 11), got)
}

func TestParseTextualDate_HintedOrderNotAmbiguous(t *testing.T) {
	got, ambiguous, ok := parseTextualDate("11/05/2024", OrderDMY, true)
	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, date(2024, time.May, 11), got)
}

func TestParseTextualDate_EqualComponentsNotAmbiguous(t *testing.T) {
	got, ambiguous, ok := parseTextualDate("05/05/2024", OrderMDY, false)
	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, date(2024, time.May, 5), got)
}

func TestParseTextualDate_ComponentAboveTwelveForcesReading(t *testing.T) {
	got, ambiguous, ok := parseTextualDate("13/05/2024", OrderMDY, false)
	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, date(2024, time.May, 13), got)

	got, ambiguous, ok = parseTextualDate("05/13/2024", OrderDMY, false)
	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, date(2024, time.May, 13), got)
}

func TestParseTextualDate_TwoDigitYears(t *testing.T) {
	got, _, ok := parseTextualDate("11/05/24", OrderMDY, true)
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year())

	got, _, ok = parseTextualDate("11/05/85", OrderMDY, true)
	require.True(t, ok)
	assert.Equal(t, 1985, got.Year())
}

func TestParseTextualDate_LongForms(t *testing.T) {
	cases := []string{
		"March 5, 2024",
		"Mar 5, 2024",
		"5 March 2024",
		"05-Mar-2024",
	}
	for _, tc := range cases {
		got, ambiguous, ok := parseTextualDate(tc, OrderMDY, false)
		require.True(t, ok, "input %q", tc)
		assert.False(t, ambiguous, "input %q", tc)
		assert.Equal(t, date(2024, time.March, 5), got, "input %q", tc)
	}
}

func TestParseTextualDate_Rejects(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"13/13/2024", // both components above 12
		"02/30/2024", // rollover
		"2024-13-01", // ISO with invalid month
		"11/05-2024", // mixed separators
		"123/4/2024",
	}
	for _, tc := range cases {
		_, _, ok := parseTextualDate(tc, OrderMDY, false)
		assert.False(t, ok, "input %q", tc)
	}
}
