package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/gridnorm/cellval"
)

func TestNormalize_USNumberWithFormatHint(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("1,234.56", "#,##0.00", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeNumber, r.Type)
	assert.InDelta(t, 1234.56, r.Value.Float64(), 1e-9)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, IssueNone, r.Issue)
}

func TestNormalize_EUNumberWithFormatHint(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("1.234,56", "#.##0,00", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeNumber, r.Type)
	assert.InDelta(t, 1234.56, r.Value.Float64(), 1e-9)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestNormalize_SingleSeparatorThousandsIsAmbiguous(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("1,234", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeNumber, r.Type)
	assert.Equal(t, int64(1234), r.Value.Int())
	assert.Equal(t, IssueAmbiguousFormat, r.Issue)
	assert.Less(t, r.Confidence, 1.0)
}

func TestNormalize_SerialDateFromNumericValue(t *testing.T) {
	svc := NewService()
	r := svc.Normalize(45602, "mm/dd/yyyy", TypeNumber)

	require.True(t, r.OK)
	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, "2024-11-05", r.Value.String())
	assert.Equal(t, 1.0, r.Confidence)
}

func TestNormalize_SerialDateFromTextWithDeclaredType(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("45602", "", TypeDate)

	require.True(t, r.OK)
	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, "2024-11-05", r.Value.String())
}

func TestNormalize_BooleanLexicon(t *testing.T) {
	svc := NewService()
	trueForms := []string{"Yes", "yes", "TRUE", "X", "x", "1", "☑", "✓"}
	for _, s := range trueForms {
		r := svc.Normalize(s, "", TypeUnknown)
		require.True(t, r.OK, "input %q", s)
		assert.Equal(t, TypeBoolean, r.Type, "input %q", s)
		assert.True(t, r.Value.Bool(), "input %q", s)
	}

	falseForms := []string{"No", "false", "0", "☐", "✗"}
	for _, s := range falseForms {
		r := svc.Normalize(s, "", TypeUnknown)
		assert.Equal(t, TypeBoolean, r.Type, "input %q", s)
		assert.False(t, r.Value.Bool(), "input %q", s)
	}
}

func TestNormalize_NumericOneStaysNumber(t *testing.T) {
	// The boolean lexicon applies to strings only. A numeric 1 is a number.
	svc := NewService()
	r := svc.Normalize(1, "", TypeUnknown)
	assert.Equal(t, TypeNumber, r.Type)
	assert.Equal(t, int64(1), r.Value.Int())
}

func TestNormalize_BlankInputIsEmptyAndOK(t *testing.T) {
	svc := NewService()
	for _, s := range []string{"", "   ", "\t"} {
		r := svc.Normalize(s, "", TypeUnknown)
		require.True(t, r.OK, "input %q", s)
		assert.True(t, r.IsEmpty(), "input %q", s)
		assert.Equal(t, TypeText, r.Type, "input %q", s)
	}
	r := svc.Normalize(nil, "", TypeUnknown)
	assert.True(t, r.OK)
	assert.True(t, r.IsEmpty())
}

func TestNormalize_BOMStrippedWithoutArtifactFlag(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("\uFEFFhello", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, "hello", r.Value.Text())
	assert.Equal(t, IssueNone, r.Issue)
}

func TestNormalize_ControlCharsFlagged(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("test\x01\x02", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, "test", r.Value.Text())
	assert.Equal(t, IssueEncodingArtifact, r.Issue)
}

func TestNormalize_TextIsIdempotent(t *testing.T) {
	svc := NewService()
	first := svc.Normalize("test\x01\x02", "", TypeUnknown)
	second := svc.Normalize(first.Value.Text(), "", TypeUnknown)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, IssueNone, second.Issue)
}

func TestNormalize_PercentageSuffix(t *testing.T) {
	svc := NewService()

	r := svc.Normalize("50%", "", TypeUnknown)
	require.True(t, r.OK)
	assert.Equal(t, TypePercentage, r.Type)
	assert.InDelta(t, 0.5, r.Value.Float64(), 1e-9)

	r = svc.Normalize("12.5%", "", TypeUnknown)
	assert.InDelta(t, 0.125, r.Value.Float64(), 1e-9)
}

func TestNormalize_PercentFormatScalesNumeric(t *testing.T) {
	svc := NewService()
	r := svc.Normalize(0.5, "0%", TypeUnknown)
	assert.Equal(t, TypePercentage, r.Type)
	assert.InDelta(t, 0.005, r.Value.Float64(), 1e-9)
}

func TestNormalize_CurrencySymbol(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("$1,234.56", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeCurrency, r.Type)
	assert.Equal(t, "USD", r.Currency)
	assert.InDelta(t, 1234.56, r.Value.Float64(), 1e-9)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestNormalize_CurrencyEUPayload(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("1.234,56 EUR", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeCurrency, r.Type)
	assert.Equal(t, "EUR", r.Currency)
	assert.InDelta(t, 1234.56, r.Value.Float64(), 1e-9)
}

func TestNormalize_CurrencyAmbiguousPayloadFlagged(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("$1,234", "", TypeUnknown)

	assert.Equal(t, TypeCurrency, r.Type)
	assert.Equal(t, IssueAmbiguousFormat, r.Issue)
	assert.Equal(t, int64(1234), r.Value.Int())
}

func TestNormalize_ISODate(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("2024-11-05", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, time.Date(2024, time.November, 5, 0, 0, 0, 0, time.UTC), r.Value.Time())
	assert.Equal(t, IssueNone, r.Issue)
}

func TestNormalize_AmbiguousDateDefaultsToUS(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("11/05/2024", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, time.November, r.Value.Time().Month())
	assert.Equal(t, 5, r.Value.Time().Day())
	assert.Equal(t, IssueAmbiguousFormat, r.Issue)
	assert.Less(t, r.Confidence, 1.0)
}

func TestNormalize_AmbiguousDateWithEUOrder(t *testing.T) {
	svc := NewService(WithDateOrder(OrderDMY))
	r := svc.Normalize("11/05/2024", "", TypeUnknown)

	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, time.May, r.Value.Time().Month())
	assert.Equal(t, 11, r.Value.Time().Day())
	assert.Equal(t, IssueAmbiguousFormat, r.Issue)
}

func TestNormalize_DateFormatHintResolvesAmbiguity(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("11/05/2024", "dd/mm/yyyy", TypeUnknown)

	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, time.May, r.Value.Time().Month())
	assert.Equal(t, 11, r.Value.Time().Day())
	assert.Equal(t, IssueNone, r.Issue)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestNormalize_ComponentAboveTwelveForcesOrder(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("13/05/2024", "", TypeUnknown)

	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, time.May, r.Value.Time().Month())
	assert.Equal(t, 13, r.Value.Time().Day())
	assert.Equal(t, IssueNone, r.Issue)
}

func TestNormalize_LongTextualDate(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("March 5, 2024", "", TypeUnknown)

	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, time.March, r.Value.Time().Month())
	assert.Equal(t, 5, r.Value.Time().Day())
}

func TestNormalize_ErrorMarkerText(t *testing.T) {
	svc := NewService()
	r := svc.Normalize(cellval.ErrorMarker+" #DIV/0!", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeError, r.Type)
}

func TestNormalize_UnparseableTextFallsBackToText(t *testing.T) {
	svc := NewService()
	r := svc.Normalize("not a number or date", "", TypeUnknown)

	require.True(t, r.OK)
	assert.Equal(t, TypeText, r.Type)
	assert.Equal(t, "not a number or date", r.Value.Text())
	assert.Equal(t, 1.0, r.Confidence)
}

func TestNormalize_CellValueDispatch(t *testing.T) {
	svc := NewService()

	r := svc.Normalize(cellval.Bool(true), "", TypeUnknown)
	assert.Equal(t, TypeBoolean, r.Type)

	ts := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	r = svc.Normalize(cellval.Time(ts), "", TypeUnknown)
	assert.Equal(t, TypeDate, r.Type)
	assert.Equal(t, ts, r.Value.Time())

	r = svc.Normalize(cellval.Text("$99"), "", TypeUnknown)
	assert.Equal(t, TypeCurrency, r.Type)

	r = svc.Normalize(cellval.Integer(7), "", TypeUnknown)
	assert.Equal(t, TypeNumber, r.Type)
}

func TestNormalize_NeverFailsForBusinessData(t *testing.T) {
	svc := NewService()
	inputs := []any{"garbage", "??", "12abc34", "2024-13-45", "-", "$", ""}
	for _, in := range inputs {
		r := svc.Normalize(in, "", TypeUnknown)
		assert.True(t, r.OK, "input %v", in)
	}
}
