package normalize

import (
	"strings"
	"time"

	"github.com/javajack/gridnorm/cellval"
)

// Confidence levels attached to normalization outcomes. Exact matches and
// unambiguous parses score full confidence; heuristic locale or date-order
// guesses keep a reduced score and an AmbiguousFormat flag.
const (
	confidenceExact     = 1.0
	confidenceAmbiguous = 0.7
)

// Service is the data normalization engine. It is stateless per call and
// safe for concurrent use.
type Service struct {
	currency *CurrencyDetector
	order    DateOrder
}

// Option configures the Service.
type Option func(*Service)

// WithDateOrder sets the default day/month reading for ambiguous numeric
// dates (default OrderMDY, the US convention).
func WithDateOrder(order DateOrder) Option {
	return func(s *Service) { s.order = order }
}

// WithCurrencyDetector replaces the built-in currency detector.
func WithCurrencyDetector(d *CurrencyDetector) Option {
	return func(s *Service) {
		if d != nil {
			s.currency = d
		}
	}
}

// NewService creates a normalization service.
func NewService(opts ...Option) *Service {
	s := &Service{
		currency: NewCurrencyDetector(),
		order:    OrderMDY,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize produces the canonical typed result for one value. The value
// may be a primitive, a string, or a cellval.Value; format is the source
// cell's display format ("" when unknown); declared is the cell's declared
// type (TypeUnknown when undeclared).
//
// Normalize never fails for unparseable business input: such values come
// back as cleaned text with OK=true.
func (s *Service) Normalize(value any, format string, declared DetectedType) Result {
	switch v := value.(type) {
	case nil:
		return emptyResult()
	case cellval.Value:
		return s.normalizeCell(v, format, declared)
	case string:
		return s.normalizeText(v, format, declared)
	case bool:
		return booleanResult(v, IssueNone)
	case time.Time:
		return dateResult(v, confidenceExact, IssueNone)
	case int:
		return s.normalizeNumber(float64(v), format, declared)
	case int32:
		return s.normalizeNumber(float64(v), format, declared)
	case int64:
		return s.normalizeNumber(float64(v), format, declared)
	case float32:
		return s.normalizeNumber(float64(v), format, declared)
	case float64:
		return s.normalizeNumber(v, format, declared)
	default:
		// Unclassifiable content stays Unknown.
		return Result{OK: true, Value: cellval.Empty(), Type: TypeUnknown, Confidence: 0}
	}
}

// normalizeCell dispatches an already-typed cell value.
func (s *Service) normalizeCell(v cellval.Value, format string, declared DetectedType) Result {
	switch v.Kind() {
	case cellval.KindEmpty:
		return emptyResult()
	case cellval.KindText:
		return s.normalizeText(v.Text(), format, declared)
	case cellval.KindBool:
		return booleanResult(v.Bool(), IssueNone)
	case cellval.KindTime:
		return dateResult(v.Time(), confidenceExact, IssueNone)
	case cellval.KindInteger:
		return s.normalizeNumber(float64(v.Int()), format, declared)
	case cellval.KindFloat:
		return s.normalizeNumber(v.Float64(), format, declared)
	default:
		return Result{OK: true, Value: cellval.Empty(), Type: TypeUnknown, Confidence: 0}
	}
}

// normalizeNumber handles numeric primitives: a date-style display format
// (or a declared date type) reads the number as a serial date, a percent
// format scales it, anything else is a plain number.
func (s *Service) normalizeNumber(f float64, format string, declared DetectedType) Result {
	if declared == TypeDate || isDateFormat(format) {
		return dateResult(serialToTime(f), confidenceExact, IssueNone)
	}
	if strings.Contains(format, "%") {
		return Result{OK: true, Value: cellval.FromNumber(f / 100), Type: TypePercentage, Confidence: confidenceExact}
	}
	return Result{OK: true, Value: cellval.FromNumber(f), Type: TypeNumber, Confidence: confidenceExact}
}

// normalizeText runs the textual pipeline in its fixed stage order:
// blank check, hygiene, boolean lexicon, dates, percentage, currency,
// localized number, text fallback.
func (s *Service) normalizeText(raw, format string, declared DetectedType) Result {
	if strings.TrimSpace(raw) == "" {
		return emptyResult()
	}

	cleaned, artifact := cleanText(raw)
	issue := IssueNone
	if artifact {
		issue = IssueEncodingArtifact
	}
	if cleaned == "" {
		r := emptyResult()
		r.Issue = issue
		return r
	}

	if b, ok := parseBoolean(cleaned); ok {
		return booleanResult(b, issue)
	}

	if r, ok := s.tryDate(cleaned, format, declared, issue); ok {
		return r
	}

	if r, ok := s.tryPercentage(cleaned, format, issue); ok {
		return r
	}

	if r, ok := s.tryCurrency(cleaned, format, issue); ok {
		return r
	}

	if f, ambiguous, ok := parseLocalizedNumber(cleaned, format); ok {
		conf := confidenceExact
		if ambiguous && issue == IssueNone {
			issue = IssueAmbiguousFormat
			conf = confidenceAmbiguous
		}
		return Result{OK: true, Value: cellval.FromNumber(f), Type: TypeNumber, Confidence: conf, Issue: issue}
	}

	if strings.HasPrefix(cleaned, cellval.ErrorMarker) || strings.HasPrefix(cleaned, cellval.InvalidRefMarker) {
		return Result{OK: true, Value: cellval.Text(cleaned), Type: TypeError, Confidence: confidenceExact, Issue: issue}
	}

	return Result{OK: true, Value: cellval.Text(cleaned), Type: TypeText, Confidence: confidenceExact, Issue: issue}
}

// tryDate handles stage 4. Numeric text under a date-style format hint is
// a serial date; otherwise the textual forms are attempted.
func (s *Service) tryDate(cleaned, format string, declared DetectedType, issue QualityIssue) (Result, bool) {
	hintIsDate := isDateFormat(format)

	if hintIsDate || declared == TypeDate {
		if f, _, ok := parseLocalizedNumber(cleaned, ""); ok {
			return dateResult(serialToTime(f), confidenceExact, issue), true
		}
	}

	order := formatDateOrder(format, s.order)
	t, ambiguous, ok := parseTextualDate(cleaned, order, hintIsDate)
	if !ok {
		return Result{}, false
	}

	conf := confidenceExact
	if ambiguous && issue == IssueNone {
		issue = IssueAmbiguousFormat
		conf = confidenceAmbiguous
	}
	return dateResult(t, conf, issue), true
}

// tryPercentage handles stage 5: a literal "%" suffix or a percent format.
func (s *Service) tryPercentage(cleaned, format string, issue QualityIssue) (Result, bool) {
	hasSuffix := strings.HasSuffix(cleaned, "%")
	if !hasSuffix && !strings.Contains(format, "%") {
		return Result{}, false
	}

	payload := cleaned
	if hasSuffix {
		payload = strings.TrimSpace(strings.TrimSuffix(cleaned, "%"))
	}
	f, ambiguous, ok := parseLocalizedNumber(payload, format)
	if !ok {
		return Result{}, false
	}

	conf := confidenceExact
	if ambiguous && issue == IssueNone {
		issue = IssueAmbiguousFormat
		conf = confidenceAmbiguous
	}
	return Result{OK: true, Value: cellval.FromNumber(f / 100), Type: TypePercentage, Confidence: conf, Issue: issue}, true
}

// tryCurrency handles stage 6 by delegating symbol/code recognition to the
// CurrencyDetector and parsing the payload under the same locale rules as
// plain numbers.
func (s *Service) tryCurrency(cleaned, format string, issue QualityIssue) (Result, bool) {
	code, payload, found := s.currency.Detect(cleaned)
	if !found {
		return Result{}, false
	}
	f, ambiguous, ok := parseLocalizedNumber(payload, format)
	if !ok {
		return Result{}, false
	}

	conf := confidenceExact
	if ambiguous && issue == IssueNone {
		issue = IssueAmbiguousFormat
		conf = confidenceAmbiguous
	}
	return Result{
		OK:         true,
		Value:      cellval.FromNumber(f),
		Type:       TypeCurrency,
		Confidence: conf,
		Issue:      issue,
		Currency:   code,
	}, true
}

func emptyResult() Result {
	return Result{OK: true, Value: cellval.Empty(), Type: TypeText, Confidence: confidenceExact}
}

func booleanResult(b bool, issue QualityIssue) Result {
	return Result{OK: true, Value: cellval.Bool(b), Type: TypeBoolean, Confidence: confidenceExact, Issue: issue}
}

func dateResult(t time.Time, conf float64, issue QualityIssue) Result {
	return Result{OK: true, Value: cellval.Time(t), Type: TypeDate, Confidence: conf, Issue: issue}
}
