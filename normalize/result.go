// Package normalize is the type-inference and parsing engine of the
// foundation layer. Given one raw value plus an optional display-format
// hint, it returns a canonical typed result with a confidence score and a
// quality flag. Unparseable business input never fails: it normalizes to
// cleaned text. Failure signaling is reserved for violated preconditions.
package normalize

import "github.com/javajack/gridnorm/cellval"

// DetectedType classifies the outcome of a normalization.
type DetectedType int

const (
	TypeUnknown DetectedType = iota
	TypeNumber
	TypeDate
	TypeCurrency
	TypePercentage
	TypeText
	TypeBoolean
	TypeError
)

// String returns a human-readable name for the DetectedType.
func (t DetectedType) String() string {
	switch t {
	case TypeUnknown:
		return "Unknown"
	case TypeNumber:
		return "Number"
	case TypeDate:
		return "Date"
	case TypeCurrency:
		return "Currency"
	case TypePercentage:
		return "Percentage"
	case TypeText:
		return "Text"
	case TypeBoolean:
		return "Boolean"
	case TypeError:
		return "Error"
	default:
		return "Invalid"
	}
}

// QualityIssue flags recoverable anomalies found while normalizing.
type QualityIssue int

const (
	IssueNone QualityIssue = iota
	IssueEncodingArtifact
	IssueAmbiguousFormat
)

// String returns a human-readable name for the QualityIssue.
func (q QualityIssue) String() string {
	switch q {
	case IssueNone:
		return "None"
	case IssueEncodingArtifact:
		return "EncodingArtifact"
	case IssueAmbiguousFormat:
		return "AmbiguousFormat"
	default:
		return "Invalid"
	}
}

// Result is the canonical outcome of one normalization call. It is created
// per call and never mutated afterward.
type Result struct {
	// OK is true for all parseable business input, including input that
	// falls through to cleaned text. It is false only on contract
	// violations, never for data problems.
	OK bool

	// Value is the canonical typed value.
	Value cellval.Value

	// Type classifies Value.
	Type DetectedType

	// Confidence scores the classification in [0,1]. Ambiguous outcomes
	// keep a reduced score instead of being rejected.
	Confidence float64

	// Issue flags a recoverable quality anomaly, if any.
	Issue QualityIssue

	// Currency holds the ISO currency code when Type is TypeCurrency.
	Currency string
}

// IsEmpty reports whether the result represents blank input.
func (r Result) IsEmpty() bool {
	return r.Value.IsEmpty()
}
