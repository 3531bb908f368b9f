package gridnorm

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic. Critical marks an unusable sheet or
// file (passed through from the reader, never produced here), Error marks
// partial data loss, Warning a recoverable anomaly, Info an expected and
// benign condition.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
)

// String returns a human-readable name for the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	default:
		return "Invalid"
	}
}

// ParseSeverity maps a configuration string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, nil
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// Diagnostic is one severity-tagged finding collected during enrichment.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Ref locates the finding ("B4", "column Amount"); empty when the
	// finding is sheet-wide.
	Ref string
}

// String formats the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	if d.Ref == "" {
		return fmt.Sprintf("[%s] %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Ref, d.Message)
}

// Diagnostics is an ordered list of findings.
type Diagnostics []Diagnostic

// Filter returns the diagnostics with the given severity, preserving order.
func (ds Diagnostics) Filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Has reports whether any diagnostic carries the given severity.
func (ds Diagnostics) Has(sev Severity) bool {
	for _, d := range ds {
		if d.Severity == sev {
			return true
		}
	}
	return false
}
