// Package column aggregates per-cell normalization results into per-column
// metadata: a dominant type, counts, value ranges, and anomaly flags.
package column

import (
	"fmt"
	"strings"
	"time"

	"github.com/javajack/gridnorm/normalize"
)

// Anomaly is a bit set of column-level anomaly flags.
type Anomaly uint

const (
	// AnomalyMixedTypes marks a column where a minority of non-empty cells
	// disagrees with the dominant type beyond the configured threshold.
	AnomalyMixedTypes Anomaly = 1 << iota
	// AnomalyDuplicateHeader marks a column whose header collides
	// (case-insensitively) with an earlier column in the same sheet.
	AnomalyDuplicateHeader
	// AnomalyEmptyColumn marks a column with no non-empty cells.
	AnomalyEmptyColumn
)

// Has reports whether the flag is set.
func (a Anomaly) Has(flag Anomaly) bool { return a&flag != 0 }

// String lists the set flags.
func (a Anomaly) String() string {
	if a == 0 {
		return "None"
	}
	var parts []string
	if a.Has(AnomalyMixedTypes) {
		parts = append(parts, "MixedTypes")
	}
	if a.Has(AnomalyDuplicateHeader) {
		parts = append(parts, "DuplicateHeader")
	}
	if a.Has(AnomalyEmptyColumn) {
		parts = append(parts, "EmptyColumn")
	}
	return strings.Join(parts, "|")
}

// DefaultMinorityThreshold is the fraction of non-empty cells that may
// disagree with the dominant type before MixedTypes is flagged.
const DefaultMinorityThreshold = 0.10

// Metadata describes one column of one sheet. It is recomputed whenever
// the sheet's enrichment runs and never patched in place.
type Metadata struct {
	Header     string
	Type       normalize.DetectedType
	NonEmpty   int
	Distinct   int
	NumericMin *float64
	NumericMax *float64
	TimeMin    *time.Time
	TimeMax    *time.Time
	Currency   string // dominant ISO code when Type is Currency
	Anomalies  Anomaly
	TypeCounts map[normalize.DetectedType]int
}

// Cell is one column cell awaiting normalization: the raw value, its
// display format, and its declared type if any.
type Cell struct {
	Value    any
	Format   string
	Declared normalize.DetectedType
}

// Analyzer runs the normalization service over a column and aggregates
// the results.
type Analyzer struct {
	svc      *normalize.Service
	minority float64
}

// NewAnalyzer creates an Analyzer over the given service. The service is
// a required collaborator; the minority threshold must lie in [0,1].
func NewAnalyzer(svc *normalize.Service, minority float64) (*Analyzer, error) {
	if svc == nil {
		return nil, fmt.Errorf("normalization service is required")
	}
	if minority < 0 || minority > 1 {
		return nil, fmt.Errorf("minority threshold %v outside [0,1]", minority)
	}
	return &Analyzer{svc: svc, minority: minority}, nil
}

// Analyze normalizes every cell of the column and aggregates the metadata.
func (a *Analyzer) Analyze(header string, cells []Cell) Metadata {
	results := make([]normalize.Result, len(cells))
	for i, c := range cells {
		results[i] = a.svc.Normalize(c.Value, c.Format, c.Declared)
	}
	return a.AnalyzeResults(header, results)
}

// AnalyzeResults aggregates already-normalized results for a column,
// letting the orchestrator normalize each cell exactly once.
func (a *Analyzer) AnalyzeResults(header string, results []normalize.Result) Metadata {
	md := Metadata{
		Header:     header,
		Type:       normalize.TypeUnknown,
		TypeCounts: make(map[normalize.DetectedType]int),
	}

	distinct := make(map[string]struct{})
	currencies := make(map[string]int)

	for _, r := range results {
		if r.IsEmpty() {
			continue
		}
		md.NonEmpty++
		md.TypeCounts[r.Type]++
		distinct[r.Value.String()] = struct{}{}

		if f, ok := r.Value.Number(); ok {
			updateFloatRange(&md.NumericMin, &md.NumericMax, f)
		}
		if r.Type == normalize.TypeDate {
			updateTimeRange(&md.TimeMin, &md.TimeMax, r.Value.Time())
		}
		if r.Type == normalize.TypeCurrency && r.Currency != "" {
			currencies[r.Currency]++
		}
	}
	md.Distinct = len(distinct)

	if md.NonEmpty == 0 {
		md.Anomalies |= AnomalyEmptyColumn
		md.Type = normalize.TypeText
		return md
	}

	md.Type = dominantType(md.TypeCounts)

	if md.Type == normalize.TypeCurrency {
		md.Currency = dominantCurrency(currencies)
	}

	// MixedTypes: cells disagreeing with the dominant type, as a fraction
	// of non-empty cells, beyond the minority threshold.
	majority := md.TypeCounts[md.Type]
	disagree := md.NonEmpty - majority
	if disagree > 0 && float64(disagree)/float64(md.NonEmpty) > a.minority {
		md.Anomalies |= AnomalyMixedTypes
	}

	return md
}

// dominantType picks the most frequent non-Unknown type. Ties resolve to
// Text, the safest default.
func dominantType(counts map[normalize.DetectedType]int) normalize.DetectedType {
	best := normalize.TypeUnknown
	bestCount := 0
	tied := false

	for t, n := range counts {
		if t == normalize.TypeUnknown {
			continue
		}
		switch {
		case n > bestCount:
			best, bestCount, tied = t, n, false
		case n == bestCount && t != best:
			tied = true
		}
	}

	if best == normalize.TypeUnknown || tied {
		return normalize.TypeText
	}
	return best
}

func dominantCurrency(counts map[string]int) string {
	best, bestCount := "", 0
	for code, n := range counts {
		if n > bestCount || (n == bestCount && code < best) {
			best, bestCount = code, n
		}
	}
	return best
}

func updateFloatRange(min, max **float64, f float64) {
	if *min == nil || f < **min {
		v := f
		*min = &v
	}
	if *max == nil || f > **max {
		v := f
		*max = &v
	}
}

func updateTimeRange(min, max **time.Time, t time.Time) {
	if *min == nil || t.Before(**min) {
		v := t
		*min = &v
	}
	if *max == nil || t.After(**max) {
		v := t
		*max = &v
	}
}
