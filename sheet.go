package gridnorm

import (
	"fmt"
	"strings"

	"github.com/javajack/gridnorm/cellval"
	"github.com/javajack/gridnorm/column"
	"github.com/javajack/gridnorm/merge"
	"github.com/javajack/gridnorm/normalize"
)

// RawSheet is one sheet as delivered by the container reader: a row-major
// grid of raw cells, the shared-string table they index, and the sheet's
// merge-range list.
type RawSheet struct {
	Name          string
	Cells         [][]cellval.RawCell
	SharedStrings []string
	Merges        []merge.Range
	// HasHeaderRow marks the first row as column headers rather than data.
	HasHeaderRow bool
}

// EnrichedCell is one fully-resolved cell: the typed raw value, the
// post-merge effective value, and its normalization result.
type EnrichedCell struct {
	Raw       cellval.Value
	Effective cellval.Value
	Result    normalize.Result
}

// EnrichedSheet is the all-or-nothing product of one enrichment pass.
// A reload produces a fresh EnrichedSheet; the previous one is discarded
// wholesale, never patched. Downstream consumers read it only.
type EnrichedSheet struct {
	Name string
	// Headers holds the resolved column headers, with duplicate names
	// already suffixed.
	Headers []string
	// Cells holds the data rows (the header row, when present, is not
	// repeated here). Every cell has exactly one effective value and one
	// normalization result.
	Cells [][]EnrichedCell
	// Columns holds one metadata record per column.
	Columns []column.Metadata
	// Diagnostics is the ordered, severity-tagged finding list from every
	// stage of the pass.
	Diagnostics Diagnostics
	// MergeCoverage is the fraction of grid cells covered by merge ranges.
	MergeCoverage float64
}

// Column returns the metadata for the named header (case-insensitive),
// or false when no such column exists.
func (s *EnrichedSheet) Column(header string) (column.Metadata, bool) {
	for _, md := range s.Columns {
		if strings.EqualFold(md.Header, header) {
			return md, true
		}
	}
	return column.Metadata{}, false
}

// Describe returns a human-readable summary of the sheet: per-column type
// and statistics followed by the diagnostic list. Useful for debugging
// and CLI inspection.
func (s *EnrichedSheet) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s (%d rows, %d columns, merge coverage %.1f%%)\n",
		s.Name, len(s.Cells), len(s.Columns), s.MergeCoverage*100)

	for i, md := range s.Columns {
		fmt.Fprintf(&b, "  %s %-20s %-10s non-empty=%d distinct=%d",
			cellval.ColName(i), md.Header, md.Type, md.NonEmpty, md.Distinct)
		if md.NumericMin != nil && md.NumericMax != nil {
			fmt.Fprintf(&b, " range=[%v..%v]", *md.NumericMin, *md.NumericMax)
		}
		if md.TimeMin != nil && md.TimeMax != nil {
			fmt.Fprintf(&b, " dates=[%s..%s]",
				md.TimeMin.Format("2006-01-02"), md.TimeMax.Format("2006-01-02"))
		}
		if md.Currency != "" {
			fmt.Fprintf(&b, " currency=%s", md.Currency)
		}
		if md.Anomalies != 0 {
			fmt.Fprintf(&b, " anomalies=%s", md.Anomalies)
		}
		b.WriteByte('\n')
	}

	if len(s.Diagnostics) > 0 {
		b.WriteString("  Diagnostics:\n")
		for _, d := range s.Diagnostics {
			fmt.Fprintf(&b, "    %s\n", d)
		}
	}
	return b.String()
}
