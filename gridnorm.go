// Package gridnorm turns heterogeneous, ambiguously-typed spreadsheet
// content into a single canonical, typed representation. One enrichment
// pass resolves merged-cell ranges, normalizes every cell (locale-aware
// numbers, serial and textual dates, currency, percentage, boolean), and
// aggregates per-column metadata, collecting a severity-tagged diagnostic
// list along the way.
//
// Business-data problems never raise errors: they surface as result flags
// and diagnostics. Errors are reserved for violated preconditions, such as
// invalid configuration at construction.
package gridnorm

import "context"

// Enrich runs one enrichment pass over a single raw sheet with a
// throwaway Enricher.
func Enrich(sheet *RawSheet, opts ...Option) (*EnrichedSheet, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return e.EnrichSheet(sheet)
}

// EnrichAll enriches a set of independent sheets concurrently, sharing one
// intern cache across them.
func EnrichAll(ctx context.Context, sheets []*RawSheet, opts ...Option) ([]*EnrichedSheet, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return e.EnrichSheets(ctx, sheets)
}
