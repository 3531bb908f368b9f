package gridnorm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/javajack/gridnorm/cellval"
	"github.com/javajack/gridnorm/column"
	"github.com/javajack/gridnorm/merge"
	"github.com/javajack/gridnorm/normalize"
)

// Enricher composes merge resolution, normalization, and column analysis
// into one sheet-enrichment pass. It is stateless per invocation apart
// from the shared string-intern cache, and safe for concurrent use.
type Enricher struct {
	opts     *Options
	svc      *normalize.Service
	analyzer *column.Analyzer
	resolver *merge.Resolver
	rules    []compiledRule
	cache    *cellval.StringCache
	logger   *slog.Logger
}

// New creates an Enricher. Invalid configuration (an out-of-range
// threshold, an unknown strategy, a broken rule expression) fails here,
// before any data is processed.
func New(opts ...Option) (*Enricher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	resolver, err := merge.NewResolver(o.mergeStrategy, o.coverageWarn)
	if err != nil {
		return nil, err
	}

	svc := normalize.NewService(normalize.WithDateOrder(o.dateOrder))

	analyzer, err := column.NewAnalyzer(svc, o.minorityThreshold)
	if err != nil {
		return nil, err
	}

	rules, err := compileRules(o.rules)
	if err != nil {
		return nil, err
	}

	cache := o.cache
	if cache == nil {
		cache = cellval.NewStringCache(o.cacheCapacity)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Enricher{
		opts:     o,
		svc:      svc,
		analyzer: analyzer,
		resolver: resolver,
		rules:    rules,
		cache:    cache,
		logger:   logger,
	}, nil
}

// EnrichSheet runs the full pass over one raw sheet: resolve merges,
// normalize every effective cell, analyze every column, and collect the
// ordered diagnostic list. The returned sheet is complete or the call
// fails; no partial enrichment is ever published.
func (e *Enricher) EnrichSheet(sheet *RawSheet) (*EnrichedSheet, error) {
	if sheet == nil {
		return nil, fmt.Errorf("raw sheet is required")
	}

	reader := cellval.NewReader(sheet.SharedStrings, e.cache)

	width := 0
	for _, row := range sheet.Cells {
		if len(row) > width {
			width = len(row)
		}
	}

	rawGrid := make([][]cellval.Value, len(sheet.Cells))
	formats := make([][]string, len(sheet.Cells))
	declared := make([][]normalize.DetectedType, len(sheet.Cells))
	for i, row := range sheet.Cells {
		rawGrid[i] = make([]cellval.Value, width)
		formats[i] = make([]string, width)
		declared[i] = make([]normalize.DetectedType, width)
		for j := range row {
			rawGrid[i][j] = reader.Read(row[j])
			formats[i][j] = row[j].Format
			declared[i][j] = declaredType(row[j].Tag)
		}
	}

	var diags Diagnostics

	resolution := e.resolver.Resolve(rawGrid, sheet.Merges)
	if resolution.Excessive {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Message: fmt.Sprintf("merge ranges cover %.1f%% of cells (threshold %.0f%%)",
				resolution.Coverage*100, e.opts.coverageWarn*100),
		})
	}

	dataStart := 0
	var headers []string
	if sheet.HasHeaderRow && len(rawGrid) > 0 {
		dataStart = 1
		headers = make([]string, width)
		for j := 0; j < width; j++ {
			headers[j] = strings.TrimSpace(resolution.Effective[0][j].String())
		}
	} else {
		headers = make([]string, width)
	}
	for j := range headers {
		if headers[j] == "" {
			headers[j] = "Column_" + cellval.ColName(j)
		}
	}
	headers, headerDiags, renamed := resolveDuplicateHeaders(headers)
	diags = append(diags, headerDiags...)

	rows := len(rawGrid) - dataStart
	cells := make([][]EnrichedCell, rows)
	for i := 0; i < rows; i++ {
		src := i + dataStart
		cells[i] = make([]EnrichedCell, width)
		for j := 0; j < width; j++ {
			effective := resolution.Effective[src][j]
			result := e.svc.Normalize(effective, formats[src][j], declared[src][j])
			cells[i][j] = EnrichedCell{
				Raw:       rawGrid[src][j],
				Effective: effective,
				Result:    result,
			}
			if result.Issue == normalize.IssueAmbiguousFormat {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("ambiguous %s format %q resolved with %.0f%% confidence", strings.ToLower(result.Type.String()), effective.String(), result.Confidence*100),
					Ref:      cellval.NewCellRef("", src, j).CellName(),
				})
			}
		}
	}

	columns := make([]column.Metadata, width)
	for j := 0; j < width; j++ {
		results := make([]normalize.Result, rows)
		for i := 0; i < rows; i++ {
			results[i] = cells[i][j].Result
		}
		md := e.analyzer.AnalyzeResults(headers[j], results)
		if renamed[j] {
			md.Anomalies |= column.AnomalyDuplicateHeader
		}
		columns[j] = md

		if md.Anomalies.Has(column.AnomalyMixedTypes) {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("mixed types: %d of %d non-empty cells disagree with dominant type %s", md.NonEmpty-md.TypeCounts[md.Type], md.NonEmpty, md.Type),
				Ref:      "column " + md.Header,
			})
		}
		if md.Anomalies.Has(column.AnomalyEmptyColumn) {
			diags = append(diags, Diagnostic{
				Severity: SeverityInfo,
				Message:  "empty column skipped",
				Ref:      "column " + md.Header,
			})
		}

		diags = append(diags, evaluateRules(e.rules, md)...)
	}

	enriched := &EnrichedSheet{
		Name:          sheet.Name,
		Headers:       headers,
		Cells:         cells,
		Columns:       columns,
		Diagnostics:   diags,
		MergeCoverage: resolution.Coverage,
	}

	e.logger.Debug("sheet enriched",
		slog.String("sheet", sheet.Name),
		slog.Int("rows", rows),
		slog.Int("columns", width),
		slog.Float64("merge_coverage", resolution.Coverage),
		slog.Int("diagnostics", len(diags)))

	return enriched, nil
}

// EnrichSheets enriches independent sheets with concurrent workers. The
// output order matches the input order regardless of completion order.
// On error or cancellation no partially-enriched result is returned.
func (e *Enricher) EnrichSheets(ctx context.Context, sheets []*RawSheet) ([]*EnrichedSheet, error) {
	g, ctx := errgroup.WithContext(ctx)
	if e.opts.workers > 0 {
		g.SetLimit(e.opts.workers)
	}

	out := make([]*EnrichedSheet, len(sheets))
	for i, sheet := range sheets {
		i, sheet := i, sheet
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			enriched, err := e.EnrichSheet(sheet)
			if err != nil {
				return fmt.Errorf("enrich sheet %d: %w", i, err)
			}
			out[i] = enriched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// declaredType maps a reader type tag to the declared normalization type.
func declaredType(tag cellval.TypeTag) normalize.DetectedType {
	switch tag {
	case cellval.TagDate:
		return normalize.TypeDate
	case cellval.TagNumber:
		return normalize.TypeNumber
	case cellval.TagBoolean:
		return normalize.TypeBoolean
	case cellval.TagError:
		return normalize.TypeError
	default:
		return normalize.TypeUnknown
	}
}

// resolveDuplicateHeaders suffixes case-insensitive header collisions with
// "_N" and reports each rename as an Info diagnostic.
func resolveDuplicateHeaders(headers []string) ([]string, Diagnostics, map[int]bool) {
	seen := make(map[string]int, len(headers))
	renamed := make(map[int]bool)
	var diags Diagnostics

	out := make([]string, len(headers))
	for i, h := range headers {
		key := strings.ToLower(h)
		seen[key]++
		if seen[key] == 1 {
			out[i] = h
			continue
		}
		newName := fmt.Sprintf("%s_%d", h, seen[key])
		out[i] = newName
		renamed[i] = true
		diags = append(diags, Diagnostic{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("duplicate header %q renamed to %q", h, newName),
			Ref:      "column " + cellval.ColName(i),
		})
	}
	return out, diags, renamed
}
