package gridnorm

import (
	"log/slog"

	"github.com/javajack/gridnorm/cellval"
	"github.com/javajack/gridnorm/column"
	"github.com/javajack/gridnorm/merge"
	"github.com/javajack/gridnorm/normalize"
)

// Options holds configuration for the Enricher.
type Options struct {
	mergeStrategy     merge.Strategy
	coverageWarn      float64
	minorityThreshold float64
	dateOrder         normalize.DateOrder
	cache             *cellval.StringCache
	cacheCapacity     int
	logger            *slog.Logger
	rules             []ColumnRule
	workers           int
}

func defaultOptions() *Options {
	return &Options{
		mergeStrategy:     merge.ExpandValue,
		coverageWarn:      merge.DefaultCoverageWarnThreshold,
		minorityThreshold: column.DefaultMinorityThreshold,
		dateOrder:         normalize.OrderMDY,
	}
}

// Option configures the Enricher.
type Option func(*Options)

// WithMergeStrategy sets how merged-cell ranges resolve (default
// merge.ExpandValue).
func WithMergeStrategy(s merge.Strategy) Option {
	return func(o *Options) { o.mergeStrategy = s }
}

// WithCoverageWarnThreshold sets the merge coverage ratio above which a
// Warning diagnostic is emitted (default 0.30).
func WithCoverageWarnThreshold(t float64) Option {
	return func(o *Options) { o.coverageWarn = t }
}

// WithMixedTypeThreshold sets the fraction of non-empty cells that may
// disagree with a column's dominant type before MixedTypes is flagged
// (default 0.10).
func WithMixedTypeThreshold(t float64) Option {
	return func(o *Options) { o.minorityThreshold = t }
}

// WithDateOrder sets the day/month reading for ambiguous numeric dates
// (default normalize.OrderMDY).
func WithDateOrder(order normalize.DateOrder) Option {
	return func(o *Options) { o.dateOrder = order }
}

// WithStringCache shares an existing intern cache across enrichers, so
// sheets processed in parallel pool their strings together.
func WithStringCache(c *cellval.StringCache) Option {
	return func(o *Options) { o.cache = c }
}

// WithCacheCapacity bounds the private intern cache created when no shared
// cache is supplied.
func WithCacheCapacity(n int) Option {
	return func(o *Options) { o.cacheCapacity = n }
}

// WithLogger attaches a structured logger. Without one the Enricher is
// silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithColumnRule registers a metadata rule evaluated against every
// column; a rule whose expression yields true emits a diagnostic at the
// rule's severity.
func WithColumnRule(rule ColumnRule) Option {
	return func(o *Options) { o.rules = append(o.rules, rule) }
}

// WithWorkers bounds the number of sheets enriched concurrently by
// EnrichSheets (default: one worker per sheet).
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}
