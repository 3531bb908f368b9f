package cellval

import (
	"sync"
	"sync/atomic"
)

const (
	// DefaultCacheCapacity bounds the shared intern cache. Past the cap,
	// lookups still hit but new strings are returned uncached.
	DefaultCacheCapacity = 50000

	// maxInternLength is the longest string worth pooling. Long values are
	// rarely duplicated across a sheet.
	maxInternLength = 100
)

// StringCache is a bounded, concurrency-safe string-interning cache shared
// across readers. Sheets processed in parallel populate it concurrently;
// once full, insertion is skipped rather than blocked.
type StringCache struct {
	entries  sync.Map // string → string
	size     atomic.Int64
	capacity int64
}

// NewStringCache creates a cache bounded at capacity entries. A capacity
// of zero or less uses DefaultCacheCapacity.
func NewStringCache(capacity int) *StringCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &StringCache{capacity: int64(capacity)}
}

// Intern returns a canonical instance of s, pooling short strings so that
// duplicated cell text across a large sheet shares storage. Strings longer
// than maxInternLength bypass the cache.
func (c *StringCache) Intern(s string) string {
	if len(s) == 0 || len(s) > maxInternLength {
		return s
	}
	if cached, ok := c.entries.Load(s); ok {
		return cached.(string)
	}
	if c.size.Load() >= c.capacity {
		return s
	}
	actual, loaded := c.entries.LoadOrStore(s, s)
	if !loaded {
		c.size.Add(1)
	}
	return actual.(string)
}

// Len returns the number of pooled strings.
func (c *StringCache) Len() int {
	return int(c.size.Load())
}
