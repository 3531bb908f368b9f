package cellval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TypeTag is the explicit cell type declared by the container format, when
// one is present.
type TypeTag int

const (
	TagNone TypeTag = iota
	TagSharedString
	TagInlineString
	TagString
	TagBoolean
	TagNumber
	TagDate
	TagError
)

// String returns a human-readable name for the TypeTag.
func (t TypeTag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagSharedString:
		return "SharedString"
	case TagInlineString:
		return "InlineString"
	case TagString:
		return "String"
	case TagBoolean:
		return "Boolean"
	case TagNumber:
		return "Number"
	case TagDate:
		return "Date"
	case TagError:
		return "Error"
	default:
		return "Unknown"
	}
}

// InvalidRefMarker prefixes the text produced for a shared-string index
// that points outside the table.
const InvalidRefMarker = "#REF!"

// ErrorMarker prefixes the text produced for error-class cells.
const ErrorMarker = "#ERROR!"

// RawCell is one cell as delivered by the container reader: inline text,
// an optional explicit type tag, an optional shared-string index, and the
// cell's display format string.
type RawCell struct {
	Text        string
	Tag         TypeTag
	SharedIndex int // index into the shared-string table; ignored unless Tag is TagSharedString
	Format      string
}

// Reader converts raw cells into typed Values against one sheet's
// shared-string table. Short text values are pooled through the shared
// cache so duplicated content across large sheets is stored once.
type Reader struct {
	shared []string
	cache  *StringCache
}

// NewReader creates a Reader over the given shared-string table. A nil
// cache allocates a private one.
func NewReader(shared []string, cache *StringCache) *Reader {
	if cache == nil {
		cache = NewStringCache(0)
	}
	return &Reader{shared: shared, cache: cache}
}

// dateLayouts are the textual timestamp forms accepted for date-tagged cells.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// Read converts one raw cell into a typed Value. It never fails: content
// that cannot honor its tag degrades to Text carrying a marker.
func (r *Reader) Read(c RawCell) Value {
	switch c.Tag {
	case TagSharedString:
		if c.SharedIndex < 0 || c.SharedIndex >= len(r.shared) {
			return Text(fmt.Sprintf("%s invalid shared string index %d", InvalidRefMarker, c.SharedIndex))
		}
		return r.textValue(r.shared[c.SharedIndex])
	case TagBoolean:
		return Bool(strings.TrimSpace(c.Text) == "1")
	case TagString, TagInlineString:
		return r.textValue(c.Text)
	case TagError:
		if strings.TrimSpace(c.Text) == "" {
			return Text(ErrorMarker)
		}
		return Text(ErrorMarker + " " + strings.TrimSpace(c.Text))
	case TagDate:
		if v, ok := parseTimestamp(c.Text); ok {
			return Time(v)
		}
		return r.textValue(c.Text)
	default:
		if strings.TrimSpace(c.Text) == "" {
			return Empty()
		}
		if v, ok := parseInvariantNumber(c.Text); ok {
			return v
		}
		return r.textValue(c.Text)
	}
}

// textValue wraps s as a Text value, mapping blank content to Empty and
// interning through the shared cache.
func (r *Reader) textValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Empty()
	}
	return Text(r.cache.Intern(s))
}

// parseTimestamp attempts the known textual timestamp layouts.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseInvariantNumber parses untagged cell text as a locale-invariant
// number, tolerating comma grouping. Whole results in int64 range become
// Integer, everything else Float.
func parseInvariantNumber(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, false
	}
	stripped := strings.ReplaceAll(s, ",", "")
	if n, err := strconv.ParseInt(stripped, 10, 64); err == nil {
		return Integer(n), true
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, false
	}
	return FromNumber(f), true
}
