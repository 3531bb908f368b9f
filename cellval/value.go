// Package cellval provides the typed cell-value model produced at the
// reader boundary: a tagged value resolved once per cell, so downstream
// normalization and analysis never deal with loosely-typed content.
package cellval

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindInteger
	KindFloat
	KindBool
	KindTime
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindText:
		return "Text"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Value is an immutable tagged union over the primitive cell types.
// The zero Value is the empty cell.
type Value struct {
	kind Kind
	text string
	i64  int64
	f64  float64
	b    bool
	t    time.Time
}

// Empty returns the empty cell value.
func Empty() Value { return Value{} }

// Text returns a Value holding the given string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer returns a Value holding the given 64-bit integer.
func Integer(n int64) Value { return Value{kind: KindInteger, i64: n} }

// Float returns a Value holding the given 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f64: f} }

// Bool returns a Value holding the given boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a Value holding the given timestamp.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the Value is the empty cell.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Text returns the held string. It is "" for non-text variants.
func (v Value) Text() string { return v.text }

// Int returns the held integer. It is 0 for non-integer variants.
func (v Value) Int() int64 { return v.i64 }

// Float64 returns the held float. It is 0 for non-float variants.
func (v Value) Float64() float64 { return v.f64 }

// Bool returns the held boolean. It is false for non-bool variants.
func (v Value) Bool() bool { return v.b }

// Time returns the held timestamp. It is the zero time for non-time variants.
func (v Value) Time() time.Time { return v.t }

// IsNumeric reports whether the Value holds an integer or a float.
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// Number returns the numeric payload as a float64 and whether one exists.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i64), true
	case KindFloat:
		return v.f64, true
	default:
		return 0, false
	}
}

// String renders the Value in a canonical textual form. Timestamps use
// ISO date form when they carry no clock component.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return ""
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// Equal reports whether two Values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindText:
		return v.text == other.text
	case KindInteger:
		return v.i64 == other.i64
	case KindFloat:
		return v.f64 == other.f64 || (math.IsNaN(v.f64) && math.IsNaN(other.f64))
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	default:
		return false
	}
}

// FromNumber builds an Integer when f is whole and representable as int64,
// otherwise a Float.
func FromNumber(f float64) Value {
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return Integer(int64(f))
	}
	return Float(f)
}
