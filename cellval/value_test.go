package cellval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue_ZeroIsEmpty(t *testing.T) {
	var v Value
	assert.True(t, v.IsEmpty())
	assert.Equal(t, KindEmpty, v.Kind())
	assert.Equal(t, "", v.String())
}

func TestValue_Text(t *testing.T) {
	v := Text("hello")
	assert.Equal(t, KindText, v.Kind())
	assert.Equal(t, "hello", v.Text())
	assert.Equal(t, "hello", v.String())
	assert.False(t, v.IsEmpty())
}

func TestValue_Integer(t *testing.T) {
	v := Integer(42)
	assert.Equal(t, KindInteger, v.Kind())
	assert.Equal(t, int64(42), v.Int())
	assert.Equal(t, "42", v.String())
	assert.True(t, v.IsNumeric())

	f, ok := v.Number()
	assert.True(t, ok)
	assert.Equal(t, 42.0, f)
}

func TestValue_Float(t *testing.T) {
	v := Float(3.14)
	assert.Equal(t, KindFloat, v.Kind())
	assert.Equal(t, "3.14", v.String())
	assert.True(t, v.IsNumeric())
}

func TestValue_Bool(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.False(t, Bool(true).IsNumeric())
}

func TestValue_TimeDateOnly(t *testing.T) {
	d := time.Date(2024, time.November, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-11-05", Time(d).String())
}

func TestValue_TimeWithClock(t *testing.T) {
	d := time.Date(2024, time.November, 5, 13, 30, 0, 0, time.UTC)
	assert.Contains(t, Time(d).String(), "13:30")
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Text("a").Equal(Text("a")))
	assert.False(t, Text("a").Equal(Text("b")))
	assert.False(t, Integer(1).Equal(Float(1)))
	assert.True(t, Empty().Equal(Empty()))
}

func TestFromNumber_WholeBecomesInteger(t *testing.T) {
	v := FromNumber(1234)
	assert.Equal(t, KindInteger, v.Kind())
	assert.Equal(t, int64(1234), v.Int())
}

func TestFromNumber_FractionalBecomesFloat(t *testing.T) {
	v := FromNumber(1234.56)
	assert.Equal(t, KindFloat, v.Kind())
	assert.Equal(t, 1234.56, v.Float64())
}

func TestKind_String(t *testing.T) {
	names := map[Kind]string{
		KindEmpty:   "Empty",
		KindText:    "Text",
		KindInteger: "Integer",
		KindFloat:   "Float",
		KindBool:    "Bool",
		KindTime:    "Time",
	}
	for kind, expected := range names {
		assert.Equal(t, expected, kind.String())
	}
}
