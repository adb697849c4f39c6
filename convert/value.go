package convert

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "double"
	case KindTime:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrTypeMismatch is returned by the typed accessors when the value holds a
// different kind than requested.
var ErrTypeMismatch = errors.New("value type mismatch")

// Value is a converted metadata value: string, integer, double or timestamp.
type Value struct {
	kind Kind
	s    string
	i    int
	f    float64
	t    time.Time
}

func StringValue(s string) Value  { return Value{kind: KindString, s: s} }
func IntValue(i int) Value        { return Value{kind: KindInt, i: i} }
func FloatValue(f float64) Value  { return Value{kind: KindFloat, f: f} }
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) mismatch(want Kind) error {
	return errors.Wrapf(ErrTypeMismatch, "want %s, have %s", want, v.kind)
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

func (v Value) AsInt() (int, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat)
	}
	return v.f, nil
}

func (v Value) AsTime() (time.Time, error) {
	if v.kind != KindTime {
		return time.Time{}, v.mismatch(KindTime)
	}
	return v.t, nil
}

// Interface returns the underlying Go value, for handing to templates.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindTime:
		return v.t
	default:
		return v.s
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return v.s
	}
}
