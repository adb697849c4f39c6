// Package convert maps front-matter keys to functions that turn the raw
// header text into typed values.
package convert

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Converter parses a raw metadata value. The built-in converters never fail;
// a returned error aborts the build.
type Converter interface {
	Convert(raw string) (Value, error)
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc func(raw string) (Value, error)

func (f ConverterFunc) Convert(raw string) (Value, error) {
	return f(raw)
}

// Registry holds one converter per metadata key.
type Registry struct {
	converters map[string]Converter
}

func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Register installs c for key, replacing any earlier registration.
func (r *Registry) Register(key string, c Converter) {
	r.converters[key] = c
}

func (r *Registry) Has(key string) bool {
	_, ok := r.converters[key]
	return ok
}

// Names returns the registered keys in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Convert runs the converter registered for key. Keys without a converter
// keep their raw text.
func (r *Registry) Convert(key, raw string) (Value, error) {
	c, ok := r.converters[key]
	if !ok {
		return StringValue(raw), nil
	}
	v, err := c.Convert(raw)
	if err != nil {
		return Value{}, errors.Wrapf(err, "convert %q", key)
	}
	return v, nil
}

var (
	// Integer parses base-10 integers, yielding 0 for anything else.
	Integer = ConverterFunc(func(raw string) (Value, error) {
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return IntValue(0), nil
		}
		return IntValue(i), nil
	})

	// Date parses the layouts in DateLayouts, yielding the zero time for
	// anything else.
	Date = ConverterFunc(func(raw string) (Value, error) {
		return TimeValue(ParseDate(raw)), nil
	})

	// Double parses floating point numbers, yielding 0 for anything else.
	Double = ConverterFunc(func(raw string) (Value, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return FloatValue(0), nil
		}
		return FloatValue(f), nil
	})

	Passthrough = ConverterFunc(func(raw string) (Value, error) {
		return StringValue(raw), nil
	})
)

var builtins = map[string]Converter{
	"integer": Integer,
	"int":     Integer,
	"date":    Date,
	"double":  Double,
	"float":   Double,
	"string":  Passthrough,
}

// Builtin looks up a built-in converter by its configuration name.
func Builtin(name string) (Converter, bool) {
	c, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// DateLayouts are tried in order by the Date converter.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate returns the zero time when raw matches none of DateLayouts.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
