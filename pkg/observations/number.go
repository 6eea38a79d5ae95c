package observations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric catalog field that remembers how it was written.
//
// Catalogs are produced by hand-maintained log indexers, so a coordinate can
// arrive as a JSON number, a quoted number or junk. Number keeps the literal
// for identity keys and exposes NaN for anything that is not numeric, so
// every comparison against a malformed value is false.
type Number struct {
	raw   string
	value float64
	valid bool
}

// NumberOf returns a Number holding v, written in shortest round-trip form.
func NumberOf(v float64) Number {
	return Number{raw: formatFloat(v), value: v, valid: true}
}

// ParseNumber returns a Number for a textual literal. The literal is kept
// verbatim; the value is NaN if the text does not parse.
func ParseNumber(s string) Number {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Number{raw: s, value: math.NaN()}
	}
	return Number{raw: s, value: v, valid: true}
}

// Float returns the numeric value, or NaN when the field is missing or
// malformed.
func (n Number) Float() float64 {
	if !n.valid {
		return math.NaN()
	}
	return n.value
}

// Valid reports whether the field holds a finite number.
func (n Number) Valid() bool {
	return n.valid && !math.IsInf(n.value, 0) && !math.IsNaN(n.value)
}

// String returns the literal form used in identity keys.
func (n Number) String() string {
	return n.raw
}

// MarshalJSON writes numbers as JSON numbers and anything else as its
// original text.
func (n Number) MarshalJSON() ([]byte, error) {
	switch {
	case n.Valid():
		return []byte(formatFloat(n.value)), nil
	case n.raw == "":
		return []byte("null"), nil
	default:
		return json.Marshal(n.raw)
	}
}

// UnmarshalJSON accepts numbers, strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = Number{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ParseNumber(s)
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			*n = Number{raw: string(data), value: math.NaN()}
			return nil
		}
		*n = NumberOf(v)
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (n Number) MarshalYAML() (any, error) {
	switch {
	case n.Valid():
		return n.value, nil
	case n.raw == "":
		return nil, nil
	default:
		return n.raw, nil
	}
}

// UnmarshalYAML accepts any scalar; non-numeric scalars keep their text.
func (n *Number) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*n = Number{}
	case float64:
		*n = NumberOf(x)
	case float32:
		*n = NumberOf(float64(x))
	case int:
		*n = NumberOf(float64(x))
	case int64:
		*n = NumberOf(float64(x))
	case uint64:
		*n = NumberOf(float64(x))
	case string:
		*n = ParseNumber(x)
	default:
		*n = Number{raw: fmt.Sprint(x), value: math.NaN()}
	}
	return nil
}

// formatFloat renders v the way a browser's Number#toString does for the
// magnitudes found in catalogs: 10.0 -> "10", 0.5 -> "0.5".
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Go pads exponents to two digits ("1e-07"), browsers do not.
	if i := strings.IndexAny(s, "e"); i >= 0 {
		mant, exp := s[:i], s[i+1:]
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		s = mant + "e" + sign + digits
	}
	return s
}
