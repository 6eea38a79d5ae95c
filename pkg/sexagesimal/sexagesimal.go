// Package sexagesimal converts between decimal hours or degrees and
// base-60 "DD:MM:SS.ss" strings.
//
// Formatting never emits a seconds or minutes field of 60: when rounding the
// seconds reaches 60 the carry is propagated into minutes and, if needed,
// into the leading field.
//
//	sexagesimal.Format(1.999999, 2, false) // "02:00:00.00"
//	sexagesimal.Format(-0.5, 1, true)      // "-00:30:00.0"
package sexagesimal

import (
	"math"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"

	"github.com/agentstation/ultrasearch/pkg/errors"
)

// Precisions used when rendering catalog coordinates.
const (
	RAPrecision  = 2
	DecPrecision = 1
)

// Format renders value as DD:MM:SS with the seconds rounded to precision
// decimals. With withSign set the result starts with '+' for value >= 0 and
// '-' otherwise; without it no sign is written whatever the input sign.
// No range checks are made: 25.5 hours formats as "25:30:00.00".
func Format(value float64, precision int, withSign bool) string {
	if precision < 0 {
		precision = 0
	}

	var b strings.Builder
	if withSign {
		if value >= 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
	}

	abs := math.Abs(value)
	switch {
	case math.IsNaN(value):
		b.WriteString("NaN")
		return b.String()
	case math.IsInf(abs, 1):
		b.WriteString("Inf")
		return b.String()
	}

	whole := math.Floor(abs)
	fmin := 60 * (abs - whole)
	minutes := math.Floor(fmin)
	secs := strconv.FormatFloat(60*(fmin-minutes), 'f', precision, 64)

	// Rounding can push the seconds to 60.
	if rounded, _ := strconv.ParseFloat(secs, 64); rounded >= 60 {
		secs = strconv.FormatFloat(0, 'f', precision, 64)
		minutes++
		if minutes >= 60 {
			minutes = 0
			whole++
		}
	}

	b.WriteString(pad2(strconv.FormatFloat(whole, 'f', 0, 64)))
	b.WriteByte(':')
	b.WriteString(pad2(strconv.FormatFloat(minutes, 'f', 0, 64)))
	b.WriteByte(':')
	b.WriteString(pad2Int(secs))
	return b.String()
}

// FormatRA formats right ascension in hours the way result tables show it.
func FormatRA(hours float64) string {
	return Format(hours, RAPrecision, false)
}

// FormatDec formats declination in degrees the way result tables show it.
func FormatDec(deg float64) string {
	return Format(deg, DecPrecision, true)
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// pad2Int zero-pads the integer part of a decimal string to two digits.
func pad2Int(s string) string {
	intPart, _, _ := strings.Cut(s, ".")
	if len(intPart) < 2 {
		return "0" + s
	}
	return s
}

// Parse reads a decimal number or a sexagesimal string such as "10:30:00",
// "-05 12 30.5" or "+20:00". A leading sign applies to the whole value.
// Missing trailing fields are zero. NaN and infinities are rejected.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.NewParseError("sexagesimal", "", "empty value", nil)
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ' ' || r == '\t'
	})
	if len(fields) == 1 {
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, errors.NewParseError("sexagesimal", "", "not a number: "+s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.NewParseError("sexagesimal", "", "not a finite number: "+s, nil)
		}
		return v, nil
	}
	if len(fields) > 3 {
		return 0, errors.NewParseError("sexagesimal", "", "too many fields: "+s, nil)
	}

	var neg byte
	lead := fields[0]
	switch lead[0] {
	case '-':
		neg = '-'
		lead = lead[1:]
	case '+':
		lead = lead[1:]
	}

	d, err := strconv.Atoi(lead)
	if err != nil || d < 0 {
		return 0, errors.NewParseError("sexagesimal", "", "bad leading field: "+s, err)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil || m < 0 || m >= 60 {
		return 0, errors.NewParseError("sexagesimal", "", "bad minutes field: "+s, err)
	}
	var sec float64
	if len(fields) == 3 {
		sec, err = strconv.ParseFloat(fields[2], 64)
		if err != nil || math.IsNaN(sec) || sec < 0 || sec >= 60 {
			return 0, errors.NewParseError("sexagesimal", "", "bad seconds field: "+s, err)
		}
	}

	return unit.FromSexa(neg, d, m, sec), nil
}
