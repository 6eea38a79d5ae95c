package catalog

import (
	"strings"

	"github.com/agentstation/ultrasearch/pkg/errors"
)

// Instrument names the camera whose nightly logs a catalog indexes.
type Instrument string

// Supported instruments.
const (
	ULTRACAM  Instrument = "ultracam"
	ULTRASPEC Instrument = "ultraspec"
)

// Instruments lists the supported instruments in display order.
func Instruments() []Instrument {
	return []Instrument{ULTRACAM, ULTRASPEC}
}

// String returns the instrument's lower-case name.
func (i Instrument) String() string {
	return string(i)
}

// Title returns the instrument name as it is usually written.
func (i Instrument) Title() string {
	return strings.ToUpper(string(i))
}

// ParseInstrument accepts an instrument name in any case.
func ParseInstrument(s string) (Instrument, error) {
	switch Instrument(strings.ToLower(strings.TrimSpace(s))) {
	case ULTRACAM:
		return ULTRACAM, nil
	case ULTRASPEC:
		return ULTRASPEC, nil
	}
	return "", errors.NewValidationError("instrument", s, "must be one of ultracam, ultraspec")
}
