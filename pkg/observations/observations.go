// Package observations defines the catalog record, query and result types
// shared by the identity resolver, the proximity filter and their callers.
//
// Records are read-only once loaded. Nothing in this module mutates a
// record after decoding.
package observations

import (
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/sexagesimal"
)

// ObservationRecord is one run from a nightly observation log.
type ObservationRecord struct {
	Target    string `json:"target" yaml:"target"`             // Name as typed by the observer
	CatalogID string `json:"id" yaml:"id"`                     // Identifier shared by all runs on one object
	RA        Number `json:"ra" yaml:"ra"`                     // Right ascension, decimal hours
	Dec       Number `json:"dec" yaml:"dec"`                   // Declination, decimal degrees
	Run       string `json:"run" yaml:"run"`                   // Run label
	Night     string `json:"night" yaml:"night"`               // Night date, YYYY-MM-DD
	Num       Number `json:"num" yaml:"num"`                   // Sequence number within the night
	Expose    Number `json:"expose" yaml:"expose"`             // Exposure, minutes
	Comment   string `json:"comment" yaml:"comment"`           // Free-text annotation
	PI        string `json:"pi,omitempty" yaml:"pi,omitempty"` // Principal investigator, when logged
}

// Key returns the record's identity key.
func (r ObservationRecord) Key() TargetKey {
	return TargetKey{
		CatalogID: r.CatalogID,
		RA:        r.RA.String(),
		Dec:       r.Dec.String(),
	}
}

// TargetKey identifies one sky position of one catalogued object. Two keys
// are equal iff all three literal forms are identical, so positions that
// differ in the last digit are distinct targets.
type TargetKey struct {
	CatalogID string
	RA        string
	Dec       string
}

// String renders the key as the concatenation of its parts.
func (k TargetKey) String() string {
	return k.CatalogID + k.RA + k.Dec
}

// TargetIdentity is a unique target derived from a catalog: every record
// sharing its key, with the distinct name spellings seen for it in
// first-seen order.
type TargetIdentity struct {
	Key       TargetKey `json:"-" yaml:"-"`
	CatalogID string    `json:"id" yaml:"id"`
	RA        Number    `json:"ra" yaml:"ra"`
	Dec       Number    `json:"dec" yaml:"dec"`
	Names     []string  `json:"names" yaml:"names"`
	Runs      int       `json:"runs" yaml:"runs"`
}

// Query describes one proximity search. All fields are plain numbers;
// textual input goes through ParseQuery first.
type Query struct {
	CenterRAHours    float64 `json:"ra" yaml:"ra"`
	CenterDecDeg     float64 `json:"dec" yaml:"dec"`
	RadiusDeg        float64 `json:"radius" yaml:"radius"`
	MinExposeMinutes float64 `json:"expose" yaml:"expose"`
}

// ParseQuery builds a Query from user-entered text. RA and Dec accept
// decimal or sexagesimal notation; radius and exposure must be decimal.
// Every field must be a finite number.
func ParseQuery(ra, dec, radius, expose string) (Query, error) {
	var q Query
	var err error

	if q.CenterRAHours, err = sexagesimal.Parse(ra); err != nil {
		return Query{}, errors.NewValidationError("ra", ra, err.Error())
	}
	if q.CenterDecDeg, err = sexagesimal.Parse(dec); err != nil {
		return Query{}, errors.NewValidationError("dec", dec, err.Error())
	}
	if q.RadiusDeg, q.MinExposeMinutes, err = ParseLimits(radius, expose); err != nil {
		return Query{}, err
	}
	return q, nil
}

// ParseLimits parses the radius and exposure of a query whose centre is
// not known yet.
func ParseLimits(radius, expose string) (radiusDeg, minExposeMinutes float64, err error) {
	if radiusDeg, err = parseDecimal(radius); err != nil {
		return 0, 0, errors.NewValidationError("radius", radius, "not a number")
	}
	if minExposeMinutes, err = parseDecimal(expose); err != nil {
		return 0, 0, errors.NewValidationError("expose", expose, "not a number")
	}
	return radiusDeg, minExposeMinutes, nil
}

func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// MatchResult is a record that satisfied a Query, with its offset from the
// query centre.
type MatchResult struct {
	ObservationRecord `yaml:",inline"`
	DistanceDeg       float64 `json:"dist" yaml:"dist"`
}
