// Package search answers "which runs lie near this point" queries against a
// catalog.
//
// Distances use a flat small-angle approximation around the query centre:
// the RA offset is scaled by cos(centre Dec) and combined with the Dec offset
// in quadrature. This is adequate for search radii of a degree or so and is
// not a great-circle separation.
package search

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/agentstation/ultrasearch/pkg/observations"
)

// hoursToDeg converts RA hours to degrees.
const hoursToDeg = 15

// Distance returns the flat-approximation offset in degrees of a position
// from the query centre.
func Distance(raHours, decDeg float64, q observations.Query) float64 {
	cosDec := unit.AngleFromDeg(q.CenterDecDeg).Cos()
	dx := (raHours*hoursToDeg - q.CenterRAHours*hoursToDeg) * cosDec
	dy := decDeg - q.CenterDecDeg
	return math.Sqrt(dx*dx + dy*dy)
}

// Search scans records in order and returns those strictly inside the
// radius with exposure strictly above the minimum. Records whose position or
// exposure is malformed compare as NaN and never match, as do all records
// when the query itself contains NaN. The result preserves catalog order.
func Search(records []observations.ObservationRecord, q observations.Query) []observations.MatchResult {
	matches := make([]observations.MatchResult, 0)
	for _, rec := range records {
		dist := Distance(rec.RA.Float(), rec.Dec.Float(), q)
		if dist < q.RadiusDeg && rec.Expose.Float() > q.MinExposeMinutes {
			matches = append(matches, observations.MatchResult{
				ObservationRecord: rec,
				DistanceDeg:       dist,
			})
		}
	}
	return matches
}

// Around searches centred on a resolved target.
func Around(records []observations.ObservationRecord, target observations.TargetIdentity, radiusDeg, minExposeMinutes float64) []observations.MatchResult {
	return Search(records, observations.Query{
		CenterRAHours:    target.RA.Float(),
		CenterDecDeg:     target.Dec.Float(),
		RadiusDeg:        radiusDeg,
		MinExposeMinutes: minExposeMinutes,
	})
}
