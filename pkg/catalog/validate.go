package catalog

import (
	"fmt"

	"github.com/agentstation/ultrasearch/pkg/observations"
)

// Issue describes a suspicious catalog record. Issues are advisory: the
// resolver and the search treat such records permissively.
type Issue struct {
	Index     int    `json:"index" yaml:"index"`
	CatalogID string `json:"id" yaml:"id"`
	Run       string `json:"run" yaml:"run"`
	Night     string `json:"night" yaml:"night"`
	Field     string `json:"field" yaml:"field"`
	Message   string `json:"message" yaml:"message"`
}

// Validate reports records with missing identifiers, malformed numbers or
// coordinates outside RA [0, 24) hours and Dec [-90, 90] degrees.
func Validate(records []observations.ObservationRecord) []Issue {
	var issues []Issue
	for i, rec := range records {
		add := func(field, format string, args ...any) {
			issues = append(issues, Issue{
				Index:     i,
				CatalogID: rec.CatalogID,
				Run:       rec.Run,
				Night:     rec.Night,
				Field:     field,
				Message:   fmt.Sprintf(format, args...),
			})
		}

		if rec.CatalogID == "" {
			add("id", "missing catalog id")
		}
		switch ra := rec.RA.Float(); {
		case !rec.RA.Valid():
			add("ra", "not a number: %q", rec.RA.String())
		case ra < 0 || ra >= 24:
			add("ra", "%v hours is outside [0, 24)", ra)
		}
		switch dec := rec.Dec.Float(); {
		case !rec.Dec.Valid():
			add("dec", "not a number: %q", rec.Dec.String())
		case dec < -90 || dec > 90:
			add("dec", "%v degrees is outside [-90, 90]", dec)
		}
		switch exp := rec.Expose.Float(); {
		case !rec.Expose.Valid():
			add("expose", "not a number: %q", rec.Expose.String())
		case exp < 0:
			add("expose", "negative exposure %v", exp)
		}
	}
	return issues
}
