// Package filter turns API query parameters into search and target-list
// requests.
package filter

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/targets"
)

// Defaults fill in parameters a request leaves out.
type Defaults struct {
	Instrument       catalog.Instrument
	RadiusDeg        float64
	MinExposeMinutes float64
}

// SearchRequest is a parsed proximity search.
type SearchRequest struct {
	Instrument catalog.Instrument

	// Target is a catalog ID to search around. Until Resolve fills in the
	// centre, Query holds only the radius and exposure.
	Target string

	// Radius and Expose are the request's limits as text, with defaults
	// filled in.
	Radius string
	Expose string

	Query observations.Query
}

// ParseSearch extracts a search from the query string. Either target or
// both ra and dec must be given. RA and Dec accept decimal or sexagesimal
// notation.
func ParseSearch(r *http.Request, d Defaults) (SearchRequest, error) {
	q := r.URL.Query()

	inst, err := parseInstrument(q, d.Instrument)
	if err != nil {
		return SearchRequest{}, err
	}
	req := SearchRequest{
		Instrument: inst,
		Target:     strings.TrimSpace(q.Get("target")),
		Radius:     paramOr(q, "radius", d.RadiusDeg),
		Expose:     paramOr(q, "expose", d.MinExposeMinutes),
	}

	ra, dec := strings.TrimSpace(q.Get("ra")), strings.TrimSpace(q.Get("dec"))
	if req.Target != "" {
		if ra != "" || dec != "" {
			return SearchRequest{}, errors.NewValidationError("target", req.Target, "give either target or ra and dec, not both")
		}
		if req.Query.RadiusDeg, req.Query.MinExposeMinutes, err = observations.ParseLimits(req.Radius, req.Expose); err != nil {
			return SearchRequest{}, err
		}
		return req, nil
	}

	if req.Query, err = observations.ParseQuery(ra, dec, req.Radius, req.Expose); err != nil {
		return SearchRequest{}, err
	}
	return req, nil
}

// Resolve centres a target search on the target's catalogued position.
// Searches by position are left alone.
func (s *SearchRequest) Resolve(ids []observations.TargetIdentity) error {
	if s.Target == "" {
		return nil
	}
	q, err := targets.QueryAround(ids, s.Target, s.Radius, s.Expose)
	if err != nil {
		return err
	}
	s.Query = q
	return nil
}

// TargetsRequest is a parsed unique-target listing.
type TargetsRequest struct {
	Instrument catalog.Instrument
	Term       string // matched against catalog IDs and names
	Limit      int    // 0 means no limit
	Offset     int
}

// ParseTargets extracts a target listing from the query string.
func ParseTargets(r *http.Request, d Defaults) (TargetsRequest, error) {
	q := r.URL.Query()

	inst, err := parseInstrument(q, d.Instrument)
	if err != nil {
		return TargetsRequest{}, err
	}
	req := TargetsRequest{
		Instrument: inst,
		Term:       q.Get("q"),
	}
	if req.Limit, err = parseCount(q, "limit"); err != nil {
		return TargetsRequest{}, err
	}
	if req.Offset, err = parseCount(q, "offset"); err != nil {
		return TargetsRequest{}, err
	}
	return req, nil
}

// Apply filters ids by the search term and cuts out the requested page.
// It also returns the number of identities that matched before paging.
func (t TargetsRequest) Apply(ids []observations.TargetIdentity) ([]observations.TargetIdentity, int) {
	matched := targets.Filter(ids, t.Term)
	total := len(matched)

	start := min(t.Offset, total)
	end := total
	if t.Limit > 0 {
		end = min(start+t.Limit, total)
	}
	return matched[start:end], total
}

func parseInstrument(q url.Values, def catalog.Instrument) (catalog.Instrument, error) {
	raw := q.Get("instrument")
	if raw == "" {
		if def == "" {
			return "", errors.NewValidationError("instrument", raw, "required")
		}
		return def, nil
	}
	return catalog.ParseInstrument(raw)
}

// paramOr returns the trimmed parameter, or def written so that it parses
// back to the same value.
func paramOr(q url.Values, field string, def float64) string {
	if s := strings.TrimSpace(q.Get(field)); s != "" {
		return s
	}
	return strconv.FormatFloat(def, 'g', -1, 64)
}

func parseCount(q url.Values, field string) (int, error) {
	s := strings.TrimSpace(q.Get(field))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.NewValidationError(field, s, "must be a non-negative integer")
	}
	return n, nil
}
