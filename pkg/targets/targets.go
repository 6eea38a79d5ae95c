// Package targets collapses a catalog into unique sky positions.
//
// Observers type target names by hand, so the same object shows up as
// "NN Ser", "NN  Ser" and "nn ser". Resolve groups runs by catalog ID and
// literal position instead, and keeps every spelling it saw.
package targets

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

// NameSeparator replaces spaces in target names.
const NameSeparator = "~"

// NormalizeName turns a multi-word name into a single token. Only spaces are
// touched; case and punctuation are left alone.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, " ", NameSeparator)
}

// Resolve returns one TargetIdentity per distinct (catalog ID, RA literal,
// Dec literal) triple, sorted by RA. Identities with equal RA keep the order
// in which they were first met. The result is rebuilt on every call.
func Resolve(records []observations.ObservationRecord) []observations.TargetIdentity {
	index := make(map[observations.TargetKey]int, len(records))
	seen := make([]map[string]struct{}, 0)
	ids := make([]observations.TargetIdentity, 0)

	for _, rec := range records {
		key := rec.Key()
		name := NormalizeName(rec.Target)

		i, ok := index[key]
		if !ok {
			index[key] = len(ids)
			ids = append(ids, observations.TargetIdentity{
				Key:       key,
				CatalogID: rec.CatalogID,
				RA:        rec.RA,
				Dec:       rec.Dec,
				Names:     []string{name},
				Runs:      1,
			})
			seen = append(seen, map[string]struct{}{name: {}})
			continue
		}

		ids[i].Runs++
		if _, dup := seen[i][name]; !dup {
			seen[i][name] = struct{}{}
			ids[i].Names = append(ids[i].Names, name)
		}
	}

	slices.SortStableFunc(ids, func(a, b observations.TargetIdentity) int {
		return cmp.Compare(a.RA.Float(), b.RA.Float())
	})
	return ids
}

// Find returns the identities recorded under catalogID, in input order.
func Find(ids []observations.TargetIdentity, catalogID string) []observations.TargetIdentity {
	var out []observations.TargetIdentity
	for _, id := range ids {
		if id.CatalogID == catalogID {
			out = append(out, id)
		}
	}
	return out
}

// Locate returns the first identity recorded under catalogID whose RA and
// Dec are both finite numbers. A catalog ID with no such position is a
// validation error; an unknown one is not found.
func Locate(ids []observations.TargetIdentity, catalogID string) (observations.TargetIdentity, error) {
	found := Find(ids, catalogID)
	if len(found) == 0 {
		return observations.TargetIdentity{}, errors.NewNotFoundError("target", catalogID)
	}
	for _, id := range found {
		if id.RA.Valid() && id.Dec.Valid() {
			return id, nil
		}
	}
	return observations.TargetIdentity{}, errors.NewValidationError("target", catalogID, "no catalogued position is numeric")
}

// QueryAround builds a query centred on catalogID's position. The centre
// is the catalog literal, parsed the same way as user input.
func QueryAround(ids []observations.TargetIdentity, catalogID, radius, expose string) (observations.Query, error) {
	id, err := Locate(ids, catalogID)
	if err != nil {
		return observations.Query{}, err
	}
	return observations.ParseQuery(id.RA.String(), id.Dec.String(), radius, expose)
}

// Filter returns the identities whose catalog ID or any name contains term,
// ignoring case. Spaces in term match the name separator.
func Filter(ids []observations.TargetIdentity, term string) []observations.TargetIdentity {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ids
	}
	token := NormalizeName(term)

	var out []observations.TargetIdentity
	for _, id := range ids {
		if strings.Contains(strings.ToLower(id.CatalogID), term) {
			out = append(out, id)
			continue
		}
		for _, name := range id.Names {
			if strings.Contains(strings.ToLower(name), token) {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
