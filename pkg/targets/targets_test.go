package targets_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/targets"
)

func record(name, id string, ra, dec float64) observations.ObservationRecord {
	return observations.ObservationRecord{
		Target:    name,
		CatalogID: id,
		RA:        observations.NumberOf(ra),
		Dec:       observations.NumberOf(dec),
		Expose:    observations.NumberOf(1),
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "NN~Ser", targets.NormalizeName("NN Ser"))
	assert.Equal(t, "NN~~Ser", targets.NormalizeName("NN  Ser"))
	assert.Equal(t, "~lead", targets.NormalizeName(" lead"))
	assert.Equal(t, "tab\tkept", targets.NormalizeName("tab\tkept"))
}

func TestResolveCollapsesSpellings(t *testing.T) {
	ids := targets.Resolve([]observations.ObservationRecord{
		record("NN Ser", "X1", 10.0, 20.0),
		record("NN  Ser", "X1", 10.0, 20.0),
	})

	require.Len(t, ids, 1)
	assert.Equal(t, observations.TargetKey{CatalogID: "X1", RA: "10", Dec: "20"}, ids[0].Key)
	assert.Equal(t, "X11020", ids[0].Key.String())
	assert.Equal(t, []string{"NN~Ser", "NN~~Ser"}, ids[0].Names)
	assert.Equal(t, 2, ids[0].Runs)
}

func TestResolveSuppressesDuplicateNames(t *testing.T) {
	ids := targets.Resolve([]observations.ObservationRecord{
		record("GD 552", "G1", 1, 2),
		record("gd 552", "G1", 1, 2),
		record("GD 552", "G1", 1, 2),
	})

	require.Len(t, ids, 1)
	assert.Equal(t, []string{"GD~552", "gd~552"}, ids[0].Names)
	assert.Equal(t, 3, ids[0].Runs)
}

func TestResolveKeepsNearDuplicatePositionsApart(t *testing.T) {
	ids := targets.Resolve([]observations.ObservationRecord{
		record("A", "X1", 10.0, 20.0),
		record("A", "X1", 10.0000001, 20.0),
		record("A", "X2", 10.0, 20.0),
	})
	assert.Len(t, ids, 3)
}

func TestResolveSortsStablyByRA(t *testing.T) {
	ids := targets.Resolve([]observations.ObservationRecord{
		record("late", "L", 23.5, 0),
		record("tie-first", "T1", 5, 10),
		record("early", "E", 0.1, 0),
		record("tie-second", "T2", 5, -10),
		record("tie-third", "T3", 5, 0),
	})

	got := make([]string, len(ids))
	for i, id := range ids {
		got[i] = id.CatalogID
	}
	assert.Equal(t, []string{"E", "T1", "T2", "T3", "L"}, got)
}

func TestResolveMalformedPositions(t *testing.T) {
	bad := observations.ObservationRecord{
		Target:    "mystery",
		CatalogID: "M",
		RA:        observations.ParseNumber("??"),
		Dec:       observations.NumberOf(1),
	}
	ids := targets.Resolve([]observations.ObservationRecord{
		record("good", "G", 3, 1),
		bad,
		bad,
	})

	require.Len(t, ids, 2)
	assert.Equal(t, "M", ids[0].CatalogID, "NaN RA sorts first")
	assert.Equal(t, "??", ids[0].Key.RA)
	assert.True(t, math.IsNaN(ids[0].RA.Float()))
	assert.Equal(t, 2, ids[0].Runs)
}

func TestResolveEmpty(t *testing.T) {
	assert.Empty(t, targets.Resolve(nil))
	assert.Empty(t, targets.Resolve([]observations.ObservationRecord{}))
}

// Counts and name sets must agree with a brute-force grouping for arbitrary
// catalogs.
func TestResolveMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"NN Ser", "NN  Ser", "V2051 Oph", "V2051  Oph", "HU Aqr"}

	var recs []observations.ObservationRecord
	for i := 0; i < 500; i++ {
		recs = append(recs, record(
			names[rng.Intn(len(names))],
			fmt.Sprintf("ID%d", rng.Intn(6)),
			float64(rng.Intn(4)),
			float64(rng.Intn(3)),
		))
	}

	want := map[observations.TargetKey]map[string]bool{}
	for _, r := range recs {
		if want[r.Key()] == nil {
			want[r.Key()] = map[string]bool{}
		}
		want[r.Key()][targets.NormalizeName(r.Target)] = true
	}

	ids := targets.Resolve(recs)
	require.Len(t, ids, len(want))
	for i, id := range ids {
		if i > 0 {
			assert.LessOrEqual(t, ids[i-1].RA.Float(), id.RA.Float())
		}
		assert.Len(t, id.Names, len(want[id.Key]))
		for _, n := range id.Names {
			assert.True(t, want[id.Key][n], "unexpected name %q", n)
		}
	}
}

func TestFindAndFilter(t *testing.T) {
	ids := targets.Resolve([]observations.ObservationRecord{
		record("NN Ser", "SDSS J1552", 15.87, 12.9),
		record("HU Aqr", "HU Aqr", 21.13, -5.3),
		record("HU Aqr", "HU Aqr", 21.14, -5.3),
	})

	assert.Len(t, targets.Find(ids, "HU Aqr"), 2)
	assert.Empty(t, targets.Find(ids, "nope"))

	assert.Len(t, targets.Filter(ids, "nn ser"), 1)
	assert.Len(t, targets.Filter(ids, "sdss"), 1)
	assert.Len(t, targets.Filter(ids, "  "), 3)
	assert.Empty(t, targets.Filter(ids, "xyz"))
}

func TestLocateSkipsMalformedPositions(t *testing.T) {
	odd := record("odd", "ODD", 0, 2)
	odd.RA = observations.ParseNumber("n/a")
	ids := targets.Resolve([]observations.ObservationRecord{
		record("X1", "X1", 5, 1),
		odd,
		record("odd", "ODD", 7.25, -3),
	})

	// The malformed position sorts first but is passed over.
	id, err := targets.Locate(ids, "ODD")
	require.NoError(t, err)
	assert.Equal(t, 7.25, id.RA.Float())

	_, err = targets.Locate(ids, "nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestLocateWithoutNumericPosition(t *testing.T) {
	odd := record("odd", "ODD", 0, 2)
	odd.RA = observations.ParseNumber("n/a")
	ids := targets.Resolve([]observations.ObservationRecord{odd})

	_, err := targets.Locate(ids, "ODD")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = targets.QueryAround(ids, "ODD", "0.1", "0")
	assert.True(t, errors.IsValidationError(err))
}

func TestQueryAround(t *testing.T) {
	ids := targets.Resolve([]observations.ObservationRecord{
		record("HU Aqr", "HU Aqr", 21.1328, -5.2944),
	})

	q, err := targets.QueryAround(ids, "HU Aqr", "0.5", "10")
	require.NoError(t, err)
	assert.Equal(t, observations.Query{
		CenterRAHours:    21.1328,
		CenterDecDeg:     -5.2944,
		RadiusDeg:        0.5,
		MinExposeMinutes: 10,
	}, q)

	_, err = targets.QueryAround(ids, "HU Aqr", "NaN", "10")
	assert.True(t, errors.IsValidationError(err))
}
