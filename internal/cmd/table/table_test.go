package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

func TestMatchesToTableData(t *testing.T) {
	matches := []observations.MatchResult{{
		ObservationRecord: observations.ObservationRecord{
			Target:    "NN Ser",
			CatalogID: "NN Ser",
			RA:        observations.NumberOf(15.8692),
			Dec:       observations.NumberOf(12.9175),
			Run:       "2002-05",
			Night:     "2002-05-13",
			Num:       observations.NumberOf(7),
			Expose:    observations.NumberOf(42.25),
			Comment:   "eclipse",
		},
		DistanceDeg: 0.0349,
	}}

	data := MatchesToTableData(matches)
	require.Len(t, data.Rows, 1)
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
	assert.Equal(t, []string{
		"NN Ser", "NN Ser", "15:52:09.12", "+12:55:03.0", "0.03",
		"2002-05", "2002-05-13", "7", "42.2", "eclipse",
	}, data.Rows[0])
}

func TestTargetsToTableData(t *testing.T) {
	ids := []observations.TargetIdentity{{
		CatalogID: "X1",
		RA:        observations.ParseNumber("bad"),
		Dec:       observations.NumberOf(-5.5),
		Names:     []string{"NN~Ser", "NN~~Ser"},
		Runs:      2,
	}}

	data := TargetsToTableData(ids)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"X1", "bad", "-05:30:00.0", "NN~Ser NN~~Ser", "2"}, data.Rows[0])
}

func TestIssuesAndInfos(t *testing.T) {
	issues := IssuesToTableData([]catalog.Issue{{Index: 3, Field: "ra", Message: "not a number"}})
	assert.Equal(t, []string{"3", "-", "-", "-", "ra", "not a number"}, issues.Rows[0])

	infos := InfosToTableData([]catalog.Info{{Instrument: catalog.ULTRASPEC, Records: 7, Targets: 5, Generation: 2, Source: "x.json"}})
	assert.Equal(t, []string{"ULTRASPEC", "7", "5", "2", "x.json"}, infos.Rows[0])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "-", FormatExpose(observations.Number{}))
	assert.Equal(t, "10.0", FormatExpose(observations.NumberOf(10)))
	assert.Equal(t, "00:00:00.00", FormatRA(observations.NumberOf(0)))
}
