package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/internal/cmd/table"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"html", FormatHTML, false},
		{"", "", false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestSelect(t *testing.T) {
	value := []string{"x"}
	tbl := Data{Headers: []string{"A"}}
	assert.Equal(t, value, Select(FormatJSON, value, tbl))
	assert.Equal(t, value, Select(FormatYAML, value, tbl))
	assert.Equal(t, tbl, Select(FormatTable, value, tbl))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := Data{
		Headers:         []string{"ID", "Runs"},
		Rows:            [][]string{{"NN Ser", "12"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "NN Ser")
	assert.Contains(t, out, "12")
}

func TestTableFormatterReflection(t *testing.T) {
	type row struct {
		CatalogID string `json:"catalog_id"`
		Runs      int    `json:"runs,omitempty"`
		hidden    string
		Skipped   string `json:"-"`
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{CatalogID: "HU Aqr", Runs: 3, hidden: "h", Skipped: "s"}}))
	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "CATALOG ID")
	assert.Contains(t, out, "HU Aqr")
	assert.NotContains(t, strings.ToUpper(out), "SKIPPED")

	buf.Reset()
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, row{CatalogID: "OY Car"}))
	assert.Contains(t, buf.String(), "OY Car")
}

func TestStructuredFormatters(t *testing.T) {
	payload := map[string]any{"id": "GD 552", "runs": 4}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, payload))
	assert.JSONEq(t, `{"id":"GD 552","runs":4}`, buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, payload))
	assert.Contains(t, buf.String(), "id: GD 552")
	assert.Contains(t, buf.String(), "runs: 4")
}
