package hints

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/internal/cmd/output"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

func TestForSearch(t *testing.T) {
	t.Run("matches found", func(t *testing.T) {
		assert.Empty(t, ForSearch(SearchContext{Matches: 3}))
	})

	t.Run("by position", func(t *testing.T) {
		got := ForSearch(SearchContext{
			Instrument: "ultracam",
			Query:      observations.Query{CenterRAHours: 15.5, CenterDecDeg: -2, RadiusDeg: 0.1},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "ultrasearch search --ra 15.5 --dec -2 -i ultracam --radius 1", got[0].Command)
	})

	t.Run("by target with exposure limit", func(t *testing.T) {
		got := ForSearch(SearchContext{
			Target: "NN Ser",
			Query:  observations.Query{RadiusDeg: 0.1, MinExposeMinutes: 10},
		})
		require.Len(t, got, 2)
		assert.Equal(t, `ultrasearch search --target "NN Ser" --expose 0`, got[0].Command)
		assert.Contains(t, got[1].Command, "--radius 1")
	})

	t.Run("zero radius", func(t *testing.T) {
		got := ForSearch(SearchContext{Target: "X"})
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Command, "--radius 1")
	})
}

func TestForTargets(t *testing.T) {
	assert.Empty(t, ForTargets("", 0))
	assert.Empty(t, ForTargets("ser", 2))

	got := ForTargets("vega", 0)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0].Message, `"vega"`)
}

func TestForValidate(t *testing.T) {
	assert.Empty(t, ForValidate(0, false))
	assert.Empty(t, ForValidate(3, true))
	assert.Len(t, ForValidate(3, false), 1)
}

func TestDisplay(t *testing.T) {
	list := []*Hint{NewCommand("Try a wider radius", "ultrasearch search --radius 1"), New("Plain note")}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Display(&buf, output.FormatTable, list))
		assert.Equal(t, "\n💡 Try a wider radius\n   Run: ultrasearch search --radius 1\n💡 Plain note\n", buf.String())
	})

	t.Run("no icons", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewFormatter(&buf, output.FormatTable).WithConfig(FormatterConfig{})
		require.NoError(t, f.FormatHints(list[1:]))
		assert.Equal(t, "\nTip: Plain note\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Display(&buf, output.FormatJSON, list))
		var got struct {
			Hints []hintData `json:"hints"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Hints, 2)
		assert.Equal(t, "ultrasearch search --radius 1", got.Hints[0].Command)
		assert.Empty(t, got.Hints[1].Command)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Display(&buf, output.FormatYAML, list))
		var got struct {
			Hints []hintData `yaml:"hints"`
		}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Len(t, got.Hints, 2)
	})

	t.Run("html and empty write nothing", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Display(&buf, output.FormatHTML, list))
		require.NoError(t, Display(&buf, output.FormatTable, nil))
		assert.Empty(t, buf.String())
	})
}
