package targets

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/pkg/catalog"
)

func execute(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type target struct {
	ID    string   `json:"id"`
	Names []string `json:"names"`
	Runs  int      `json:"runs"`
}

func TestTargetsJSON(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}

	out, err := execute(t, app, "--search", "nn ser")
	require.NoError(t, err)

	var got []target
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "NN Ser", got[0].ID)
	assert.Equal(t, 2, got[0].Runs)
	assert.ElementsMatch(t, []string{"NN~Ser", "NN~~Ser"}, got[0].Names)
}

func TestTargetsLimit(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}

	out, err := execute(t, app, "--limit", "2")
	require.NoError(t, err)

	var got []target
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
}

func TestTargetsInstrument(t *testing.T) {
	app := &appcontext.Mock{
		OutputFormatFunc: func() string { return "json" },
		InstrumentFunc:   func() (catalog.Instrument, error) { return catalog.ULTRASPEC, nil },
	}

	out, err := execute(t, app, "--search", "WD 1145")
	require.NoError(t, err)
	assert.Contains(t, out, "WD 1145+017")
	assert.NotContains(t, out, "OY Car")
}

func TestTargetsTable(t *testing.T) {
	app := &appcontext.Mock{}

	out, err := execute(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "HU Aqr")
}

func TestTargetsHTML(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "html" }}

	out, err := execute(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "HU Aqr")
}

func TestTargetsInvalidFormat(t *testing.T) {
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "xml" }}

	_, err := execute(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
