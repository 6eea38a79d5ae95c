package validate

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

func execute(t *testing.T, app appcontext.Interface, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func jsonApp() *appcontext.Mock {
	return &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}
}

func TestValidateAllCatalogs(t *testing.T) {
	out, _, err := execute(t, jsonApp())
	require.NoError(t, err)

	var reports []Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, catalog.ULTRACAM, reports[0].Instrument)
	assert.Equal(t, 12, reports[0].Records)
	require.NotEmpty(t, reports[0].Issues)
	fields := make([]string, 0, len(reports[0].Issues))
	for _, is := range reports[0].Issues {
		fields = append(fields, is.Field)
	}
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "ra")

	assert.Equal(t, catalog.ULTRASPEC, reports[1].Instrument)
	assert.Empty(t, reports[1].Issues)
}

func TestValidateOneCatalog(t *testing.T) {
	out, _, err := execute(t, jsonApp(), "ULTRASPEC")
	require.NoError(t, err)

	var reports []Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, catalog.ULTRASPEC, reports[0].Instrument)
	assert.NotNil(t, reports[0].Issues)
}

func TestValidateUnknownInstrument(t *testing.T) {
	_, _, err := execute(t, jsonApp(), "hipercam")
	require.Error(t, err)
}

func TestValidateStrict(t *testing.T) {
	_, _, err := execute(t, jsonApp(), "--strict", "ultracam")
	require.Error(t, err)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, _, err = execute(t, jsonApp(), "--strict", "ultraspec")
	assert.NoError(t, err)
}

func TestValidateTable(t *testing.T) {
	out, alerts, err := execute(t, &appcontext.Mock{})
	require.NoError(t, err)

	assert.Contains(t, alerts, "ULTRACAM")
	assert.Contains(t, alerts, "ULTRASPEC: 7 records, no issues")
	assert.Contains(t, out, "missing catalog id")
}
