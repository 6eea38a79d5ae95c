package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/pkg/constants"
)

func TestBrowseFlags(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})

	require.NoError(t, cmd.ParseFlags([]string{"-r", "0.5"}))

	radius, err := cmd.Flags().GetFloat64("radius")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, radius, 1e-12)

	expose, err := cmd.Flags().GetFloat64("expose")
	require.NoError(t, err)
	assert.InDelta(t, constants.DefaultMinExposeMinutes, expose, 1e-12)
	assert.False(t, cmd.Flags().Changed("expose"))
}
