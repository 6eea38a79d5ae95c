package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWalksToRoot(t *testing.T) {
	root := &cobra.Command{Use: "ultrasearch"}
	AddFlags(root)
	child := &cobra.Command{Use: "search", RunE: func(*cobra.Command, []string) error { return nil }}
	root.AddCommand(child)

	root.SetArgs([]string{"search", "-o", "json", "-i", "ultraspec", "-v"})
	require.NoError(t, root.Execute())

	flags, err := Parse(child)
	require.NoError(t, err)
	assert.Equal(t, &Flags{Output: "json", Verbose: true, Instrument: "ultraspec"}, flags)
}

func TestSearchFlags(t *testing.T) {
	run := func(args ...string) (*SearchFlags, error) {
		cmd := &cobra.Command{Use: "search", RunE: func(*cobra.Command, []string) error { return nil }}
		flags := AddSearchFlags(cmd, 0.1, 0)
		cmd.SetArgs(args)
		return flags, cmd.Execute()
	}

	flags, err := run("--ra", "10:30:00", "--dec", "-5", "-r", "1", "-e", "5")
	require.NoError(t, err)
	assert.Equal(t, SearchFlags{RA: "10:30:00", Dec: "-5", Radius: 1, Expose: 5}, *flags)

	flags, err = run("--target", "NN Ser")
	require.NoError(t, err)
	assert.Equal(t, SearchFlags{Target: "NN Ser", Radius: 0.1}, *flags)

	_, err = run("--ra", "10")
	assert.Error(t, err, "ra needs dec")

	_, err = run("--target", "X", "--ra", "1", "--dec", "2")
	assert.Error(t, err, "target excludes coordinates")
}

func TestTargetFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "targets", RunE: func(*cobra.Command, []string) error { return nil }}
	flags := AddTargetFlags(cmd)
	cmd.SetArgs([]string{"-s", "ser", "-l", "5"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, TargetFlags{Search: "ser", Limit: 5}, *flags)
}
