// Package browse provides the browse command, an interactive target
// browser.
package browse

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/internal/tui"
	"github.com/agentstation/ultrasearch/pkg/constants"
)

// NewCommand creates the browse command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var radius, expose float64

	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"tui"},
		GroupID: "core",
		Short:   "Browse targets and their neighbours interactively",
		Long: `Browse a catalog's unique targets in a terminal UI.

Press / to filter by name or ID, enter to list the runs around the selected
target, esc to go back, tab to switch instrument and r to pick up a reloaded
catalog. With watch enabled, edits to catalog files are reloaded in the
background.`,
		Example: `  ultrasearch browse
  ultrasearch browse -i ultraspec --radius 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inst, err := app.Instrument()
			if err != nil {
				return err
			}
			store, err := app.Store(cmd.Context())
			if err != nil {
				return err
			}

			opts := tui.Options{Instrument: inst}
			opts.RadiusDeg, opts.MinExposeMinutes = app.SearchDefaults()
			if cmd.Flags().Changed("radius") {
				opts.RadiusDeg = radius
			}
			if cmd.Flags().Changed("expose") {
				opts.MinExposeMinutes = expose
			}

			return tui.NewApp(store, opts).WithContext(cmd.Context()).Run()
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", constants.DefaultRadiusDeg, "Search radius in degrees")
	cmd.Flags().Float64VarP(&expose, "expose", "e", constants.DefaultMinExposeMinutes, "Minimum exposure in minutes (exclusive)")

	return cmd
}
