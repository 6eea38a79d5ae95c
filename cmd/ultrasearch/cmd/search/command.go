// Package search provides the search command: every run within a radius
// of a sky position or of a catalogued target.
package search

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/internal/cmd/globals"
	"github.com/agentstation/ultrasearch/internal/cmd/hints"
	"github.com/agentstation/ultrasearch/internal/cmd/output"
	"github.com/agentstation/ultrasearch/internal/cmd/table"
	"github.com/agentstation/ultrasearch/internal/render"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/constants"
	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/targets"
)

// NewCommand creates the search command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *globals.SearchFlags

	cmd := &cobra.Command{
		Use:     "search",
		GroupID: "core",
		Short:   "Find runs near a position or target",
		Long: `Search an instrument's catalog for runs near a sky position.

A run matches when it lies strictly inside the radius and its exposure is
strictly longer than the minimum. Distances use a flat approximation
around the centre, which is accurate for radii of a degree or so.

The centre is either --ra and --dec, in decimal or sexagesimal notation,
or the position of a catalogued target given with --target.`,
		Example: `  ultrasearch search --ra 15:52:56.0 --dec +12:54:44   # Sexagesimal centre
  ultrasearch search --ra 15.88 --dec 12.91 -r 0.5      # Wider radius
  ultrasearch search -t "NN Ser" -e 10                  # Runs over 10 minutes
  ultrasearch search -t "NN Ser" -o html > nnser.html   # Render the results page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	flags = globals.AddSearchFlags(cmd, constants.DefaultRadiusDeg, constants.DefaultMinExposeMinutes)
	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *globals.SearchFlags) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	inst, err := app.Instrument()
	if err != nil {
		return err
	}
	store, err := app.Store(cmd.Context())
	if err != nil {
		return err
	}
	snap, err := store.Snapshot(inst)
	if err != nil {
		return err
	}

	q, err := buildQuery(cmd, app, flags, snap)
	if err != nil {
		return err
	}
	matches := snap.Search(q)

	app.Logger().Debug().
		Str("instrument", inst.String()).
		Float64("ra", q.CenterRAHours).
		Float64("dec", q.CenterDecDeg).
		Float64("radius", q.RadiusDeg).
		Float64("expose", q.MinExposeMinutes).
		Int("matches", len(matches)).
		Msg("Search complete")

	if format == output.FormatHTML {
		return render.SearchPage(cmd.OutOrStdout(), q, matches, render.PageOptions{
			Title:      inst.Title(),
			LogBaseURL: app.ServerConfig().LogBaseURL,
		})
	}

	formatter := output.NewFormatter(format)
	if err := formatter.Format(cmd.OutOrStdout(), output.Select(format, matches, table.MatchesToTableData(matches))); err != nil {
		return err
	}
	return hints.Display(cmd.ErrOrStderr(), format, hints.ForSearch(hints.SearchContext{
		Instrument: inst.String(),
		Query:      q,
		Target:     flags.Target,
		Matches:    len(matches),
	}))
}

// buildQuery resolves the search centre and limits. Radius and exposure
// come from configuration unless given on the command line; everything
// is then parsed the same way the server parses a request.
func buildQuery(cmd *cobra.Command, app appcontext.Interface, flags *globals.SearchFlags, snap *catalog.Snapshot) (observations.Query, error) {
	radius, expose := app.SearchDefaults()
	if cmd.Flags().Changed("radius") {
		radius = flags.Radius
	}
	if cmd.Flags().Changed("expose") {
		expose = flags.Expose
	}
	rs := strconv.FormatFloat(radius, 'g', -1, 64)
	es := strconv.FormatFloat(expose, 'g', -1, 64)

	if flags.Target != "" {
		if found := targets.Find(snap.Targets(), flags.Target); len(found) > 1 {
			app.Logger().Warn().
				Str("target", flags.Target).
				Int("positions", len(found)).
				Msg("Target has several catalogued positions, using the first numeric one")
		}
		return targets.QueryAround(snap.Targets(), flags.Target, rs, es)
	}

	if flags.RA == "" || flags.Dec == "" {
		return observations.Query{}, errors.NewValidationError("ra", flags.RA, "either --ra and --dec or --target is required")
	}
	return observations.ParseQuery(flags.RA, flags.Dec, rs, es)
}
