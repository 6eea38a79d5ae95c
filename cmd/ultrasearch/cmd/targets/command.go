// Package targets provides the targets command: the unique targets of a
// catalog, one row per catalog ID and position.
package targets

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/internal/cmd/globals"
	"github.com/agentstation/ultrasearch/internal/cmd/hints"
	"github.com/agentstation/ultrasearch/internal/cmd/output"
	"github.com/agentstation/ultrasearch/internal/cmd/table"
	"github.com/agentstation/ultrasearch/internal/render"
	"github.com/agentstation/ultrasearch/pkg/targets"
)

// NewCommand creates the targets command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *globals.TargetFlags

	cmd := &cobra.Command{
		Use:     "targets",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List the unique targets of a catalog",
		Long: `List every distinct target in an instrument's catalog.

Runs are grouped by catalog ID and position, so an object observed under
several spellings appears once with all of its names. Targets are sorted
by right ascension.`,
		Example: `  ultrasearch targets                      # ULTRACAM targets
  ultrasearch targets -i ultraspec         # ULTRASPEC targets
  ultrasearch targets --search "nn ser"    # Filter by name or ID
  ultrasearch targets -o html > index.html # Render the target page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	flags = globals.AddTargetFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *globals.TargetFlags) error {
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

	ids := targets.Filter(snap.Targets(), flags.Search)
	if flags.Limit > 0 && len(ids) > flags.Limit {
		ids = ids[:flags.Limit]
	}

	app.Logger().Debug().
		Str("instrument", inst.String()).
		Int("targets", len(ids)).
		Msg("Listing targets")

	if format == output.FormatHTML {
		return render.TargetsPage(cmd.OutOrStdout(), ids, render.PageOptions{
			Title:      inst.Title(),
			LogBaseURL: app.ServerConfig().LogBaseURL,
		})
	}

	formatter := output.NewFormatter(format)
	if err := formatter.Format(cmd.OutOrStdout(), output.Select(format, ids, table.TargetsToTableData(ids))); err != nil {
		return err
	}
	return hints.Display(cmd.ErrOrStderr(), format, hints.ForTargets(flags.Search, len(ids)))
}
