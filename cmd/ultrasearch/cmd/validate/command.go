// Package validate provides the validate command, which reports suspicious
// catalog records.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/internal/cmd/alerts"
	"github.com/agentstation/ultrasearch/internal/cmd/hints"
	"github.com/agentstation/ultrasearch/internal/cmd/output"
	"github.com/agentstation/ultrasearch/internal/cmd/table"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

// Report is the validation outcome of one catalog.
type Report struct {
	Instrument catalog.Instrument `json:"instrument" yaml:"instrument"`
	Source     string             `json:"source" yaml:"source"`
	Records    int                `json:"records" yaml:"records"`
	Issues     []catalog.Issue    `json:"issues" yaml:"issues"`
}

// NewCommand creates the validate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate [instrument...]",
		GroupID: "management",
		Short:   "Check catalogs for malformed records",
		Long: `Check catalogs for records that searches will silently skip: missing
catalog IDs, positions or exposures that are not numbers, and coordinates
outside RA [0, 24) hours or Dec [-90, 90] degrees.

Issues are advisory. Such records never match a search and are listed
last by the target list, but they do not stop a catalog from loading.
Use --strict to exit with an error when any issue is found.`,
		Example: `  ultrasearch validate                  # Every configured catalog
  ultrasearch validate ultraspec        # One catalog
  ultrasearch validate --strict -o json # For CI`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when issues are found")
	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, args []string, strict bool) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	store, err := app.Store(cmd.Context())
	if err != nil {
		return err
	}

	insts := store.Instruments()
	if len(args) > 0 {
		insts = make([]catalog.Instrument, 0, len(args))
		for _, arg := range args {
			inst, err := catalog.ParseInstrument(arg)
			if err != nil {
				return err
			}
			insts = append(insts, inst)
		}
	}

	reports := make([]Report, 0, len(insts))
	total := 0
	for _, inst := range insts {
		snap, err := store.Snapshot(inst)
		if err != nil {
			return err
		}
		issues := catalog.Validate(snap.Records())
		if issues == nil {
			issues = []catalog.Issue{}
		}
		total += len(issues)
		reports = append(reports, Report{
			Instrument: inst,
			Source:     snap.Source,
			Records:    snap.Len(),
			Issues:     issues,
		})
	}

	out := cmd.OutOrStdout()
	aw := alerts.NewWriter(cmd.ErrOrStderr())
	switch format {
	case output.FormatJSON, output.FormatYAML:
		if err := output.NewFormatter(format).Format(out, reports); err != nil {
			return err
		}
	default:
		formatter := output.NewFormatter(output.FormatTable)
		for _, r := range reports {
			if len(r.Issues) == 0 {
				if err := aw.Write(alerts.NewSuccess("%s: %d records, no issues", r.Instrument.Title(), r.Records)); err != nil {
					return err
				}
				continue
			}
			warning := alerts.NewWarning("%s: %d issues in %d records", r.Instrument.Title(), len(r.Issues), r.Records)
			if err := aw.Write(warning.WithDetails(r.Source)); err != nil {
				return err
			}
			if err := formatter.Format(out, table.IssuesToTableData(r.Issues)); err != nil {
				return err
			}
		}
	}

	if err := hints.Display(cmd.ErrOrStderr(), format, hints.ForValidate(total, strict)); err != nil {
		return err
	}
	if strict && total > 0 {
		return errors.NewValidationError("catalog", total, fmt.Sprintf("%d issues found", total))
	}
	return nil
}
