// Package format provides the format command, which renders a decimal
// value as sexagesimal DD:MM:SS.
package format

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/appcontext"
	"github.com/agentstation/ultrasearch/internal/cmd/output"
	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/sexagesimal"
)

// Result is the structured form of a formatted value.
type Result struct {
	Value     float64 `json:"value" yaml:"value"`
	Precision int     `json:"precision" yaml:"precision"`
	Sign      bool    `json:"sign" yaml:"sign"`
	Formatted string  `json:"formatted" yaml:"formatted"`
}

// NewCommand creates the format command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		precision int
		sign      bool
	)

	cmd := &cobra.Command{
		Use:     "format <value>",
		GroupID: "utility",
		Short:   "Format a value as sexagesimal",
		Long: `Format a decimal value as DD:MM:SS.

Seconds are rounded to --precision decimals and carry into the minutes and
degrees, so the seconds field never reads 60. With --sign the output starts
with + or -. The value may itself be sexagesimal, which makes the command a
converter between precisions.`,
		Example: `  ultrasearch format 15.88225                # 15:52:56.10
  ultrasearch format 12.912222 --sign -p 1  # +12:54:44.0
  ultrasearch format --sign -- -0.5         # -00:30:00.00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := sexagesimal.Parse(args[0])
			if err != nil {
				return errors.NewValidationError("value", args[0], err.Error())
			}
			res := Result{
				Value:     value,
				Precision: precision,
				Sign:      sign,
				Formatted: sexagesimal.Format(value, precision, sign),
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), res)
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Formatted)
				return err
			}
		},
	}

	cmd.Flags().IntVarP(&precision, "precision", "p", 2, "Decimal places of the seconds field")
	cmd.Flags().BoolVar(&sign, "sign", false, "Always emit a leading + or -")

	return cmd
}
