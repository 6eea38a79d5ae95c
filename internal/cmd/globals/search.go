package globals

import "github.com/spf13/cobra"

// SearchFlags holds the flags of commands that run a proximity search.
// Coordinates are kept as typed so they can be parsed as decimal or
// sexagesimal; Radius and Expose are only applied when Changed reports
// them as set.
type SearchFlags struct {
	RA     string
	Dec    string
	Target string
	Radius float64
	Expose float64
}

// AddSearchFlags adds search flags to a command. The radius and exposure
// defaults come from configuration.
func AddSearchFlags(cmd *cobra.Command, radius, expose float64) *SearchFlags {
	flags := &SearchFlags{}

	cmd.Flags().StringVar(&flags.RA, "ra", "",
		"Centre right ascension in hours (decimal or HH:MM:SS)")
	cmd.Flags().StringVar(&flags.Dec, "dec", "",
		"Centre declination in degrees (decimal or DD:MM:SS)")
	cmd.Flags().StringVarP(&flags.Target, "target", "t", "",
		"Search around a catalog ID instead of --ra/--dec")
	cmd.Flags().Float64VarP(&flags.Radius, "radius", "r", radius,
		"Search radius in degrees")
	cmd.Flags().Float64VarP(&flags.Expose, "expose", "e", expose,
		"Minimum exposure in minutes (exclusive)")

	cmd.MarkFlagsRequiredTogether("ra", "dec")
	cmd.MarkFlagsMutuallyExclusive("target", "ra")
	cmd.MarkFlagsMutuallyExclusive("target", "dec")

	return flags
}

// TargetFlags holds the flags of commands that list targets.
type TargetFlags struct {
	Search string
	Limit  int
}

// AddTargetFlags adds target listing flags to a command.
func AddTargetFlags(cmd *cobra.Command) *TargetFlags {
	flags := &TargetFlags{}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "",
		"Only targets whose ID or name contains this text")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}
