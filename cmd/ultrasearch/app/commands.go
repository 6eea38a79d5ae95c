package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/cmd/ultrasearch/cmd/browse"
	"github.com/agentstation/ultrasearch/cmd/ultrasearch/cmd/format"
	"github.com/agentstation/ultrasearch/cmd/ultrasearch/cmd/search"
	"github.com/agentstation/ultrasearch/cmd/ultrasearch/cmd/serve"
	"github.com/agentstation/ultrasearch/cmd/ultrasearch/cmd/targets"
	"github.com/agentstation/ultrasearch/cmd/ultrasearch/cmd/validate"
)

// NewTargetsCommand creates the targets command with app dependencies.
func (a *App) NewTargetsCommand() *cobra.Command {
	return targets.NewCommand(a)
}

// NewSearchCommand creates the search command with app dependencies.
func (a *App) NewSearchCommand() *cobra.Command {
	return search.NewCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// NewBrowseCommand creates the browse command with app dependencies.
func (a *App) NewBrowseCommand() *cobra.Command {
	return browse.NewCommand(a)
}

// NewValidateCommand creates the validate command with app dependencies.
func (a *App) NewValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// NewFormatCommand creates the format command with app dependencies.
func (a *App) NewFormatCommand() *cobra.Command {
	return format.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "utility",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("ultrasearch %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
