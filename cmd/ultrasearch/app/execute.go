package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/ultrasearch/internal/cmd/globals"
	"github.com/agentstation/ultrasearch/internal/cmd/output"
)

// Execute runs the CLI with the given arguments. This is the main entry
// point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ultrasearch",
		Short:   "Search ULTRACAM and ULTRASPEC observation logs",
		Version: a.version,
		Long: `ultrasearch cross-matches the nightly observation logs of the ULTRACAM
and ULTRASPEC cameras.

It lists the unique targets of each catalog, finds every run within a
radius of a sky position or a catalogued target, and serves both over an
HTTP API. Catalog paths, search defaults and server settings are read from
~/.ultrasearch.yaml and ULTRASEARCH_* environment variables; without a
configured catalog the embedded sample logs are used.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "utility",
		Title: "Utility Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.ultrasearch.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("ultrasearch {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the
// configuration when --config names a file, applies the global flags and
// rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor,
		flags.Output, flags.Instrument, mustGetString(cmd, "log-level"))

	if _, err := output.ParseFormat(a.config.Output); err != nil {
		return err
	}
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewTargetsCommand())
	rootCmd.AddCommand(a.NewSearchCommand())
	rootCmd.AddCommand(a.NewServeCommand())
	rootCmd.AddCommand(a.NewBrowseCommand())

	// Management commands
	rootCmd.AddCommand(a.NewValidateCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewFormatCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError prints an error and exits with status 1. It is meant for
// top-level error handling in main.go.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
