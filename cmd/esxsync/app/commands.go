package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/esxsync/cmd/esxsync/cmd/devices"
	"github.com/agentstation/esxsync/cmd/esxsync/cmd/inspect"
	"github.com/agentstation/esxsync/cmd/esxsync/cmd/orgs"
	syncmd "github.com/agentstation/esxsync/cmd/esxsync/cmd/sync"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(syncmd.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))

	// Dashboard commands
	rootCmd.AddCommand(orgs.NewCommand(a))
	rootCmd.AddCommand(devices.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("esxsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
