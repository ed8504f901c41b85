package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/esxsync/internal/cmd/output"
	"github.com/agentstation/esxsync/pkg/errors"
)

// Execute runs the esxsync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "esxsync",
		Short:   "Sync Meraki access point names into Ekahau projects",
		Version: a.version,
		Long: `esxsync renames the access points of an Ekahau survey project (.esx)
after the Meraki Dashboard devices they were measured from.

Each wireless device's BSSID is matched against the radio MAC addresses
recorded in the survey. A match walks from the measurement to its measured
radio and on to the access point, which then takes the device's name and,
optionally, its model. The original project is never modified; the result
is written next to it as <project>.esx_modified.esx.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "dashboard",
		Title: "Dashboard Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.esxsync.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("token", "", "Meraki Dashboard API key (overrides MERAKI_API_KEY)")
	flags.String("log-file", "", "also write logs to this file as JSON")

	rootCmd.SetVersionTemplate("esxsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the
// configuration when --config names a file, then applies the flags on top.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := Flags{
		Verbose:  mustGetBool(cmd, "verbose"),
		Quiet:    mustGetBool(cmd, "quiet"),
		NoColor:  mustGetBool(cmd, "no-color"),
		Format:   mustGetString(cmd, "format"),
		LogLevel: mustGetString(cmd, "log-level"),
		Token:    mustGetString(cmd, "token"),
		LogFile:  mustGetString(cmd, "log-file"),
	}

	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfig(path)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	a.config.Format = string(output.DetectFormat(string(format)))

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints err and exits with the code mapped to its kind.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(errors.ExitCode(err))
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
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
