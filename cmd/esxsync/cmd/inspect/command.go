// Package inspect implements the inspect command.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/cmd/output"
	"github.com/agentstation/esxsync/pkg/esx"
)

// NewCommand creates the inspect command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <project.esx>",
		GroupID: "core",
		Short:   "List the access points of an Ekahau project",
		Long: `Inspect reads an Ekahau project without extracting it and lists its
access points together with the number of measured radios and measurements
linked to each. Access points without measurements cannot be matched by sync.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := esx.ReadDocuments(args[0])
			if err != nil {
				return err
			}

			aps := docs.Summarize()
			app.Logger().Debug().
				Str("project", args[0]).
				Int("access_points", len(aps)).
				Int("measurements", len(docs.Measurements.AccessPointMeasurements)).
				Msg("Read project")

			return output.FormatAccessPoints(cmd.OutOrStdout(), output.Format(app.OutputFormat()), aps)
		},
	}
}
