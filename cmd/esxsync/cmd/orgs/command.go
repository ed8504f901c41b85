// Package orgs implements the orgs command.
package orgs

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/cmd/output"
)

// NewCommand creates the orgs command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "orgs",
		GroupID: "dashboard",
		Short:   "List Dashboard organizations",
		Aliases: []string{"organizations"},
		Args:    cobra.NoArgs,
		Example: `  esxsync orgs             # List organizations the API key can see
  esxsync orgs -o json     # As JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := app.Directory()
			if err != nil {
				return err
			}

			orgs, err := dir.Organizations(cmd.Context())
			if err != nil {
				return err
			}

			app.Logger().Debug().Int("count", len(orgs)).Msg("Listed organizations")
			return output.FormatOrganizations(cmd.OutOrStdout(), output.Format(app.OutputFormat()), orgs)
		},
	}
}
