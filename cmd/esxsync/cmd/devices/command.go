// Package devices implements the devices command.
package devices

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/esxsync/internal/cmd/application"
	"github.com/agentstation/esxsync/internal/cmd/output"
	pkgdevices "github.com/agentstation/esxsync/pkg/devices"
)

// NewCommand creates the devices command.
func NewCommand(app application.Application) *cobra.Command {
	var query pkgdevices.Query

	cmd := &cobra.Command{
		Use:     "devices",
		GroupID: "dashboard",
		Short:   "List wireless devices from the Dashboard",
		Args:    cobra.NoArgs,
		Example: `  esxsync devices                      # All wireless devices
  esxsync devices --org "Acme Campus"  # One organization
  esxsync devices --bssids -o wide     # Resolve each device's BSSID`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := app.Directory()
			if err != nil {
				return err
			}

			set, err := dir.Devices(cmd.Context(), query)
			if err != nil {
				return err
			}

			app.Logger().Debug().Int("count", set.Len()).Msg("Listed devices")
			return output.FormatDevices(cmd.OutOrStdout(), output.Format(app.OutputFormat()), set.Devices())
		},
	}

	cmd.Flags().StringVar(&query.Organization, "org", "", "only list devices of this organization (by name)")
	cmd.Flags().BoolVar(&query.BSSIDs, "bssids", false, "resolve the first enabled BSSID of each device (one request per device)")

	return cmd
}
