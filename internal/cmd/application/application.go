// Package application provides the application interface for esxsync commands.
//
// The Application interface is the contract between the App container and
// the command packages. Commands accept it rather than the concrete App so
// they can be tested against a Mock.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            dir, err := app.Directory()
//	            if err != nil {
//	                return err
//	            }
//	            orgs, err := dir.Organizations(cmd.Context())
//	            // ...
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/esxsync/internal/sources/meraki"
	"github.com/agentstation/esxsync/pkg/devices"
	"github.com/agentstation/esxsync/pkg/syncer"
)

// Directory is the remote device directory the commands query.
// *meraki.Client implements it.
type Directory interface {
	// Organizations lists the organizations the API key can see.
	Organizations(ctx context.Context) ([]meraki.Organization, error)

	// Devices returns the wireless devices selected by the query.
	Devices(ctx context.Context, q devices.Query) (*devices.Set, error)
}

// Application provides the application interface that commands need.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Directory returns the Dashboard client, created lazily from the
	// configured API key.
	Directory() (Directory, error)

	// SyncOptions returns the sync defaults taken from configuration.
	// Command flags are applied after them.
	SyncOptions() []syncer.Option

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

var _ Directory = (*meraki.Client)(nil)
