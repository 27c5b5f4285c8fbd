// Package application provides the application interface for schemasync commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            s, err := app.Syncer(cmd.Context(), app.Config().Target())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use s
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/internal/config"
)

// Application provides what commands need from the application.
type Application interface {
	// Config returns the loaded sync settings.
	Config() *config.Config

	// Syncer returns a Syncer for target backed by the AWS services.
	Syncer(ctx context.Context, target schemasync.Target) (schemasync.Syncer, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format.
	OutputFormat() string

	// Version returns the application version.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
