// Package status implements the status command.
package status

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/schemasync/internal/cmd/application"
	"github.com/agentstation/schemasync/internal/cmd/globals"
	"github.com/agentstation/schemasync/internal/cmd/output"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// NewCommand creates the status command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var currentVersion int
	var target *globals.TargetFlags

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: "inspect",
		Short:   "Show the applied version and what a sync would do",
		Args:    cobra.NoArgs,
		Long: `Status reads the version stamped into the API model and the versions in the
registry, then shows the action a sync and a rollback would take.
Nothing is exported, published, or deployed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := app.Config()

			s, err := app.Syncer(ctx, target.Apply(cfg.Target()))
			if err != nil {
				return err
			}

			opts := []pkgsync.Option{pkgsync.WithCurrentVersionPtr(cfg.CurrentSchemaVersion)}
			if cmd.Flags().Changed("current-version") {
				opts = append(opts, pkgsync.WithCurrentVersion(currentVersion))
			}

			st, err := s.Status(ctx, opts...)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			var data any = st
			if format == output.FormatTable {
				data = output.StatusToTableData(st)
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().IntVar(&currentVersion, "current-version", 0, "treat this as the applied version instead of reading the model")
	target = globals.AddTargetFlags(cmd)

	return cmd
}
