// Package sync implements the sync command.
package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/internal/cmd/application"
	"github.com/agentstation/schemasync/internal/cmd/emoji"
	"github.com/agentstation/schemasync/internal/cmd/globals"
	"github.com/agentstation/schemasync/internal/cmd/output"
	"github.com/agentstation/schemasync/pkg/reconcile"
	"github.com/agentstation/schemasync/pkg/schema"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	Rollback       bool
	CurrentVersion int
	DryRun         bool
	Description    string
	Target         *globals.TargetFlags
}

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Reconcile the API model with the schema registry",
		Args:    cobra.NoArgs,
		Long: `Sync performs one reconciliation run:

• Read the version stamped into the API model (or use --current-version)
• List the schema versions in the registry
• Decide: do nothing, advance to the latest version, or roll back one version
• Export the target version, strip the event envelope, and check it compiles
• Replace the model's schema and deploy the API to the stage

A model that already carries the latest version is left untouched.`,
		Example: `  schemasync sync                          # Advance to the latest version
  schemasync sync --rollback               # Step back one version
  schemasync sync --dry-run -o json        # Preview without publishing
  schemasync sync --current-version 3      # Ignore the model's marker`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Rollback, "rollback", false, "roll back one version (default from Rollback)")
	cmd.Flags().IntVar(&flags.CurrentVersion, "current-version", 0, "treat this as the applied version instead of reading the model")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "decide and transform without publishing or deploying")
	cmd.Flags().StringVar(&flags.Description, "description", "", "deployment description")
	flags.Target = globals.AddTargetFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	ctx := cmd.Context()
	cfg := app.Config()

	s, err := app.Syncer(ctx, flags.Target.Apply(cfg.Target()))
	if err != nil {
		return err
	}

	opts := []pkgsync.Option{
		pkgsync.WithRollback(cfg.Rollback),
		pkgsync.WithCurrentVersionPtr(cfg.CurrentSchemaVersion),
		pkgsync.WithDryRun(flags.DryRun),
		pkgsync.WithDeploymentDescription(flags.Description),
	}
	if cmd.Flags().Changed("rollback") {
		opts = append(opts, pkgsync.WithRollback(flags.Rollback))
	}
	if cmd.Flags().Changed("current-version") {
		opts = append(opts, pkgsync.WithCurrentVersion(flags.CurrentVersion))
	}

	format := output.DetectFormat(app.OutputFormat())
	if format == output.FormatTable {
		progress(s, cmd.ErrOrStderr())
	}

	result, err := s.Sync(ctx, opts...)
	if err != nil {
		return err
	}

	var data any = result
	if format == output.FormatTable {
		data = output.ResultToTableData(result)
	}
	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), data); err != nil {
		return err
	}

	if format == output.FormatTable {
		if result.DryRun && result.Action.Mutates() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s Dry run: publish and deploy skipped\n", emoji.Skipped)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", emoji.Info, result.Summary())
	}
	return nil
}

// progress prints each mutation as it happens.
func progress(s schemasync.Syncer, w io.Writer) {
	s.OnPublished(func(_ context.Context, target schemasync.Target, action reconcile.Action, published *schema.Transformed) {
		_, _ = fmt.Fprintf(w, "%s Published version %d to model %s (%s)\n", emoji.Success, published.Version, target.Model, action)
	})
	s.OnDeployed(func(_ context.Context, target schemasync.Target, _ int, deploymentID string) {
		_, _ = fmt.Fprintf(w, "%s Deployed %s to stage %s (deployment %s)\n", emoji.Success, target.APIID, target.Stage, deploymentID)
	})
}
