// Package versions implements the versions command.
package versions

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/schemasync/internal/cmd/application"
	"github.com/agentstation/schemasync/internal/cmd/globals"
	"github.com/agentstation/schemasync/internal/cmd/output"
	"github.com/agentstation/schemasync/pkg/reconcile"
)

// Listing is the machine-readable form of the versions command.
type Listing struct {
	Schema   string `json:"schema" yaml:"schema"`
	Versions []int  `json:"versions" yaml:"versions"`
	Latest   int    `json:"latest" yaml:"latest"`
}

// NewCommand creates the versions command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var target *globals.TargetFlags

	cmd := &cobra.Command{
		Use:     "versions",
		Aliases: []string{"ls"},
		GroupID: "inspect",
		Short:   "List the registry versions of the schema",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := app.Syncer(ctx, target.Apply(app.Config().Target()))
			if err != nil {
				return err
			}

			versions, err := s.Versions(ctx)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), Listing{
					Schema:   s.Target().Schema,
					Versions: versions,
					Latest:   reconcile.Latest(versions),
				})
			}

			// mark the applied version when the model can be read
			current := 0
			if len(versions) > 0 {
				if st, err := s.Status(ctx); err == nil {
					current = st.Current
				}
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.VersionsToTableData(versions, current))
		},
	}

	target = globals.AddTargetFlags(cmd)
	return cmd
}
