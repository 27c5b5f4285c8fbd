// Package validate implements the validate command.
package validate

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/schemasync/internal/cmd/application"
	"github.com/agentstation/schemasync/internal/cmd/emoji"
	"github.com/agentstation/schemasync/internal/cmd/globals"
	"github.com/agentstation/schemasync/pkg/errors"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		version    int
		showSchema bool
		target     *globals.TargetFlags
	)

	cmd := &cobra.Command{
		Use:     "validate [FILE]",
		GroupID: "inspect",
		Short:   "Validate an event payload against the transformed schema",
		Args:    cobra.MaximumNArgs(1),
		Long: `Validate exports a schema version from the registry, applies the same
transformation sync publishes, and validates a JSON payload against it.
This is the check API Gateway performs on incoming requests.

FILE defaults to standard input; "-" also reads standard input.
With --show-schema and no FILE the transformed schema is printed instead.`,
		Example: `  schemasync validate event.json               # Against the applied version
  schemasync validate --version 4 event.json   # Against version 4
  schemasync validate --show-schema            # Print the schema sync would publish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := app.Syncer(ctx, target.Apply(app.Config().Target()))
			if err != nil {
				return err
			}

			transformed, err := s.Schema(ctx, version)
			if err != nil {
				return err
			}

			if showSchema {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(transformed.Indented()))
				if err != nil || len(args) == 0 {
					return err
				}
			}

			payload, err := readPayload(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			if err := transformed.Validate(payload); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s valid against version %d\n", emoji.Success, transformed.Version)
			return err
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "schema version (default: the applied version, else the latest)")
	cmd.Flags().BoolVar(&showSchema, "show-schema", false, "print the transformed schema")
	target = globals.AddTargetFlags(cmd)

	return cmd
}

func readPayload(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.WrapValidation("payload", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, errors.NewConfigError("validate", "cannot read "+args[0], err)
	}
	return data, nil
}
