package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/schemasync/cmd/schemasync/cmd/completion"
	"github.com/agentstation/schemasync/cmd/schemasync/cmd/status"
	synccmd "github.com/agentstation/schemasync/cmd/schemasync/cmd/sync"
	"github.com/agentstation/schemasync/cmd/schemasync/cmd/validate"
	"github.com/agentstation/schemasync/cmd/schemasync/cmd/versions"
	"github.com/agentstation/schemasync/internal/cmd/output"
	"github.com/agentstation/schemasync/internal/config"
	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/logging"
)

// Execute runs the schemasync CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "schemasync",
		Short:   "Sync EventBridge registry schemas into API Gateway models",
		Version: a.version,
		Long: `schemasync keeps the request-validation model of an API Gateway REST API
aligned with a schema published in the EventBridge Schema Registry.

Each sync reads the version stamped into the model, lists the registry
versions, and either does nothing, advances to the latest version, or
rolls back exactly one version. The published schema has the event
envelope stripped and is deployed to the configured stage.

Settings come from flags, the environment (SchemaName, ApiId,
ApiModelName, SchemaRegistry, Rollback, CurrentSchemaVersion, StageName),
.env files, or ~/.schemasync.yaml.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands:",
	})

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.schemasync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("schemasync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return errors.NewConfigError("flags", err.Error(), err)
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	// An explicit --config replaces whatever file was found at startup
	if cmd.Flags().Changed("config") && a.viper != nil {
		a.viper.Set(config.KeyConfig, mustGetString(cmd, "config"))
		if err := a.config.reload(a.viper); err != nil {
			return err
		}
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, a.logger))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(synccmd.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(status.NewCommand(a))
	rootCmd.AddCommand(versions.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("schemasync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitCode maps a run error to the process exit status:
// 0 on success, 2 for configuration problems, 3 when a rollback
// has no target, and 1 for everything else.
func ExitCode(err error) int {
	switch errors.KindOf(err) {
	case "":
		return constants.ExitSuccess
	case errors.KindConfigMissing, errors.KindConfigInvalid:
		return constants.ExitConfig
	case errors.KindRollbackTargetUnavailable:
		return constants.ExitRollback
	default:
		return constants.ExitFailure
	}
}

// WriteError prints err with its kind.
func WriteError(w io.Writer, err error) {
	if kind := errors.KindOf(err); kind != errors.KindUnknown {
		_, _ = fmt.Fprintf(w, "Error [%s]: %v\n", kind, err)
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// ExitOnError prints an error and exits with the status ExitCode assigns it.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		WriteError(os.Stderr, err)
		os.Exit(ExitCode(err))
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
