// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/schemasync"
)

// TargetFlags override the configured sync target for one command.
type TargetFlags struct {
	Registry string
	Schema   string
	APIID    string
	Model    string
	Stage    string
}

// AddTargetFlags adds target override flags to cmd.
func AddTargetFlags(cmd *cobra.Command) *TargetFlags {
	flags := &TargetFlags{}

	cmd.Flags().StringVar(&flags.Registry, "registry", "",
		"Schema registry name (overrides SchemaRegistry)")
	cmd.Flags().StringVar(&flags.Schema, "schema", "",
		"Schema name (overrides SchemaName)")
	cmd.Flags().StringVar(&flags.APIID, "api-id", "",
		"REST API id (overrides ApiId)")
	cmd.Flags().StringVar(&flags.Model, "model", "",
		"API model name (overrides ApiModelName)")
	cmd.Flags().StringVar(&flags.Stage, "stage", "",
		"Deployment stage (overrides StageName)")

	return flags
}

// Apply returns base with every non-empty flag applied over it.
func (f *TargetFlags) Apply(base schemasync.Target) schemasync.Target {
	if f == nil {
		return base
	}
	if f.Registry != "" {
		base.Registry = f.Registry
	}
	if f.Schema != "" {
		base.Schema = f.Schema
	}
	if f.APIID != "" {
		base.APIID = f.APIID
	}
	if f.Model != "" {
		base.Model = f.Model
	}
	if f.Stage != "" {
		base.Stage = f.Stage
	}
	return base
}
