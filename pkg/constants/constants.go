// Package constants provides shared constants used throughout the schemasync codebase.
// This includes AWS wire values, defaults, and exit codes that must be
// consistent between the CLI, the Lambda handler, and the library.
package constants

// Registry constants
const (
	// ExportFormat is the schema export type requested from the registry
	ExportFormat = "JSONSchemaDraft4"

	// SchemasEventSource is the EventBridge source of registry change events
	SchemasEventSource = "aws.schemas"
)

// API Gateway constants
const (
	// ModelSchemaPath is the patch path that replaces a model's schema
	ModelSchemaPath = "/schema"

	// DefaultStageName is the stage deployed to when none is configured
	DefaultStageName = "dev"

	// DeploymentDescriptionFormat describes a deployment; the argument is the stage name
	DeploymentDescriptionFormat = "Deployment to %s stage"

	// StageDescriptionFormat describes the deployed stage; the argument is the stage name
	StageDescriptionFormat = "Deployed to %s stage"
)

// Exit codes returned by the CLI
const (
	ExitSuccess  = 0
	ExitFailure  = 1
	ExitConfig   = 2
	ExitRollback = 3
)
