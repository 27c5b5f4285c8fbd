// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used in progress and result lines.
const (
	// Success marks a completed mutation or a passing check.
	Success = "✓"

	// Error marks a failed check.
	Error = "✗"

	// Skipped marks a step a dry run did not perform.
	Skipped = "-"

	// Info marks informational lines such as run summaries.
	Info = "i"
)
