package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/schemasync/pkg/reconcile"
)

// Result represents the outcome of a sync run.
type Result struct {
	RunID  string           `json:"run_id" yaml:"run_id"`
	Action reconcile.Action `json:"action" yaml:"action"`

	// Versions
	Current   int   `json:"current" yaml:"current"`     // Applied version before the run
	Target    int   `json:"target" yaml:"target"`       // Version the action moves to (0 for Noop)
	Latest    int   `json:"latest" yaml:"latest"`       // Highest version in the registry
	Available []int `json:"available" yaml:"available"` // Every version the registry lists

	// Mutations
	Published    bool   `json:"published" yaml:"published"`
	Deployed     bool   `json:"deployed" yaml:"deployed"`
	DeploymentID string `json:"deployment_id,omitempty" yaml:"deployment_id,omitempty"`
	Stage        string `json:"stage,omitempty" yaml:"stage,omitempty"`

	// Operation metadata
	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// HasChanges returns true if the run changed, or in a dry run would change, the model.
func (r *Result) HasChanges() bool {
	return r.Action.Mutates()
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	var summary string
	switch r.Action.Kind {
	case reconcile.Advance:
		summary = fmt.Sprintf("advanced from version %d to %d", r.Current, r.Target)
	case reconcile.Rollback:
		summary = fmt.Sprintf("rolled back from version %d to %d", r.Current, r.Target)
	default:
		return fmt.Sprintf("already at version %d (latest %d), no changes", r.Current, r.Latest)
	}

	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	} else if r.Deployed {
		parts = append(parts, fmt.Sprintf("(deployment %s to %s)", r.DeploymentID, r.Stage))
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}
