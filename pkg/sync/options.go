// Package sync provides options and results for a single schema synchronization run.
package sync

import (
	"fmt"

	"github.com/agentstation/schemasync/internal/utils/ptr"
	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
)

// Options controls one run of Syncer.Sync().
type Options struct {
	Rollback bool // Step back one version instead of advancing to latest
	DryRun   bool // Decide, export and transform without publishing or deploying

	// CurrentVersion overrides the version read from the model's marker.
	// Nil means read the model.
	CurrentVersion *int

	// Stage is the deployment stage; empty uses the syncer's target stage.
	Stage string

	// RunID identifies the run in logs and results; empty generates one.
	RunID string

	// DeploymentDescription overrides the generated deployment description.
	DeploymentDescription string
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Rollback:       false,
		DryRun:         false,
		CurrentVersion: nil,
	}
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.CurrentVersion != nil && *s.CurrentVersion < 0 {
		return errors.NewConfigError("sync", fmt.Sprintf("current version must be non-negative, got %d", *s.CurrentVersion), nil)
	}
	return nil
}

// StageOr returns the configured stage, falling back to def and then to the default stage.
func (s *Options) StageOr(def string) string {
	switch {
	case s.Stage != "":
		return s.Stage
	case def != "":
		return def
	default:
		return constants.DefaultStageName
	}
}

// WithRollback configures rollback mode.
func WithRollback(rollback bool) Option {
	return func(opts *Options) {
		opts.Rollback = rollback
	}
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithCurrentVersion pins the current version instead of reading it from the model.
func WithCurrentVersion(version int) Option {
	return func(opts *Options) {
		opts.CurrentVersion = ptr.Int(version)
	}
}

// WithCurrentVersionPtr is WithCurrentVersion for an optional value; nil clears the override.
func WithCurrentVersionPtr(version *int) Option {
	return func(opts *Options) {
		if version == nil {
			opts.CurrentVersion = nil
			return
		}
		opts.CurrentVersion = ptr.To(*version)
	}
}

// WithStage configures the deployment stage.
func WithStage(stage string) Option {
	return func(opts *Options) {
		opts.Stage = stage
	}
}

// WithRunID sets the run identifier.
func WithRunID(id string) Option {
	return func(opts *Options) {
		opts.RunID = id
	}
}

// WithDeploymentDescription overrides the deployment description.
func WithDeploymentDescription(description string) Option {
	return func(opts *Options) {
		opts.DeploymentDescription = description
	}
}
