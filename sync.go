package schemasync

import (
	"context"
	"fmt"

	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/logging"
	"github.com/agentstation/schemasync/pkg/reconcile"
	"github.com/agentstation/schemasync/pkg/schema"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// Sync performs one reconciliation run.
//
// The returned Result is non-nil whenever the options were valid, and on
// failure describes the steps that completed: a failed deployment still
// reports Published, because the model update is not undone.
func (s *syncer) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Tag the run
	start := s.now()
	runID := options.RunID
	if runID == "" {
		runID = s.newRunID()
	}
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithTarget(ctx, s.target.Registry, s.target.Schema, s.target.APIID, s.target.Model)
	logger := logging.FromContext(ctx)

	result := &pkgsync.Result{
		RunID:  runID,
		Action: reconcile.NoopAction(),
		Stage:  options.StageOr(s.target.Stage),
		DryRun: options.DryRun,
	}
	defer func() {
		result.Duration = s.now().Sub(start)
	}()

	logger.Info().
		Bool("rollback", options.Rollback).
		Bool("dry_run", options.DryRun).
		Msg("Starting schema sync")

	// Step 3: Determine the applied version
	current, err := s.currentVersion(ctx, options)
	if err != nil {
		return result, err
	}
	result.Current = current

	// Step 4: List registry versions
	available, err := s.registry.ListVersions(ctx, s.target.Registry, s.target.Schema)
	if err != nil {
		return result, err
	}
	result.Available = available
	result.Latest = reconcile.Latest(available)

	// Step 5: Decide
	action, err := reconcile.Decide(current, available, options.Rollback)
	if err != nil {
		logger.Error().Err(err).
			Int("current", current).
			Int("latest", result.Latest).
			Msg("No action possible")
		return result, err
	}
	result.Action = action
	result.Target = action.Target

	ctx = logging.WithAction(ctx, action.String())
	logger = logging.FromContext(ctx)

	if !action.Mutates() {
		logger.Info().
			Int("current", current).
			Int("latest", result.Latest).
			Msg("Model is up to date")
		return result, nil
	}

	// Step 6: Export and transform the target version
	transformed, err := s.prepare(ctx, action.Target)
	if err != nil {
		return result, err
	}

	// Step 7: Stop before mutating on a dry run
	if options.DryRun {
		logger.Info().
			Int("current", current).
			Int("target", action.Target).
			Bool("dry_run", true).
			Msg("Dry run completed - no changes applied")
		return result, nil
	}

	// Step 8: Publish
	if err := s.models.Publish(ctx, s.target.APIID, s.target.Model, transformed.Body); err != nil {
		logger.Error().Err(err).Msg("Failed to publish schema")
		return result, err
	}
	result.Published = true
	logger.Info().
		Int("from", current).
		Int("to", action.Target).
		Msg("Published schema to API model")
	s.hooks.triggerPublished(ctx, s.target, action, transformed)

	// Step 9: Deploy
	description := options.DeploymentDescription
	if description == "" {
		description = fmt.Sprintf(constants.DeploymentDescriptionFormat, result.Stage) + " (" + action.String() + ")"
	}
	deploymentID, err := s.models.Deploy(ctx, s.target.APIID, result.Stage, description)
	if err != nil {
		logger.Error().Err(err).
			Str("stage", result.Stage).
			Msg("Model updated but deployment failed")
		return result, err
	}
	result.Deployed = true
	result.DeploymentID = deploymentID
	logger.Info().
		Str("stage", result.Stage).
		Str("deployment_id", deploymentID).
		Msg("Deployed API")
	s.hooks.triggerDeployed(ctx, s.target, action.Target, deploymentID)

	return result, nil
}

// currentVersion returns the pinned version when one is given, otherwise reads the model.
func (s *syncer) currentVersion(ctx context.Context, options *pkgsync.Options) (int, error) {
	if options.CurrentVersion != nil {
		logging.FromContext(ctx).Debug().
			Int("current", *options.CurrentVersion).
			Msg("Using pinned current version")
		return *options.CurrentVersion, nil
	}
	return s.models.CurrentVersion(ctx, s.target.APIID, s.target.Model)
}

// prepare exports version and transforms it for the model.
func (s *syncer) prepare(ctx context.Context, version int) (*schema.Transformed, error) {
	log := logging.FromContext(logging.WithVersion(ctx, version))

	raw, err := s.registry.ExportSchema(ctx, s.target.Registry, s.target.Schema, version)
	if err != nil {
		log.Error().Err(err).Msg("Failed to export schema")
		return nil, err
	}

	transformed, err := schema.Transform(raw, version)
	if err != nil {
		log.Error().Err(err).Msg("Transformed schema is not a valid draft-04 schema")
		return nil, err
	}
	return transformed, nil
}
