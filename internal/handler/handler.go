// Package handler hosts a sync run inside AWS Lambda.
//
// The function is invoked by EventBridge, either by the schema registry's
// "Schema Version Created" events or by a schedule or manual invocation.
// Run failures are reported in the Response rather than as a Go error so
// the Lambda runtime does not retry them.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/internal/config"
	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/logging"
	"github.com/agentstation/schemasync/pkg/reconcile"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// Event is an EventBridge event with optional per-invocation overrides.
type Event struct {
	events.CloudWatchEvent

	Rollback       *bool `json:"rollback,omitempty"`
	DryRun         *bool `json:"dry_run,omitempty"`
	CurrentVersion *int  `json:"current_version,omitempty"`
}

// SchemaDetail is the detail of a schema registry event.
type SchemaDetail struct {
	SchemaName   string `json:"SchemaName"`
	RegistryName string `json:"RegistryName"`
	Version      string `json:"Version"`
}

// Response is returned for every invocation.
type Response struct {
	StatusCode int             `json:"statusCode"`
	Kind       errors.Kind     `json:"kind,omitempty"`
	Message    string          `json:"message"`
	Result     *pkgsync.Result `json:"result,omitempty"`
}

// Handler runs one sync per invocation.
type Handler struct {
	syncer schemasync.Syncer
	config *config.Config
	logger *zerolog.Logger

	// initErr is reported by every invocation when the syncer could not be built
	initErr error
}

// New creates a Handler. cfg supplies the Rollback and CurrentSchemaVersion
// defaults that events may override.
func New(syncer schemasync.Syncer, cfg *config.Config, logger *zerolog.Logger) *Handler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{syncer: syncer, config: cfg, logger: logger}
}

// Failed creates a Handler for a function whose configuration could not be
// loaded or validated. Every invocation reports err without remote calls.
func Failed(err error, logger *zerolog.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{config: &config.Config{}, logger: logger, initErr: err}
}

// Handle is the Lambda entry point.
func (h *Handler) Handle(ctx context.Context, event Event) (Response, error) {
	ctx = logging.WithLogger(ctx, h.logger)

	var opts []pkgsync.Option
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		opts = append(opts, pkgsync.WithRunID(lc.AwsRequestID))
		ctx = logging.WithRunID(ctx, lc.AwsRequestID)
	}
	logger := logging.FromContext(ctx)

	if h.initErr != nil {
		return failure(logger, h.initErr, nil), nil
	}

	if skip, reason := h.ignored(event); skip {
		logger.Info().
			Str("source", event.Source).
			Str("detail_type", event.DetailType).
			Msg(reason)
		return Response{
			StatusCode: http.StatusOK,
			Message:    reason,
			Result: &pkgsync.Result{
				RunID:  logging.RunID(ctx),
				Action: reconcile.NoopAction(),
			},
		}, nil
	}

	opts = append(opts,
		pkgsync.WithRollback(h.config.Rollback),
		pkgsync.WithCurrentVersionPtr(h.config.CurrentSchemaVersion),
	)
	if event.Rollback != nil {
		opts = append(opts, pkgsync.WithRollback(*event.Rollback))
	}
	if event.DryRun != nil {
		opts = append(opts, pkgsync.WithDryRun(*event.DryRun))
	}
	if event.CurrentVersion != nil {
		opts = append(opts, pkgsync.WithCurrentVersionPtr(event.CurrentVersion))
	}

	result, err := h.syncer.Sync(ctx, opts...)
	if err != nil {
		return failure(logger, err, result), nil
	}

	return Response{
		StatusCode: http.StatusOK,
		Message:    result.Summary(),
		Result:     result,
	}, nil
}

// ignored reports whether a registry event concerns a different schema.
func (h *Handler) ignored(event Event) (bool, string) {
	if event.Source != constants.SchemasEventSource || len(event.Detail) == 0 {
		return false, ""
	}

	var detail SchemaDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return false, ""
	}

	target := h.syncer.Target()
	if detail.SchemaName != "" && detail.SchemaName != target.Schema {
		return true, "ignoring event for schema " + detail.SchemaName
	}
	if detail.RegistryName != "" && detail.RegistryName != target.Registry {
		return true, "ignoring event for registry " + detail.RegistryName
	}
	return false, ""
}

func failure(logger *zerolog.Logger, err error, result *pkgsync.Result) Response {
	kind := errors.KindOf(err)
	logger.Error().Err(err).Str("kind", string(kind)).Msg("Sync failed")
	return Response{
		StatusCode: statusCode(kind),
		Kind:       kind,
		Message:    err.Error(),
		Result:     result,
	}
}

func statusCode(kind errors.Kind) int {
	switch kind {
	case errors.KindConfigMissing, errors.KindConfigInvalid, errors.KindRollbackTargetUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
