// Package schemasync keeps the request-validation model of an API Gateway
// REST API aligned with a schema published in the EventBridge Schema Registry.
//
// Each run reads the version currently applied to the model, lists the
// versions the registry holds, and takes exactly one action:
// - Noop when the model already carries the latest version
// - AdvanceTo(latest) when the registry has moved ahead
// - RollbackTo(current-1) when a rollback is requested
//
// The applied version lives only in the model itself, stamped into the
// schema's description field, so no side table is needed.
//
// Example usage:
//
//	aws, err := awsclient.Load(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := schemasync.New(
//	    registry.New(aws.Schemas()),
//	    apigateway.New(aws.APIGateway()),
//	    schemasync.Target{
//	        Registry: "discovered-schemas",
//	        Schema:   "scheduling.event@Surgical",
//	        APIID:    "a1b2c3d4",
//	        Model:    "SurgicalEvent",
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := s.Sync(ctx, sync.WithRollback(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package schemasync

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/reconcile"
	"github.com/agentstation/schemasync/pkg/schema"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// Registry reads schema versions from a schema registry.
type Registry interface {
	// ListVersions returns the positive versions of a schema, ascending.
	ListVersions(ctx context.Context, registryName, schemaName string) ([]int, error)
	// ExportSchema returns the draft-04 export of one version.
	ExportSchema(ctx context.Context, registryName, schemaName string, version int) ([]byte, error)
}

// ModelStore reads, replaces and deploys an API model.
type ModelStore interface {
	// CurrentVersion returns the version stamped into the model, 0 if none.
	CurrentVersion(ctx context.Context, apiID, modelName string) (int, error)
	// Publish replaces the model's schema.
	Publish(ctx context.Context, apiID, modelName string, body []byte) error
	// Deploy deploys the API to a stage and returns the deployment id.
	Deploy(ctx context.Context, apiID, stage, description string) (string, error)
}

// Syncer runs synchronizations for one target.
type Syncer interface {
	// Sync performs one reconciliation run
	Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Status previews what a forward sync and a rollback would do, without mutating anything
	Status(ctx context.Context, opts ...pkgsync.Option) (*Status, error)

	// Versions lists the registry versions of the target schema
	Versions(ctx context.Context) ([]int, error)

	// Schema exports and transforms one version; version < 1 means the applied
	// version, or the latest when the model was never synced
	Schema(ctx context.Context, version int) (*schema.Transformed, error)

	// Target returns the synchronized target
	Target() Target

	// OnPublished registers a callback for when a schema is published
	OnPublished(PublishedHook)

	// OnDeployed registers a callback for when a deployment is created
	OnDeployed(DeployedHook)
}

// Target names the registry schema and the API model it is synchronized into.
type Target struct {
	Registry string `json:"registry" yaml:"registry"`
	Schema   string `json:"schema" yaml:"schema"`
	APIID    string `json:"api_id" yaml:"api_id"`
	Model    string `json:"model" yaml:"model"`
	Stage    string `json:"stage" yaml:"stage"`
}

// Validate reports every missing required field at once, by configuration key.
func (t Target) Validate() error {
	var missing []string
	if strings.TrimSpace(t.Schema) == "" {
		missing = append(missing, "SchemaName")
	}
	if strings.TrimSpace(t.APIID) == "" {
		missing = append(missing, "ApiId")
	}
	if strings.TrimSpace(t.Model) == "" {
		missing = append(missing, "ApiModelName")
	}
	if strings.TrimSpace(t.Registry) == "" {
		missing = append(missing, "SchemaRegistry")
	}
	if len(missing) > 0 {
		return errors.NewMissingConfigError("target", missing...)
	}
	return nil
}

// syncer is the internal implementation of the Syncer interface
type syncer struct {
	target   Target
	registry Registry
	models   ModelStore
	config   *config
	hooks    *hooks
}

// New creates a Syncer for target. The target is validated before any
// remote call is possible.
func New(registry Registry, models ModelStore, target Target, opts ...Option) (Syncer, error) {
	if registry == nil || models == nil {
		return nil, errors.NewConfigError("syncer", "registry and model store are required", nil)
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if target.Stage == "" {
		target.Stage = constants.DefaultStageName
	}

	s := &syncer{
		target:   target,
		registry: registry,
		models:   models,
		config:   defaultConfig(),
		hooks:    newHooks(),
	}

	if err := s.options(opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Target returns the synchronized target.
func (s *syncer) Target() Target {
	return s.target
}

// Versions lists the registry versions of the target schema.
func (s *syncer) Versions(ctx context.Context) ([]int, error) {
	return s.registry.ListVersions(ctx, s.target.Registry, s.target.Schema)
}

// Schema exports and transforms one version.
func (s *syncer) Schema(ctx context.Context, version int) (*schema.Transformed, error) {
	if version < 1 {
		current, err := s.models.CurrentVersion(ctx, s.target.APIID, s.target.Model)
		if err != nil {
			return nil, err
		}
		version = current
	}
	if version < 1 {
		available, err := s.Versions(ctx)
		if err != nil {
			return nil, err
		}
		if len(available) == 0 {
			return nil, errors.ErrNoVersionsPublished
		}
		version = reconcile.Latest(available)
	}

	raw, err := s.registry.ExportSchema(ctx, s.target.Registry, s.target.Schema, version)
	if err != nil {
		return nil, err
	}
	return schema.Transform(raw, version)
}

func (s *syncer) newRunID() string {
	if s.config.runID != nil {
		return s.config.runID()
	}
	return uuid.NewString()
}

func (s *syncer) now() time.Time {
	if s.config.clock != nil {
		return s.config.clock()
	}
	return time.Now()
}
