package schemasync_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	agtypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/schemas"
	schematypes "github.com/aws/aws-sdk-go-v2/service/schemas/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/schemasync"
	agw "github.com/agentstation/schemasync/internal/apigateway"
	"github.com/agentstation/schemasync/internal/registry"
	"github.com/agentstation/schemasync/pkg/reconcile"
	"github.com/agentstation/schemasync/pkg/schema"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// cloud is an in-memory stand-in for both AWS services.
type cloud struct {
	versions    []string
	model       *string
	deployments int
	updates     int
}

func (c *cloud) ListSchemaVersions(_ context.Context, in *schemas.ListSchemaVersionsInput, _ ...func(*schemas.Options)) (*schemas.ListSchemaVersionsOutput, error) {
	out := &schemas.ListSchemaVersionsOutput{}
	// two versions per page
	start := 0
	if in.NextToken != nil {
		start, _ = strconv.Atoi(*in.NextToken)
	}
	end := min(start+2, len(c.versions))
	for _, v := range c.versions[start:end] {
		out.SchemaVersions = append(out.SchemaVersions, schematypes.SchemaVersionSummary{SchemaVersion: aws.String(v)})
	}
	if end < len(c.versions) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (c *cloud) ExportSchema(_ context.Context, in *schemas.ExportSchemaInput, _ ...func(*schemas.Options)) (*schemas.ExportSchemaOutput, error) {
	v := aws.ToString(in.SchemaVersion)
	content := fmt.Sprintf(`{
		"type": "object",
		"x-amazon-events-source": "shop.orders",
		"properties": {"id": {"type": "string"}, "detail": {"type": "object", "title": "v%s"}},
		"required": ["id", "detail"]
	}`, v)
	return &schemas.ExportSchemaOutput{Content: aws.String(content), SchemaVersion: in.SchemaVersion}, nil
}

func (c *cloud) GetModel(_ context.Context, _ *apigateway.GetModelInput, _ ...func(*apigateway.Options)) (*apigateway.GetModelOutput, error) {
	if c.model == nil {
		return nil, &agtypes.NotFoundException{Message: aws.String("Invalid model name specified")}
	}
	return &apigateway.GetModelOutput{Schema: c.model}, nil
}

func (c *cloud) UpdateModel(_ context.Context, in *apigateway.UpdateModelInput, _ ...func(*apigateway.Options)) (*apigateway.UpdateModelOutput, error) {
	c.updates++
	c.model = in.PatchOperations[0].Value
	return &apigateway.UpdateModelOutput{Schema: c.model}, nil
}

func (c *cloud) CreateDeployment(_ context.Context, _ *apigateway.CreateDeploymentInput, _ ...func(*apigateway.Options)) (*apigateway.CreateDeploymentOutput, error) {
	c.deployments++
	return &apigateway.CreateDeploymentOutput{Id: aws.String(fmt.Sprintf("d%d", c.deployments))}, nil
}

func TestEndToEnd(t *testing.T) {
	c := &cloud{
		versions: []string{"1", "2", "3", "4", "5"},
		model:    aws.String(`{"type":"object","description":"3"}`),
	}

	s, err := schemasync.New(registry.New(c), agw.New(c), schemasync.Target{
		Registry: "discovered-schemas",
		Schema:   "shop.orders@OrderPlaced",
		APIID:    "a1b2c3d4",
		Model:    "OrderPlaced",
	})
	require.NoError(t, err)
	ctx := context.Background()

	// forward from 3 to 5
	result, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, reconcile.AdvanceTo(5), result.Action)
	assert.Equal(t, 5, schema.ParseMarker([]byte(*c.model)))
	assert.Equal(t, "d1", result.DeploymentID)

	// rollback to 4
	result, err = s.Sync(ctx, pkgsync.WithRollback(true))
	require.NoError(t, err)
	assert.Equal(t, reconcile.RollbackTo(4), result.Action)
	assert.Equal(t, 4, schema.ParseMarker([]byte(*c.model)))

	// forward again returns to 5
	result, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, reconcile.AdvanceTo(5), result.Action)

	// and then settles
	result, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, reconcile.NoopAction(), result.Action)
	assert.Equal(t, 3, c.updates)
	assert.Equal(t, 3, c.deployments)
}

func TestEndToEndMissingModel(t *testing.T) {
	c := &cloud{versions: []string{"1", "2"}}

	s, err := schemasync.New(registry.New(c), agw.New(c), schemasync.Target{
		Registry: "r", Schema: "s", APIID: "a", Model: "m",
	})
	require.NoError(t, err)

	result, err := s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Current)
	assert.Equal(t, reconcile.AdvanceTo(2), result.Action)
	assert.JSONEq(t, `{"type":"object","description":"2","properties":{"detail":{"type":"object","title":"v2"}},"required":["detail"]}`, *c.model)
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, 1, c.deployments)

	// same inputs again: the marker now reads 2
	published := *c.model
	result, err = s.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Current)
	assert.Equal(t, reconcile.NoopAction(), result.Action)
	assert.False(t, result.Published)
	assert.False(t, result.Deployed)
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, 1, c.deployments)
	assert.Equal(t, published, *c.model)
}
