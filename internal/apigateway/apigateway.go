// Package apigateway reads and publishes the request-validation model of an
// API Gateway REST API and deploys the API to a stage.
package apigateway

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"

	"github.com/agentstation/schemasync/internal/awsclient"
	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/logging"
	"github.com/agentstation/schemasync/pkg/schema"
)

const service = "apigateway"

// API is the subset of *apigateway.Client used here.
type API interface {
	GetModel(ctx context.Context, params *apigateway.GetModelInput, optFns ...func(*apigateway.Options)) (*apigateway.GetModelOutput, error)
	UpdateModel(ctx context.Context, params *apigateway.UpdateModelInput, optFns ...func(*apigateway.Options)) (*apigateway.UpdateModelOutput, error)
	CreateDeployment(ctx context.Context, params *apigateway.CreateDeploymentInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateDeploymentOutput, error)
}

// Client publishes schemas to API models.
type Client struct {
	api API
}

// New creates an API Gateway client.
func New(api API) *Client {
	return &Client{api: api}
}

// CurrentVersion returns the registry version stamped into the model's schema.
// A missing model, an unreadable body, or a missing or malformed marker all
// mean "never synced" and return 0 without error.
func (c *Client) CurrentVersion(ctx context.Context, apiID, modelName string) (int, error) {
	logger := logging.FromContext(ctx)

	out, err := c.api.GetModel(ctx, &apigateway.GetModelInput{
		RestApiId: aws.String(apiID),
		ModelName: aws.String(modelName),
		Flatten:   true,
	})
	if err != nil {
		event := logger.Warn()
		if awsclient.IsNotFound(err) {
			event = logger.Info()
		}
		event.Err(err).Msg("Could not read API model, treating as never synced")
		return 0, nil
	}

	version := schema.ParseMarker([]byte(aws.ToString(out.Schema)))
	if version == 0 {
		logger.Info().Msg("API model has no version marker, treating as never synced")
	}
	return version, nil
}

// Publish replaces the model's schema with body.
func (c *Client) Publish(ctx context.Context, apiID, modelName string, body []byte) error {
	_, err := c.api.UpdateModel(ctx, &apigateway.UpdateModelInput{
		RestApiId: aws.String(apiID),
		ModelName: aws.String(modelName),
		PatchOperations: []types.PatchOperation{
			{
				Op:    types.OpReplace,
				Path:  aws.String(constants.ModelSchemaPath),
				Value: aws.String(string(body)),
			},
		},
	})
	if err != nil {
		return awsclient.WrapError(service, "UpdateModel", errors.KindModelUpdateFailed, err)
	}

	logging.FromContext(ctx).Debug().
		Int("bytes", len(body)).
		Msg("Updated API model")
	return nil
}

// Deploy creates a deployment of the API to stage and returns its id.
// An empty description defaults to "Deployment to <stage> stage".
func (c *Client) Deploy(ctx context.Context, apiID, stage, description string) (string, error) {
	if description == "" {
		description = fmt.Sprintf(constants.DeploymentDescriptionFormat, stage)
	}

	out, err := c.api.CreateDeployment(ctx, &apigateway.CreateDeploymentInput{
		RestApiId:        aws.String(apiID),
		StageName:        aws.String(stage),
		Description:      aws.String(description),
		StageDescription: aws.String(fmt.Sprintf(constants.StageDescriptionFormat, stage)),
	})
	if err != nil {
		return "", awsclient.WrapError(service, "CreateDeployment", errors.KindDeploymentFailed, err)
	}

	id := aws.ToString(out.Id)
	logging.FromContext(ctx).Debug().
		Str("deployment_id", id).
		Str("stage", stage).
		Msg("Created deployment")
	return id, nil
}
