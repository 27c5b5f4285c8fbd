// Package main is the Lambda entry point for schemasync.
//
// Configuration problems found at init are not fatal: the function still
// starts and answers every invocation with the error, so callers see a
// 400 response instead of a crashed runtime.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/internal/apigateway"
	"github.com/agentstation/schemasync/internal/awsclient"
	"github.com/agentstation/schemasync/internal/config"
	"github.com/agentstation/schemasync/internal/handler"
	"github.com/agentstation/schemasync/internal/registry"
	"github.com/agentstation/schemasync/pkg/logging"
)

func main() {
	cfg, err := config.Load(config.NewViper())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		lambda.Start(handler.Failed(err, logging.Default()).Handle)
		return
	}

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})
	logging.SetDefault(logger)

	syncer, err := newSyncer(context.Background(), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize")
		lambda.Start(handler.Failed(err, &logger).Handle)
		return
	}

	lambda.Start(handler.New(syncer, cfg, &logger).Handle)
}

func newSyncer(ctx context.Context, cfg *config.Config) (schemasync.Syncer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := awsclient.Load(ctx,
		awsclient.WithRegion(cfg.Region),
		awsclient.WithProfile(cfg.Profile),
	)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Str("region", client.Region()).
		Str("schema", cfg.SchemaName).
		Str("api_id", cfg.APIID).
		Msg("Lambda initialized")

	return schemasync.New(
		registry.New(client.Schemas()),
		apigateway.New(client.APIGateway()),
		cfg.Target(),
	)
}
