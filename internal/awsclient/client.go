// Package awsclient loads AWS configuration and builds the service clients
// a sync run talks to.
package awsclient

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/schemas"

	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/logging"
)

// Options configures how the AWS configuration is resolved.
type Options struct {
	Region  string // Overrides the SDK region chain when set
	Profile string // Shared config profile
}

// Option is a functional option for Load.
type Option func(*Options)

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(o *Options) {
		o.Region = region
	}
}

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *Options) {
		o.Profile = profile
	}
}

// Client holds a resolved AWS configuration.
type Client struct {
	cfg aws.Config
}

// Load resolves credentials and region through the SDK default chain.
func Load(ctx context.Context, opts ...Option) (*Client, error) {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	var loaders []func(*config.LoadOptions) error
	if o.Region != "" {
		loaders = append(loaders, config.WithRegion(o.Region))
	}
	if o.Profile != "" {
		loaders = append(loaders, config.WithSharedConfigProfile(o.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, errors.NewConfigError("aws", "failed to load AWS configuration", err)
	}

	logging.FromContext(ctx).Debug().
		Str("region", cfg.Region).
		Msg("Loaded AWS configuration")

	return &Client{cfg: cfg}, nil
}

// Region returns the resolved region.
func (c *Client) Region() string {
	return c.cfg.Region
}

// Schemas returns an EventBridge Schemas client.
func (c *Client) Schemas(optFns ...func(*schemas.Options)) *schemas.Client {
	return schemas.NewFromConfig(c.cfg, optFns...)
}

// APIGateway returns an API Gateway (REST) client.
func (c *Client) APIGateway(optFns ...func(*apigateway.Options)) *apigateway.Client {
	return apigateway.NewFromConfig(c.cfg, optFns...)
}
