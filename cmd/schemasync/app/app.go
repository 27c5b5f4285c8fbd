// Package app provides the application context and dependency management
// for the schemasync CLI. It centralizes configuration, logging, and the
// lazily-created AWS clients shared by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/internal/apigateway"
	"github.com/agentstation/schemasync/internal/awsclient"
	"github.com/agentstation/schemasync/internal/cmd/application"
	"github.com/agentstation/schemasync/internal/config"
	"github.com/agentstation/schemasync/internal/registry"
)

// App represents the schemasync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	viper  *viper.Viper

	// Logger
	logger *zerolog.Logger

	// AWS clients (lazy-initialized, singleton)
	mu  sync.Mutex
	aws *awsclient.Client

	// newSyncer builds syncers; replaced in tests
	newSyncer func(ctx context.Context, target schemasync.Target) (schemasync.Syncer, error)
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	v, cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.viper = v
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the sync settings.
func (a *App) Config() *config.Config {
	return a.config.Sync
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Syncer returns a Syncer for target. AWS configuration is resolved once
// and shared by every syncer the app creates.
func (a *App) Syncer(ctx context.Context, target schemasync.Target) (schemasync.Syncer, error) {
	if a.newSyncer != nil {
		return a.newSyncer(ctx, target)
	}

	if err := target.Validate(); err != nil {
		return nil, err
	}

	client, err := a.awsClient(ctx)
	if err != nil {
		return nil, err
	}

	return schemasync.New(
		registry.New(client.Schemas()),
		apigateway.New(client.APIGateway()),
		target,
	)
}

func (a *App) awsClient(ctx context.Context) (*awsclient.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.aws != nil {
		return a.aws, nil
	}

	client, err := awsclient.Load(ctx,
		awsclient.WithRegion(a.config.Sync.Region),
		awsclient.WithProfile(a.config.Sync.Profile),
	)
	if err != nil {
		return nil, err
	}
	a.aws = client
	return client, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithSyncerFunc replaces how syncers are built (useful for testing).
func WithSyncerFunc(fn func(ctx context.Context, target schemasync.Target) (schemasync.Syncer, error)) Option {
	return func(a *App) error {
		a.newSyncer = fn
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
