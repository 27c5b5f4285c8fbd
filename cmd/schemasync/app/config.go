package app

import (
	"github.com/spf13/viper"

	"github.com/agentstation/schemasync/internal/config"
)

// Config holds the CLI configuration: the sync settings shared with the
// Lambda host plus the global flags.
type Config struct {
	// Sync settings loaded from flags, env, .env files and the config file
	Sync *config.Config

	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// LogLevel is the --log-level flag; empty defers to -v/-q and LOG_LEVEL
	LogLevel string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.schemasync.yaml)
// 5. Defaults
func LoadConfig() (*viper.Viper, *Config, error) {
	config.LoadEnvFiles()

	v := config.NewViper()
	sync, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}

	return v, &Config{
		Sync:       sync,
		ConfigFile: sync.ConfigFile,
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// reload re-reads the sync settings, e.g. after --config names a new file.
func (c *Config) reload(v *viper.Viper) error {
	sync, err := config.Load(v)
	if err != nil {
		return err
	}
	c.Sync = sync
	c.ConfigFile = sync.ConfigFile
	return nil
}
