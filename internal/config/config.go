// Package config loads the settings of a sync run from the environment,
// .env files and an optional config file.
package config

import (
	stderrors "errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/pkg/constants"
	"github.com/agentstation/schemasync/pkg/errors"
)

// Setting keys. Each is read from its exact-case environment variable,
// its SCREAMING_SNAKE alias, or the config file (keys are case-insensitive).
const (
	KeySchemaName           = "SchemaName"
	KeyAPIID                = "ApiId"
	KeyAPIModelName         = "ApiModelName"
	KeySchemaRegistry       = "SchemaRegistry"
	KeyRollback             = "Rollback"
	KeyCurrentSchemaVersion = "CurrentSchemaVersion"
	KeyStageName            = "StageName"
	KeyRegion               = "Region"
	KeyProfile              = "Profile"
	KeyLogLevel             = "LogLevel"
	KeyLogFormat            = "LogFormat"
	KeyLogOutput            = "LogOutput"
	KeyConfig               = "Config"
)

// envAliases lists the environment variables checked for each key, in order.
var envAliases = map[string][]string{
	KeySchemaName:           {"SchemaName", "SCHEMA_NAME"},
	KeyAPIID:                {"ApiId", "API_ID"},
	KeyAPIModelName:         {"ApiModelName", "API_MODEL_NAME"},
	KeySchemaRegistry:       {"SchemaRegistry", "SCHEMA_REGISTRY"},
	KeyRollback:             {"Rollback", "ROLLBACK"},
	KeyCurrentSchemaVersion: {"CurrentSchemaVersion", "CURRENT_SCHEMA_VERSION"},
	KeyStageName:            {"StageName", "STAGE_NAME"},
	KeyRegion:               {"AWS_REGION", "AWS_DEFAULT_REGION"},
	KeyProfile:              {"AWS_PROFILE"},
	KeyLogLevel:             {"LOG_LEVEL"},
	KeyLogFormat:            {"LOG_FORMAT"},
	KeyLogOutput:            {"LOG_OUTPUT"},
	KeyConfig:               {"SCHEMASYNC_CONFIG"},
}

// Config holds the settings of a sync run.
type Config struct {
	// Target
	SchemaName     string
	APIID          string
	APIModelName   string
	SchemaRegistry string
	StageName      string

	// Run behavior
	Rollback             bool
	CurrentSchemaVersion *int

	// AWS
	Region  string
	Profile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Config file actually read, if any
	ConfigFile string
}

// NewViper returns a viper instance with every key bound to its environment aliases.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for key, envs := range envAliases {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	v.SetDefault(KeyStageName, constants.DefaultStageName)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyLogOutput, "stderr")
	return v
}

// LoadEnvFiles loads .env and then .env.local into the process environment.
// Variables already set are never overridden.
func LoadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// Load reads configuration in order of precedence:
// 1. Flags bound to v (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (--config, SCHEMASYNC_CONFIG, or ./.schemasync.yaml, ~/.schemasync.yaml)
// 5. Defaults
//
// Load does not check required settings; call Validate for that.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		LoadEnvFiles()
		v = NewViper()
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	rollback, err := parseBool(KeyRollback, v.GetString(KeyRollback))
	if err != nil {
		return nil, err
	}

	current, err := parseVersion(KeyCurrentSchemaVersion, v.GetString(KeyCurrentSchemaVersion))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SchemaName:     strings.TrimSpace(v.GetString(KeySchemaName)),
		APIID:          strings.TrimSpace(v.GetString(KeyAPIID)),
		APIModelName:   strings.TrimSpace(v.GetString(KeyAPIModelName)),
		SchemaRegistry: strings.TrimSpace(v.GetString(KeySchemaRegistry)),
		StageName:      strings.TrimSpace(v.GetString(KeyStageName)),

		Rollback:             rollback,
		CurrentSchemaVersion: current,

		Region:  v.GetString(KeyRegion),
		Profile: v.GetString(KeyProfile),

		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		LogOutput: v.GetString(KeyLogOutput),

		ConfigFile: v.ConfigFileUsed(),
	}
	if cfg.StageName == "" {
		cfg.StageName = constants.DefaultStageName
	}
	return cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	return c.Target().Validate()
}

// Target returns the sync target described by the configuration.
func (c *Config) Target() schemasync.Target {
	return schemasync.Target{
		Registry: c.SchemaRegistry,
		Schema:   c.SchemaName,
		APIID:    c.APIID,
		Model:    c.APIModelName,
		Stage:    c.StageName,
	}
}

// readConfigFile reads an explicit config file, or searches the standard
// locations. A missing file in the standard locations is not an error.
func readConfigFile(v *viper.Viper) error {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("config", "failed to read config file "+file, err)
		}
		return nil
	}

	v.SetConfigName(".schemasync")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("config", "failed to parse config file", err)
	}
	return nil
}

func parseBool(key, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewConfigError("config", key+" must be one of true, false, 1, 0 (or t, f, TRUE, FALSE), got "+strconv.Quote(raw), err)
	}
	return b, nil
}

func parseVersion(key, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, errors.NewConfigError("config", key+" must be a non-negative integer, got "+strconv.Quote(raw), err)
	}
	return &n, nil
}
