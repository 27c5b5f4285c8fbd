// Package errors provides the typed error taxonomy for schema synchronization runs.
// Every failure a run can end in maps to exactly one Kind, so hosts (CLI, Lambda)
// can report the kind and pick an exit status without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Kind classifies a failed run.
type Kind string

// Run failure kinds.
const (
	KindConfigMissing             Kind = "ConfigMissing"
	KindConfigInvalid             Kind = "ConfigInvalid"
	KindRegistryUnavailable       Kind = "RegistryUnavailable"
	KindVersionNotFound           Kind = "VersionNotFound"
	KindNoVersionsPublished       Kind = "NoVersionsPublished"
	KindRollbackTargetUnavailable Kind = "RollbackTargetUnavailable"
	KindSchemaInvalid             Kind = "SchemaInvalid"
	KindModelUpdateFailed         Kind = "ModelUpdateFailed"
	KindDeploymentFailed          Kind = "DeploymentFailed"
	KindUnknown                   Kind = "Unknown"
)

// Sentinel errors, one per Kind. Typed errors below report them through Is.
var (
	// ErrConfigMissing indicates required configuration was not supplied
	ErrConfigMissing = errors.New("configuration missing")

	// ErrConfigInvalid indicates configuration was supplied but malformed
	ErrConfigInvalid = errors.New("configuration invalid")

	// ErrRegistryUnavailable indicates the schema registry could not be queried
	ErrRegistryUnavailable = errors.New("registry unavailable")

	// ErrVersionNotFound indicates the registry has no such schema version
	ErrVersionNotFound = errors.New("version not found")

	// ErrNoVersionsPublished indicates the registry lists no versions for the schema
	ErrNoVersionsPublished = errors.New("no versions published")

	// ErrRollbackTargetUnavailable indicates the previous version cannot be rolled back to
	ErrRollbackTargetUnavailable = errors.New("rollback target unavailable")

	// ErrSchemaInvalid indicates the transformed schema failed draft-04 compilation
	ErrSchemaInvalid = errors.New("schema invalid")

	// ErrModelUpdateFailed indicates the API model could not be replaced
	ErrModelUpdateFailed = errors.New("model update failed")

	// ErrDeploymentFailed indicates the stage deployment could not be created
	ErrDeploymentFailed = errors.New("deployment failed")
)

// sentinels is ordered so KindOf reports the most specific kind first.
var sentinels = []struct {
	kind Kind
	err  error
}{
	{KindConfigMissing, ErrConfigMissing},
	{KindConfigInvalid, ErrConfigInvalid},
	{KindNoVersionsPublished, ErrNoVersionsPublished},
	{KindRollbackTargetUnavailable, ErrRollbackTargetUnavailable},
	{KindVersionNotFound, ErrVersionNotFound},
	{KindRegistryUnavailable, ErrRegistryUnavailable},
	{KindSchemaInvalid, ErrSchemaInvalid},
	{KindModelUpdateFailed, ErrModelUpdateFailed},
	{KindDeploymentFailed, ErrDeploymentFailed},
}

// Sentinel returns the sentinel error for a kind, or nil for KindUnknown.
func Sentinel(kind Kind) error {
	for _, s := range sentinels {
		if s.kind == kind {
			return s.err
		}
	}
	return nil
}

// KindOf classifies err. It returns "" for nil and KindUnknown for errors
// outside the taxonomy.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return KindUnknown
}

// ConfigError represents missing or malformed configuration
type ConfigError struct {
	Component string
	Missing   []string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.Message
	if len(e.Missing) > 0 {
		msg = fmt.Sprintf("missing required settings: %s", strings.Join(e.Missing, ", "))
		if e.Message != "" {
			msg += " (" + e.Message + ")"
		}
	}
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, msg)
	}
	return fmt.Sprintf("configuration error: %s", msg)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	if len(e.Missing) > 0 {
		return target == ErrConfigMissing
	}
	return target == ErrConfigInvalid
}

// NewConfigError creates a ConfigError for malformed configuration
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// NewMissingConfigError creates a ConfigError listing every missing key
func NewMissingConfigError(component string, missing ...string) *ConfigError {
	return &ConfigError{
		Component: component,
		Missing:   missing,
	}
}

// APIError represents a failed call to a remote AWS service
type APIError struct {
	Service   string // "schemas" or "apigateway"
	Operation string // e.g. "ListSchemaVersions"
	Kind      Kind
	Code      string // remote error code, when the service returned one
	Message   string
	Err       error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s failed (%s): %s", e.Service, e.Operation, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	sentinel := Sentinel(e.Kind)
	return sentinel != nil && target == sentinel
}

// NewAPIError creates a new APIError
func NewAPIError(service, operation string, kind Kind, err error) *APIError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &APIError{
		Service:   service,
		Operation: operation,
		Kind:      kind,
		Message:   message,
		Err:       err,
	}
}

// VersionNotFoundError represents a schema version the registry does not have
type VersionNotFoundError struct {
	Registry string
	Schema   string
	Version  int
	Err      error
}

// Error implements the error interface
func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("schema %s version %d not found in registry %s", e.Schema, e.Version, e.Registry)
}

// Unwrap implements errors.Unwrap
func (e *VersionNotFoundError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *VersionNotFoundError) Is(target error) bool {
	return target == ErrVersionNotFound
}

// RollbackError represents a rollback request that has no valid target
type RollbackError struct {
	Current int
	Target  int
}

// Error implements the error interface
func (e *RollbackError) Error() string {
	if e.Target < 1 {
		return fmt.Sprintf("cannot roll back from version %d: no version below 1", e.Current)
	}
	return fmt.Sprintf("cannot roll back from version %d: version %d is not published", e.Current, e.Target)
}

// Is implements errors.Is support
func (e *RollbackError) Is(target error) bool {
	return target == ErrRollbackTargetUnavailable
}

// ValidationError represents a schema that failed draft-04 compilation
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("schema validation failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrSchemaInvalid
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Helper functions for error checking

// IsConfigError checks if an error is a missing or invalid configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrConfigInvalid)
}

// IsRollbackUnavailable checks if an error is a rollback target error
func IsRollbackUnavailable(err error) bool {
	return errors.Is(err, ErrRollbackTargetUnavailable)
}

// IsVersionNotFound checks if an error is a missing version error
func IsVersionNotFound(err error) bool {
	return errors.Is(err, ErrVersionNotFound)
}

// IsSchemaInvalid checks if an error is a schema validation error
func IsSchemaInvalid(err error) bool {
	return errors.Is(err, ErrSchemaInvalid)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error(), Err: err}
}

