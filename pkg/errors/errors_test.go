package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/schemasync/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestConfigError(t *testing.T) {
	t.Run("missing keys", func(t *testing.T) {
		err := pkgerrors.NewMissingConfigError("sync", "SchemaName", "ApiId")
		assert.Equal(t, "configuration error in sync: missing required settings: SchemaName, ApiId", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrConfigMissing))
		assert.False(t, errors.Is(err, pkgerrors.ErrConfigInvalid))
		assert.Equal(t, pkgerrors.KindConfigMissing, pkgerrors.KindOf(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		base := errors.New("strconv.Atoi: parsing \"abc\": invalid syntax")
		err := pkgerrors.NewConfigError("", "CurrentSchemaVersion must be an integer", base)
		assert.Equal(t, "configuration error: CurrentSchemaVersion must be an integer", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrConfigInvalid))
		assert.ErrorIs(t, err, base)
		assert.True(t, pkgerrors.IsConfigError(err))
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			Service:   "apigateway",
			Operation: "UpdateModel",
			Kind:      pkgerrors.KindModelUpdateFailed,
			Code:      "TooManyRequestsException",
			Message:   "slow down",
		}
		assert.Equal(t, "apigateway UpdateModel failed (TooManyRequestsException): slow down", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrModelUpdateFailed))
		assert.False(t, errors.Is(err, pkgerrors.ErrDeploymentFailed))
	})

	t.Run("wrapped", func(t *testing.T) {
		base := errors.New("connection reset")
		err := pkgerrors.NewAPIError("schemas", "ListSchemaVersions", pkgerrors.KindRegistryUnavailable, base)
		assert.ErrorIs(t, err, base)
		assert.ErrorIs(t, err, pkgerrors.ErrRegistryUnavailable)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestRollbackError(t *testing.T) {
	floor := &pkgerrors.RollbackError{Current: 1, Target: 0}
	assert.Equal(t, "cannot roll back from version 1: no version below 1", floor.Error())
	assert.True(t, pkgerrors.IsRollbackUnavailable(floor))

	gap := &pkgerrors.RollbackError{Current: 5, Target: 4}
	assert.Equal(t, "cannot roll back from version 5: version 4 is not published", gap.Error())
	assert.Equal(t, pkgerrors.KindRollbackTargetUnavailable, pkgerrors.KindOf(gap))
}

func TestVersionNotFoundError(t *testing.T) {
	err := &pkgerrors.VersionNotFoundError{Registry: "discovered-schemas", Schema: "orders", Version: 9}
	assert.Equal(t, "schema orders version 9 not found in registry discovered-schemas", err.Error())
	assert.True(t, pkgerrors.IsVersionNotFound(err))
	assert.False(t, errors.Is(err, pkgerrors.ErrRegistryUnavailable))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.WrapValidation("required", errors.New("minItems 1"))
	assert.True(t, pkgerrors.IsSchemaInvalid(err))
	assert.Contains(t, err.Error(), "required")
	assert.NoError(t, pkgerrors.WrapValidation("x", nil))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want pkgerrors.Kind
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), pkgerrors.KindUnknown},
		{"no versions", fmt.Errorf("%w: registry r schema s", pkgerrors.ErrNoVersionsPublished), pkgerrors.KindNoVersionsPublished},
		{"deploy", pkgerrors.NewAPIError("apigateway", "CreateDeployment", pkgerrors.KindDeploymentFailed, errors.New("x")), pkgerrors.KindDeploymentFailed},
		{"joined", errors.Join(errors.New("outer"), &pkgerrors.RollbackError{Current: 2, Target: 1}), pkgerrors.KindRollbackTargetUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.KindOf(tt.err))
		})
	}
}

func TestSentinel(t *testing.T) {
	assert.Equal(t, pkgerrors.ErrSchemaInvalid, pkgerrors.Sentinel(pkgerrors.KindSchemaInvalid))
	assert.Nil(t, pkgerrors.Sentinel(pkgerrors.KindUnknown))
}
