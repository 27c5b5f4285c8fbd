package validate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/internal/cmd/application"
	"github.com/agentstation/schemasync/internal/config"
	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/schema"
)

const export = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "x-amazon-events-source": "surgical.events",
  "type": "object",
  "required": ["detail", "id"],
  "properties": {
    "id": {"type": "string"},
    "detail": {
      "type": "object",
      "required": ["caseId"],
      "properties": {"caseId": {"type": "string"}}
    }
  }
}`

func runValidate(t *testing.T, stdin string, args ...string) (string, int, error) {
	t.Helper()

	requested := -1
	syncer := &application.SyncerMock{
		SchemaFunc: func(_ context.Context, version int) (*schema.Transformed, error) {
			requested = version
			v := version
			if v < 1 {
				v = 3
			}
			return schema.Transform([]byte(export), v)
		},
	}
	app := &application.Mock{
		ConfigFunc: func() *config.Config { return &config.Config{} },
		SyncerFunc: func(context.Context, schemasync.Target) (schemasync.Syncer, error) {
			return syncer, nil
		},
	}

	cmd := NewCommand(app)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	return stdout.String(), requested, err
}

func TestValidateCommand_Stdin(t *testing.T) {
	out, requested, err := runValidate(t, `{"detail": {"caseId": "c-1"}}`)
	require.NoError(t, err)
	assert.Equal(t, 0, requested)
	assert.Equal(t, "✓ valid against version 3\n", out)
}

func TestValidateCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"detail": {"caseId": "c-1"}}`), 0o600))

	out, requested, err := runValidate(t, "", "--version", "4", path)
	require.NoError(t, err)
	assert.Equal(t, 4, requested)
	assert.Equal(t, "✓ valid against version 4\n", out)
}

func TestValidateCommand_DashReadsStdin(t *testing.T) {
	out, _, err := runValidate(t, `{"detail": {"caseId": "c-1"}}`, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestValidateCommand_Invalid(t *testing.T) {
	_, _, err := runValidate(t, `{"detail": {}}`)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaInvalid(err))
}

func TestValidateCommand_EnvelopeNotRequired(t *testing.T) {
	// id is envelope metadata and is stripped from required
	_, _, err := runValidate(t, `{"detail": {"caseId": "c-1"}, "id": 12}`)
	require.NoError(t, err)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, _, err := runValidate(t, "", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestValidateCommand_ShowSchema(t *testing.T) {
	out, _, err := runValidate(t, "", "--show-schema", "--version", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"description": "2"`)
	assert.NotContains(t, out, "x-amazon-events-source")
	assert.NotContains(t, out, "valid against")
}
