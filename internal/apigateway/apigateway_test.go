package apigateway

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/logging"
	"github.com/agentstation/schemasync/pkg/schema"
)

type fakeAPI struct {
	model     *string
	getErr    error
	updateErr error
	deployErr error

	getCalls    []*apigateway.GetModelInput
	updateCalls []*apigateway.UpdateModelInput
	deployCalls []*apigateway.CreateDeploymentInput
}

func (f *fakeAPI) GetModel(_ context.Context, in *apigateway.GetModelInput, _ ...func(*apigateway.Options)) (*apigateway.GetModelOutput, error) {
	f.getCalls = append(f.getCalls, in)
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.model == nil {
		return nil, &types.NotFoundException{Message: aws.String("Invalid model name specified")}
	}
	return &apigateway.GetModelOutput{Name: in.ModelName, Schema: f.model}, nil
}

func (f *fakeAPI) UpdateModel(_ context.Context, in *apigateway.UpdateModelInput, _ ...func(*apigateway.Options)) (*apigateway.UpdateModelOutput, error) {
	f.updateCalls = append(f.updateCalls, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.model = in.PatchOperations[0].Value
	return &apigateway.UpdateModelOutput{Name: in.ModelName, Schema: f.model}, nil
}

func (f *fakeAPI) CreateDeployment(_ context.Context, in *apigateway.CreateDeploymentInput, _ ...func(*apigateway.Options)) (*apigateway.CreateDeploymentOutput, error) {
	f.deployCalls = append(f.deployCalls, in)
	if f.deployErr != nil {
		return nil, f.deployErr
	}
	return &apigateway.CreateDeploymentOutput{Id: aws.String("dep123"), Description: in.Description}, nil
}

func TestCurrentVersion(t *testing.T) {
	tests := []struct {
		name  string
		model *string
		want  int
	}{
		{"string marker", aws.String(`{"type":"object","description":"7"}`), 7},
		{"number marker", aws.String(`{"type":"object","description":7}`), 7},
		{"no marker", aws.String(`{"type":"object"}`), 0},
		{"free text marker", aws.String(`{"description":"Orders model"}`), 0},
		{"not json", aws.String(`not json`), 0},
		{"missing model", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAPI{model: tt.model}
			got, err := New(fake).CurrentVersion(context.Background(), "a1b2c3", "EventModel")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, fake.getCalls, 1)
			assert.True(t, fake.getCalls[0].Flatten)
			assert.Equal(t, "a1b2c3", aws.ToString(fake.getCalls[0].RestApiId))
			assert.Equal(t, "EventModel", aws.ToString(fake.getCalls[0].ModelName))
		})
	}
}

func TestCurrentVersionServiceError(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	fake := &fakeAPI{getErr: &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}}
	got, err := New(fake).CurrentVersion(ctx, "a", "m")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	tl.AssertContains(t, "treating as never synced")
}

func TestPublish(t *testing.T) {
	fake := &fakeAPI{}
	body := []byte(`{"description":"4","type":"object"}`)

	require.NoError(t, New(fake).Publish(context.Background(), "a1", "EventModel", body))
	require.Len(t, fake.updateCalls, 1)

	ops := fake.updateCalls[0].PatchOperations
	require.Len(t, ops, 1)
	assert.Equal(t, types.OpReplace, ops[0].Op)
	assert.Equal(t, "/schema", aws.ToString(ops[0].Path))
	assert.Equal(t, string(body), aws.ToString(ops[0].Value))
}

func TestPublishThenReadRoundTrip(t *testing.T) {
	out, err := schema.Transform([]byte(`{"type":"object","properties":{"id":{"type":"string"}}}`), 12)
	require.NoError(t, err)

	fake := &fakeAPI{}
	client := New(fake)
	require.NoError(t, client.Publish(context.Background(), "a", "m", out.Body))

	got, err := client.CurrentVersion(context.Background(), "a", "m")
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestPublishFailure(t *testing.T) {
	fake := &fakeAPI{updateErr: &smithy.GenericAPIError{Code: "BadRequestException", Message: "Invalid model schema specified"}}
	err := New(fake).Publish(context.Background(), "a", "m", []byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, errors.KindModelUpdateFailed, errors.KindOf(err))
	assert.Contains(t, err.Error(), "BadRequestException")
}

func TestDeploy(t *testing.T) {
	fake := &fakeAPI{}

	id, err := New(fake).Deploy(context.Background(), "a1", "dev", "")
	require.NoError(t, err)
	assert.Equal(t, "dep123", id)

	require.Len(t, fake.deployCalls, 1)
	in := fake.deployCalls[0]
	assert.Equal(t, "dev", aws.ToString(in.StageName))
	assert.Equal(t, "Deployment to dev stage", aws.ToString(in.Description))
	assert.Equal(t, "Deployed to dev stage", aws.ToString(in.StageDescription))

	_, err = New(fake).Deploy(context.Background(), "a1", "prod", "schema v5")
	require.NoError(t, err)
	assert.Equal(t, "schema v5", aws.ToString(fake.deployCalls[1].Description))
}

func TestDeployFailure(t *testing.T) {
	fake := &fakeAPI{deployErr: &smithy.GenericAPIError{Code: "TooManyRequestsException", Message: "Rate exceeded"}}
	id, err := New(fake).Deploy(context.Background(), "a", "dev", "")
	require.Error(t, err)
	assert.Empty(t, id)
	assert.Equal(t, errors.KindDeploymentFailed, errors.KindOf(err))
}
