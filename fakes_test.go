package schemasync

import (
	"context"
	"fmt"

	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/schema"
)

// registryExport returns a registry export for version v with the event envelope.
func registryExport(v int) []byte {
	return []byte(fmt.Sprintf(`{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"title": "OrderPlaced",
		"type": "object",
		"description": "registry copy %d",
		"x-amazon-events-detail-type": "OrderPlaced",
		"x-amazon-events-source": "shop.orders",
		"properties": {
			"account": {"type": "string"},
			"detail": {"type": "object", "properties": {"orderId": {"type": "string"}, "rev": {"enum": [%d]}}},
			"detail-type": {"type": "string"},
			"id": {"type": "string"},
			"region": {"type": "string"},
			"resources": {"type": "array"},
			"source": {"type": "string"},
			"time": {"type": "string"},
			"version": {"type": "string"}
		},
		"required": ["id", "detail", "source", "time"]
	}`, v, v))
}

type fakeRegistry struct {
	versions  []int
	exports   map[int][]byte
	listErr   error
	exportErr error

	listCalls   int
	exportCalls []int
}

func newFakeRegistry(versions ...int) *fakeRegistry {
	f := &fakeRegistry{versions: versions, exports: map[int][]byte{}}
	for _, v := range versions {
		f.exports[v] = registryExport(v)
	}
	return f
}

func (f *fakeRegistry) ListVersions(_ context.Context, _, _ string) ([]int, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]int(nil), f.versions...), nil
}

func (f *fakeRegistry) ExportSchema(_ context.Context, registryName, schemaName string, version int) ([]byte, error) {
	f.exportCalls = append(f.exportCalls, version)
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	body, ok := f.exports[version]
	if !ok {
		return nil, &errors.VersionNotFoundError{Registry: registryName, Schema: schemaName, Version: version}
	}
	return body, nil
}

type fakeModels struct {
	body       []byte
	publishErr error
	deployErr  error

	reads        int
	publishes    int
	deploys      int
	stage        string
	description  string
	deploymentID string
}

func (f *fakeModels) CurrentVersion(_ context.Context, _, _ string) (int, error) {
	f.reads++
	return schema.ParseMarker(f.body), nil
}

func (f *fakeModels) Publish(_ context.Context, _, _ string, body []byte) error {
	f.publishes++
	if f.publishErr != nil {
		return f.publishErr
	}
	f.body = append([]byte(nil), body...)
	return nil
}

func (f *fakeModels) Deploy(_ context.Context, _, stage, description string) (string, error) {
	f.deploys++
	if f.deployErr != nil {
		return "", f.deployErr
	}
	f.stage = stage
	f.description = description
	f.deploymentID = fmt.Sprintf("dep-%d", f.deploys)
	return f.deploymentID, nil
}

// mutations counts calls that change remote state.
func (f *fakeModels) mutations() int {
	return f.publishes + f.deploys
}

func modelAt(v int) []byte {
	return []byte(fmt.Sprintf(`{"type":"object","description":"%d"}`, v))
}

func testTarget() Target {
	return Target{
		Registry: "discovered-schemas",
		Schema:   "shop.orders@OrderPlaced",
		APIID:    "a1b2c3d4",
		Model:    "OrderPlaced",
	}
}
