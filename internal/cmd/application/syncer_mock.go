package application

import (
	"context"

	"github.com/agentstation/schemasync"
	"github.com/agentstation/schemasync/pkg/schema"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// SyncerMock provides a mock implementation of schemasync.Syncer for command tests.
// Nil function fields return zero values.
type SyncerMock struct {
	SyncFunc     func(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)
	StatusFunc   func(ctx context.Context, opts ...pkgsync.Option) (*schemasync.Status, error)
	VersionsFunc func(ctx context.Context) ([]int, error)
	SchemaFunc   func(ctx context.Context, version int) (*schema.Transformed, error)
	TargetValue  schemasync.Target

	Published []schemasync.PublishedHook
	Deployed  []schemasync.DeployedHook
}

// Sync calls SyncFunc.
func (m *SyncerMock) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, opts...)
	}
	return &pkgsync.Result{}, nil
}

// Status calls StatusFunc.
func (m *SyncerMock) Status(ctx context.Context, opts ...pkgsync.Option) (*schemasync.Status, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, opts...)
	}
	return &schemasync.Status{}, nil
}

// Versions calls VersionsFunc.
func (m *SyncerMock) Versions(ctx context.Context) ([]int, error) {
	if m.VersionsFunc != nil {
		return m.VersionsFunc(ctx)
	}
	return nil, nil
}

// Schema calls SchemaFunc.
func (m *SyncerMock) Schema(ctx context.Context, version int) (*schema.Transformed, error) {
	if m.SchemaFunc != nil {
		return m.SchemaFunc(ctx, version)
	}
	return nil, nil
}

// Target returns TargetValue.
func (m *SyncerMock) Target() schemasync.Target {
	return m.TargetValue
}

// OnPublished records the hook.
func (m *SyncerMock) OnPublished(fn schemasync.PublishedHook) {
	m.Published = append(m.Published, fn)
}

// OnDeployed records the hook.
func (m *SyncerMock) OnDeployed(fn schemasync.DeployedHook) {
	m.Deployed = append(m.Deployed, fn)
}

var _ schemasync.Syncer = (*SyncerMock)(nil)
