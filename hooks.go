package schemasync

import (
	"context"
	"sync"

	"github.com/agentstation/schemasync/pkg/reconcile"
	"github.com/agentstation/schemasync/pkg/schema"
)

// Hook function types for run events
type (
	// PublishedHook is called after a schema replaces the model's schema
	PublishedHook func(ctx context.Context, target Target, action reconcile.Action, published *schema.Transformed)

	// DeployedHook is called after a deployment is created
	DeployedHook func(ctx context.Context, target Target, version int, deploymentID string)
)

// hooks manages event callbacks for run mutations
type hooks struct {
	mu          sync.RWMutex
	onPublished []PublishedHook
	onDeployed  []DeployedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPublished registers a callback for when a schema is published
func (s *syncer) OnPublished(fn PublishedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onPublished = append(s.hooks.onPublished, fn)
}

// OnDeployed registers a callback for when a deployment is created
func (s *syncer) OnDeployed(fn DeployedHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onDeployed = append(s.hooks.onDeployed, fn)
}

func (h *hooks) triggerPublished(ctx context.Context, target Target, action reconcile.Action, published *schema.Transformed) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPublished {
		hook(ctx, target, action, published)
	}
}

func (h *hooks) triggerDeployed(ctx context.Context, target Target, version int, deploymentID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onDeployed {
		hook(ctx, target, version, deploymentID)
	}
}
