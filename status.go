package schemasync

import (
	"context"

	"github.com/agentstation/schemasync/pkg/errors"
	"github.com/agentstation/schemasync/pkg/reconcile"
	pkgsync "github.com/agentstation/schemasync/pkg/sync"
)

// Status is a read-only preview of the target.
type Status struct {
	Target    Target `json:"target" yaml:"target"`
	Current   int    `json:"current" yaml:"current"`
	Latest    int    `json:"latest" yaml:"latest"`
	Available []int  `json:"available" yaml:"available"`

	// Forward is what a sync without rollback would do.
	Forward reconcile.Action `json:"forward" yaml:"forward"`
	// Rollback is what a rollback would do; nil when RollbackError is set.
	Rollback      *reconcile.Action `json:"rollback,omitempty" yaml:"rollback,omitempty"`
	RollbackError string            `json:"rollback_error,omitempty" yaml:"rollback_error,omitempty"`
}

// InSync reports whether the model carries the latest version.
func (st *Status) InSync() bool {
	return !st.Forward.Mutates()
}

// Status reads the applied version and registry versions and runs both
// decisions without exporting or publishing anything.
func (s *syncer) Status(ctx context.Context, opts ...pkgsync.Option) (*Status, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	current, err := s.currentVersion(ctx, options)
	if err != nil {
		return nil, err
	}

	available, err := s.Versions(ctx)
	if err != nil {
		return nil, err
	}

	forward, err := reconcile.Decide(current, available, false)
	if err != nil {
		return nil, err
	}

	st := &Status{
		Target:    s.target,
		Current:   current,
		Latest:    reconcile.Latest(available),
		Available: available,
		Forward:   forward,
	}

	rollback, err := reconcile.Decide(current, available, true)
	switch {
	case err == nil:
		st.Rollback = &rollback
	case errors.IsRollbackUnavailable(err):
		st.RollbackError = err.Error()
	default:
		return nil, err
	}

	return st, nil
}
