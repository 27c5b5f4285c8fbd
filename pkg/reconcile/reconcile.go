// Package reconcile decides which single action a synchronization run takes.
//
// The decision is a pure function of three inputs: the version currently
// applied to the API model, the versions the registry lists, and whether a
// rollback was requested. It performs no I/O, so hosts and tests can call it
// directly to preview a run.
package reconcile

import (
	"fmt"
	"slices"

	"github.com/agentstation/schemasync/pkg/errors"
)

// Kind is the type of action a run takes.
type Kind string

const (
	// Noop leaves the model untouched.
	Noop Kind = "noop"
	// Advance publishes the latest registry version.
	Advance Kind = "advance"
	// Rollback publishes the version immediately below the applied one.
	Rollback Kind = "rollback"
)

// Action is the single decision made per run.
type Action struct {
	Kind   Kind `json:"kind" yaml:"kind"`
	Target int  `json:"target,omitempty" yaml:"target,omitempty"`
}

// NoopAction returns the do-nothing action.
func NoopAction() Action {
	return Action{Kind: Noop}
}

// AdvanceTo returns an action that publishes version v.
func AdvanceTo(v int) Action {
	return Action{Kind: Advance, Target: v}
}

// RollbackTo returns an action that republishes version v.
func RollbackTo(v int) Action {
	return Action{Kind: Rollback, Target: v}
}

// Mutates reports whether the action publishes and deploys.
func (a Action) Mutates() bool {
	return a.Kind == Advance || a.Kind == Rollback
}

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a.Kind {
	case Advance:
		return fmt.Sprintf("AdvanceTo(%d)", a.Target)
	case Rollback:
		return fmt.Sprintf("RollbackTo(%d)", a.Target)
	default:
		return "Noop"
	}
}

// Decide picks exactly one action.
//
// An empty available set fails with NoVersionsPublished whether or not a
// rollback was requested. A rollback only ever steps back one version from
// current, and fails with RollbackTargetUnavailable when that version is
// below 1 or not listed. A forward sync advances straight to the maximum
// listed version when it is above current; otherwise it is a Noop, including
// when current is ahead of the registry.
func Decide(current int, available []int, rollback bool) (Action, error) {
	if len(available) == 0 {
		return Action{}, errors.ErrNoVersionsPublished
	}

	if rollback {
		target := current - 1
		if target < 1 || !slices.Contains(available, target) {
			return Action{}, &errors.RollbackError{Current: current, Target: target}
		}
		return RollbackTo(target), nil
	}

	if latest := Latest(available); latest > current {
		return AdvanceTo(latest), nil
	}
	return NoopAction(), nil
}

// Latest returns the maximum version, or 0 when none are available.
func Latest(available []int) int {
	if len(available) == 0 {
		return 0
	}
	return slices.Max(available)
}
