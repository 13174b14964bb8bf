package entities

import "fmt"

// PlanAction is what the initializer decided to do with one entry.
type PlanAction string

const (
	ActionNone         PlanAction = "none"
	ActionMaterialize  PlanAction = "materialize"
	ActionUpdate       PlanAction = "update"
	ActionSkipNoAccess PlanAction = "skip-no-access"
	ActionSkipDirty    PlanAction = "skip-dirty"
	ActionSkipError    PlanAction = "skip-error"
)

// InitPolicy controls which divergent local states the planner may touch.
// The interface is closed on purpose: only DefaultPolicy and ForcePolicy
// exist, and overriding the dirty safeguard requires the latter's distinct
// type rather than a flag a caller could flip implicitly.
type InitPolicy interface {
	allowUpdate() bool
	overrideDirty() bool
}

// DefaultPolicy materializes absent entries and, when AllowUpdate is set,
// updates stale ones. It never touches dirty checkouts.
type DefaultPolicy struct {
	AllowUpdate bool
}

func (p DefaultPolicy) allowUpdate() bool   { return p.AllowUpdate }
func (p DefaultPolicy) overrideDirty() bool { return false }

// ForcePolicy is the explicit, separately-typed opt-in that lets the planner
// schedule updates over dirty checkouts.
type ForcePolicy struct{}

func (ForcePolicy) allowUpdate() bool   { return true }
func (ForcePolicy) overrideDirty() bool { return true }

// PlannedStep is one entry's planned action plus the reason it was chosen.
type PlannedStep struct {
	Entry  DependencyEntry `json:"entry"`
	Action PlanAction      `json:"action"`
	Reason string          `json:"reason,omitempty"`
}

// InitializationPlan is the full decision set for one run, in manifest order.
type InitializationPlan struct {
	Steps []PlannedStep `json:"steps"`
}

// InitializationError wraps a checkout-operation failure with the entry's
// path for context.
type InitializationError struct {
	Path string
	Op   string // "materialize" or "update"
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// InitializationOutcome records what happened to one entry during execution.
// Dry runs produce the same shape with Attempted=false.
type InitializationOutcome struct {
	Entry     DependencyEntry      `json:"entry"`
	Action    PlanAction           `json:"action"`
	Attempted bool                 `json:"attempted"`
	Succeeded bool                 `json:"succeeded"`
	Err       *InitializationError `json:"-"`
	Error     string               `json:"error,omitempty"`
}

// InitReport aggregates the plan and per-entry outcomes of one run.
type InitReport struct {
	Outcomes []InitializationOutcome `json:"outcomes"`
	DryRun   bool                    `json:"dry_run"`
}

// Clean reports whether the run had no skips and no failures. The CLI exit
// code reflects it: skips are non-fatal but still informational failures.
func (r *InitReport) Clean() bool {
	for _, outcome := range r.Outcomes {
		switch outcome.Action {
		case ActionSkipNoAccess, ActionSkipDirty, ActionSkipError:
			return false
		case ActionNone:
			continue
		case ActionMaterialize, ActionUpdate:
			if !r.DryRun && !outcome.Succeeded {
				return false
			}
		}
	}
	return true
}

// BuildPlan is the pure decision function of the initializer. Results and
// states are parallel slices in manifest order; the returned steps keep
// that order. It performs no I/O.
func BuildPlan(results []ProbeResult, states []LocalState, policy InitPolicy) InitializationPlan {
	steps := make([]PlannedStep, 0, len(states))

	for i, state := range states {
		accessible := i < len(results) && results[i].Accessible
		step := PlannedStep{Entry: state.Entry}

		switch state.Status {
		case StatusCurrent:
			step.Action = ActionNone
			step.Reason = "already up to date"

		case StatusDirty:
			if policy.overrideDirty() && accessible {
				step.Action = ActionUpdate
				step.Reason = "forced update over uncommitted local changes"
			} else {
				step.Action = ActionSkipDirty
				step.Reason = "uncommitted local changes present"
			}

		case StatusUnreadable:
			step.Action = ActionSkipError
			step.Reason = state.Detail

		case StatusAbsent, StatusEmpty:
			if accessible {
				step.Action = ActionMaterialize
				step.Reason = "checkout missing, remote accessible"
			} else {
				step.Action = ActionSkipNoAccess
				step.Reason = skipReason(results, i)
			}

		case StatusStale:
			switch {
			case !accessible:
				step.Action = ActionSkipNoAccess
				step.Reason = skipReason(results, i)
			case policy.allowUpdate():
				step.Action = ActionUpdate
				step.Reason = fmt.Sprintf("checked out %s, expected %s",
					shortRef(state.CurrentRef), shortRef(state.ExpectedRef))
			default:
				step.Action = ActionNone
				step.Reason = "stale, updates disabled by policy"
			}
		}

		steps = append(steps, step)
	}

	return InitializationPlan{Steps: steps}
}

func skipReason(results []ProbeResult, i int) string {
	if i >= len(results) {
		return "remote not accessible"
	}
	result := results[i]
	if result.Detail != "" {
		return fmt.Sprintf("remote not accessible (%s): %s", result.Reason, result.Detail)
	}
	return fmt.Sprintf("remote not accessible (%s)", result.Reason)
}

const shortRefLen = 8

func shortRef(ref string) string {
	if len(ref) > shortRefLen {
		return ref[:shortRefLen]
	}
	if ref == "" {
		return "?"
	}
	return ref
}
