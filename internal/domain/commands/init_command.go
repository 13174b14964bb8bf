package commands

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// InitAccessible is the interface for the init-accessible command.
type InitAccessible interface {
	Execute(ctx context.Context, rc entities.RuntimeContext, opts InitOptions) (*entities.InitReport, error)
}

// InitOptions holds runtime options for one initialization run.
type InitOptions struct {
	Category string
	DryRun   bool
	Force    bool // selects the explicit ForcePolicy
}

// InitCommand reconciles local checkouts against the manifest: probe
// remotes, inspect local state, plan the safe set, execute per entry.
type InitCommand struct {
	prober    repositories.RemoteProber
	inspector repositories.StateInspector
	writer    repositories.WorkspaceWriter
}

// NewInitCommand creates a new InitCommand.
func NewInitCommand(
	prober repositories.RemoteProber,
	inspector repositories.StateInspector,
	writer repositories.WorkspaceWriter,
) *InitCommand {
	return &InitCommand{
		prober:    prober,
		inspector: inspector,
		writer:    writer,
	}
}

// Execute runs the full reconciliation. A failure on one entry never aborts
// the remaining independent entries; the report enumerates every targeted
// entry exactly once.
func (it *InitCommand) Execute(
	ctx context.Context,
	rc entities.RuntimeContext,
	opts InitOptions,
) (*entities.InitReport, error) {
	entries, err := rc.LoadManifest()
	if err != nil {
		return nil, err
	}

	targets, err := filterEntries(entries, opts.Category)
	if err != nil {
		return nil, err
	}

	results := probeAll(ctx, it.prober, targets, rc)

	states := make([]entities.LocalState, len(targets))
	for i, entry := range targets {
		states[i] = it.inspector.Inspect(entry, rc.WorkspaceRoot)
	}

	var policy entities.InitPolicy = entities.DefaultPolicy{AllowUpdate: true}
	if opts.Force {
		policy = entities.ForcePolicy{}
	}

	plan := entities.BuildPlan(results, states, policy)
	return it.execute(ctx, rc, plan, opts.DryRun), nil
}

// execute performs the planned action per entry. Dry runs produce the same
// outcome shape with Attempted=false and perform zero filesystem mutation.
func (it *InitCommand) execute(
	ctx context.Context,
	rc entities.RuntimeContext,
	plan entities.InitializationPlan,
	dryRun bool,
) *entities.InitReport {
	report := &entities.InitReport{
		Outcomes: make([]entities.InitializationOutcome, 0, len(plan.Steps)),
		DryRun:   dryRun,
	}

	for _, step := range plan.Steps {
		outcome := entities.InitializationOutcome{
			Entry:  step.Entry,
			Action: step.Action,
		}

		switch step.Action {
		case entities.ActionMaterialize, entities.ActionUpdate:
			if dryRun {
				break
			}
			outcome.Attempted = true
			if err := it.mutate(ctx, rc, step); err != nil {
				outcome.Err = err
				outcome.Error = err.Error()
				logger.Errorf("%v", err)
			} else {
				outcome.Succeeded = true
				logger.Infof("%s %s: done", step.Action, step.Entry.Path)
			}

		case entities.ActionSkipNoAccess, entities.ActionSkipDirty, entities.ActionSkipError:
			logger.Warnf("%s %s: %s", step.Action, step.Entry.Path, step.Reason)

		case entities.ActionNone:
			logger.Debugf("%s: %s", step.Entry.Path, step.Reason)
		}

		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}

func (it *InitCommand) mutate(
	ctx context.Context,
	rc entities.RuntimeContext,
	step entities.PlannedStep,
) *entities.InitializationError {
	var err error
	switch step.Action {
	case entities.ActionMaterialize:
		err = it.writer.Materialize(ctx, step.Entry, rc.WorkspaceRoot, rc.Auth)
	case entities.ActionUpdate:
		err = it.writer.Update(ctx, step.Entry, rc.WorkspaceRoot, rc.Auth)
	}
	if err == nil {
		return nil
	}

	var initErr *entities.InitializationError
	if errors.As(err, &initErr) {
		return initErr
	}
	return &entities.InitializationError{
		Path: step.Entry.Path,
		Op:   string(step.Action),
		Err:  err,
	}
}
