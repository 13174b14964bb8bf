package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// Diagnose is the interface for the diagnose command.
type Diagnose interface {
	Execute(ctx context.Context, rc entities.RuntimeContext, opts DiagnoseOptions) (*entities.DiagnosticReport, error)
}

// DiagnoseOptions holds runtime options for one diagnostic pass.
type DiagnoseOptions struct {
	Submodule string // if set, diagnose only this manifest path
	Verbose   bool
}

// DiagnoseCommand runs probe + local inspection across the manifest, layers
// in system-level environment checks, and attaches remediation suggestions.
type DiagnoseCommand struct {
	prober    repositories.RemoteProber
	inspector repositories.StateInspector
	env       repositories.EnvironmentChecker
}

// NewDiagnoseCommand creates a new DiagnoseCommand.
func NewDiagnoseCommand(
	prober repositories.RemoteProber,
	inspector repositories.StateInspector,
	env repositories.EnvironmentChecker,
) *DiagnoseCommand {
	return &DiagnoseCommand{
		prober:    prober,
		inspector: inspector,
		env:       env,
	}
}

// Execute runs the diagnostic pass. Each entry walks the state machine
// unknown -> probed -> local-checked -> classified; there is no retry loop
// within a pass.
func (it *DiagnoseCommand) Execute(
	ctx context.Context,
	rc entities.RuntimeContext,
	opts DiagnoseOptions,
) (*entities.DiagnosticReport, error) {
	entries, err := rc.LoadManifest()
	if err != nil {
		return nil, err
	}

	targets := entries
	if opts.Submodule != "" {
		targets = nil
		for _, entry := range entries {
			if entry.Path == opts.Submodule {
				targets = append(targets, entry)
			}
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("submodule %q not found in manifest", opts.Submodule)
		}
	}

	report := &entities.DiagnosticReport{}
	report.Environment = append(report.Environment, it.env.CheckTools(ctx)...)
	report.Environment = append(report.Environment, it.env.CheckAuth(ctx, rc.Auth)...)

	results := probeAll(ctx, it.prober, targets, rc)

	// Network-layer checks run once per host that failed a probe, keeping
	// DNS/connectivity problems distinguishable from repository-specific
	// access failures.
	checkedHosts := make(map[string]bool)

	for i, entry := range targets {
		diagnosis := entities.EntryDiagnosis{Entry: entry, Stage: entities.StageUnknown}

		diagnosis.Probe = results[i]
		if diagnosis.Probe.Accessible {
			diagnosis.Stage = entities.StageProbedOK
		} else {
			diagnosis.Stage = entities.StageProbedFail
			host := entry.RemoteHost()
			if host != "" && !checkedHosts[host] {
				checkedHosts[host] = true
				report.Environment = append(report.Environment,
					it.env.CheckHost(ctx, host, entry.IsSSH())...)
			}
		}

		diagnosis.State = it.inspector.Inspect(entry, rc.WorkspaceRoot)
		diagnosis.Stage = entities.StageLocalChecked

		diagnosis.Suggestions = append(diagnosis.Suggestions,
			entities.RemediationsForProbe(diagnosis.Probe)...)
		diagnosis.Suggestions = append(diagnosis.Suggestions,
			entities.RemediationsForState(diagnosis.State)...)
		diagnosis.Stage = entities.StageClassified

		if diagnosis.HasIssue() {
			report.IssueCount++
		}

		logger.Debugf("classified %s: probe=%v state=%s",
			entry.Path, diagnosis.Probe.Accessible, diagnosis.State.Status)

		report.Entries = append(report.Entries, diagnosis)
	}

	return report, nil
}
