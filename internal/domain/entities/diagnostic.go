package entities

import "strings"

// DiagStage is the per-entry state machine of a diagnostic pass:
// unknown -> probed-ok|probed-fail -> local-checked -> classified.
// Classified is terminal; there is no retry loop within a single pass.
type DiagStage string

const (
	StageUnknown      DiagStage = "unknown"
	StageProbedOK     DiagStage = "probed-ok"
	StageProbedFail   DiagStage = "probed-fail"
	StageLocalChecked DiagStage = "local-checked"
	StageClassified   DiagStage = "classified"
)

// EntryDiagnosis carries both the access and local-state verdicts for one
// entry, plus zero or more remediation suggestions.
type EntryDiagnosis struct {
	Entry       DependencyEntry `json:"entry"`
	Stage       DiagStage       `json:"stage"`
	Probe       ProbeResult     `json:"probe"`
	State       LocalState      `json:"state"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// HasIssue reports whether the entry needs operator attention.
func (d EntryDiagnosis) HasIssue() bool {
	if !d.Probe.Accessible {
		return true
	}
	switch d.State.Status {
	case StatusCurrent:
		return false
	case StatusStale:
		// stale is reconcilable by init-accessible, still worth surfacing
		return true
	default:
		return true
	}
}

// EnvCheck is one system-level check result (tool presence, auth
// configuration, network reachability).
type EnvCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// DiagnosticReport is the full output of one diagnose pass.
type DiagnosticReport struct {
	Environment []EnvCheck       `json:"environment"`
	Entries     []EntryDiagnosis `json:"entries"`
	IssueCount  int              `json:"issue_count"`
}

// remediationTable maps the probe failure taxonomy to operator guidance.
// This is data, not control flow: extending it never touches the diagnostic
// algorithm.
var remediationTable = map[FailureReason][]string{
	FailureAuthDenied: {
		"request collaborator access from the repository owner",
		"check membership of the required organization or group",
		"verify the configured credential (token or SSH key) is still valid",
	},
	FailureNotFound: {
		"check the repository URL spelling in the manifest",
		"the repository may be private: request access or supply a token",
	},
	FailureNetworkUnreachable: {
		"check network connectivity and proxy settings",
		"facility-internal hosts may require being on the facility network or VPN",
	},
	FailureTimeout: {
		"the remote host did not answer in time: retry later",
		"consider raising the probe timeout in the configuration",
	},
	FailureUnknown: {
		"inspect the raw transport message in the report detail",
	},
}

// stateRemediationTable maps local-state problems to operator guidance.
var stateRemediationTable = map[LocalStatus][]string{
	StatusDirty: {
		"commit or stash the local changes, then re-run init-accessible",
		"use --force only if the local modifications are disposable",
	},
	StatusUnreadable: {
		"check filesystem permissions on the checkout directory",
	},
	StatusEmpty: {
		"run init-accessible to materialize the checkout",
	},
	StatusAbsent: {
		"run init-accessible to materialize the checkout",
	},
	StatusStale: {
		"run init-accessible to update the checkout to the declared ref",
	},
}

// RemediationsForProbe returns the suggestions for a probe failure, layered
// with host-family hints: ssh URLs point at key setup, facility GitLab hosts
// point at network access.
func RemediationsForProbe(result ProbeResult) []string {
	if result.Accessible {
		return nil
	}

	suggestions := append([]string{}, remediationTable[result.Reason]...)

	if result.Reason == FailureAuthDenied {
		if result.Entry.IsSSH() {
			suggestions = append(suggestions,
				"list loaded SSH keys with: ssh-add -l",
				"test SSH auth with: ssh -T git@"+result.Entry.RemoteHost(),
			)
		} else {
			suggestions = append(suggestions,
				"configure a credential helper: git config --global credential.helper store",
				"or pass a token with --token",
			)
		}
	}

	host := result.Entry.RemoteHost()
	if host != "" && host != "github.com" && !strings.HasSuffix(host, ".github.com") {
		if result.Reason == FailureNetworkUnreachable || result.Reason == FailureTimeout {
			suggestions = append(suggestions,
				"host "+host+" looks facility-internal: check VPN/network access",
			)
		}
	}

	return suggestions
}

// RemediationsForState returns the suggestions for a local-state problem.
func RemediationsForState(state LocalState) []string {
	return append([]string{}, stateRemediationTable[state.Status]...)
}
