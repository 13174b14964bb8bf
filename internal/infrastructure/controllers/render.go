package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

const headerRule = "=================================================="

// writeJSON emits the machine-readable form of any report.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// renderAccessReport prints the human-readable access report, grouped by
// category then manifest order.
func renderAccessReport(w io.Writer, report *entities.AccessReport, fixPermissions bool) {
	fmt.Fprintln(w, "Submodule Access Report")
	fmt.Fprintln(w, headerRule)
	fmt.Fprintf(w, "Total submodules checked: %d\n", report.Totals.Checked)
	fmt.Fprintf(w, "Accessible: %d\n", report.Totals.Accessible)
	fmt.Fprintf(w, "Inaccessible: %d\n", report.Totals.Inaccessible)
	fmt.Fprintln(w)

	for _, group := range report.Groups {
		fmt.Fprintf(w, "%s:\n", strings.ToUpper(group.Category))
		for _, result := range group.Accessible {
			fmt.Fprintf(w, "  [ok]   %s (%dms)\n", result.Entry.Path, result.Latency.Milliseconds())
		}
		for _, result := range group.Inaccessible {
			fmt.Fprintf(w, "  [FAIL] %s (%s)\n", result.Entry.Path, result.Reason)
			if result.Detail != "" {
				fmt.Fprintf(w, "         %s\n", result.Detail)
			}
		}
		fmt.Fprintln(w)
	}

	if fixPermissions {
		renderAccessRemediations(w, report)
	}
}

// renderAccessRemediations prints the troubleshooting block for every
// inaccessible entry.
func renderAccessRemediations(w io.Writer, report *entities.AccessReport) {
	var failed []entities.ProbeResult
	for _, group := range report.Groups {
		failed = append(failed, group.Inaccessible...)
	}
	if len(failed) == 0 {
		return
	}

	fmt.Fprintln(w, "TROUBLESHOOTING SUGGESTIONS:")
	fmt.Fprintln(w, headerRule)
	for _, result := range failed {
		fmt.Fprintf(w, "\n%s:\n", result.Entry.Path)
		fmt.Fprintf(w, "  url: %s\n", result.Entry.URL)
		for _, suggestion := range entities.RemediationsForProbe(result) {
			fmt.Fprintf(w, "  - %s\n", suggestion)
		}
	}
}

// renderInitReport prints the human-readable initialization report.
func renderInitReport(w io.Writer, report *entities.InitReport) {
	fmt.Fprintln(w, "Submodule Initialization")
	fmt.Fprintln(w, headerRule)

	var done, skipped, failed, current int
	for _, outcome := range report.Outcomes {
		switch outcome.Action {
		case entities.ActionNone:
			current++
		case entities.ActionMaterialize, entities.ActionUpdate:
			if report.DryRun || outcome.Succeeded {
				done++
			} else {
				failed++
			}
		default:
			skipped++
		}
	}

	verb := "Initialized"
	if report.DryRun {
		verb = "Would initialize"
	}
	fmt.Fprintf(w, "Already up to date: %d\n", current)
	fmt.Fprintf(w, "%s: %d\n", verb, done)
	fmt.Fprintf(w, "Skipped: %d\n", skipped)
	if failed > 0 {
		fmt.Fprintf(w, "Failed: %d\n", failed)
	}
	fmt.Fprintln(w)

	for _, outcome := range report.Outcomes {
		switch {
		case outcome.Action == entities.ActionNone:
			fmt.Fprintf(w, "  [ok]   %s\n", outcome.Entry.Path)
		case outcome.Err != nil:
			fmt.Fprintf(w, "  [FAIL] %s: %s\n", outcome.Entry.Path, outcome.Error)
		case outcome.Action == entities.ActionMaterialize || outcome.Action == entities.ActionUpdate:
			fmt.Fprintf(w, "  [%s] %s\n", outcome.Action, outcome.Entry.Path)
		default:
			fmt.Fprintf(w, "  [skip] %s (%s)\n", outcome.Entry.Path, outcome.Action)
		}
	}

	if report.DryRun {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "DRY RUN - no changes made")
	}
}

// renderDiagnosticReport prints the human-readable diagnostic report.
func renderDiagnosticReport(w io.Writer, report *entities.DiagnosticReport, fixSuggestions bool) {
	fmt.Fprintln(w, "Submodule Diagnostics")
	fmt.Fprintln(w, headerRule)

	fmt.Fprintln(w, "SYSTEM CHECKS:")
	for _, check := range report.Environment {
		marker := "[ok]  "
		if !check.OK {
			marker = "[FAIL]"
		}
		fmt.Fprintf(w, "  %s %s", marker, check.Name)
		if check.Detail != "" {
			fmt.Fprintf(w, ": %s", check.Detail)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SUBMODULES:")
	for _, diagnosis := range report.Entries {
		fmt.Fprintf(w, "  %s\n", diagnosis.Entry.Path)
		if diagnosis.Probe.Accessible {
			fmt.Fprintln(w, "    remote: accessible")
		} else {
			fmt.Fprintf(w, "    remote: %s\n", diagnosis.Probe.Reason)
		}
		fmt.Fprintf(w, "    local:  %s\n", diagnosis.State.Status)

		if fixSuggestions && len(diagnosis.Suggestions) > 0 {
			for _, suggestion := range diagnosis.Suggestions {
				fmt.Fprintf(w, "      - %s\n", suggestion)
			}
		}
	}
	fmt.Fprintln(w)

	if report.IssueCount == 0 {
		fmt.Fprintln(w, "No issues found: all submodules appear to be working correctly")
	} else {
		fmt.Fprintf(w, "Found %d issue(s)\n", report.IssueCount)
	}
}
