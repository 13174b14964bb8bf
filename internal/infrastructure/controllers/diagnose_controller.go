package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/submodsync/internal/domain/commands"
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// DiagnoseController handles the "diagnose" subcommand.
type DiagnoseController struct {
	command commands.Diagnose
}

// NewDiagnoseController creates a new DiagnoseController.
func NewDiagnoseController(command commands.Diagnose) *DiagnoseController {
	return &DiagnoseController{command: command}
}

// GetBind returns the Cobra command metadata for the diagnose controller.
func (it *DiagnoseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "diagnose",
		Short: "Diagnose submodule access and checkout issues",
		Long: `Run remote probes and local checkout inspection across the manifest,
plus system-level checks (git installation, credential configuration,
DNS and connectivity for failing hosts), and print remediation
suggestions per detected problem.

Reporting issues is the tool working as intended, so the exit code is
0 unless a usage error occurred.`,
	}
}

// Execute runs the diagnostic pass.
func (it *DiagnoseController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	rc, err := buildRuntimeContext(cmd)
	if err != nil {
		return err
	}

	submodule, _ := cmd.Flags().GetString("submodule")
	verbose, _ := cmd.Flags().GetBool("verbose")
	fixSuggestions, _ := cmd.Flags().GetBool("fix-suggestions")
	asJSON, _ := cmd.Flags().GetBool("json")

	report, err := it.command.Execute(ctx, rc, commands.DiagnoseOptions{
		Submodule: submodule,
		Verbose:   verbose,
	})
	if err != nil {
		// usage errors (bad flag values, unknown submodule) are the only
		// nonzero exits for diagnose
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, report)
	}

	renderDiagnosticReport(out, report, fixSuggestions || verbose)
	return nil
}

// AddFlags adds the diagnose-specific flags to the given Cobra command.
func (it *DiagnoseController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("submodule", "", "Diagnose only this manifest path")
	cmd.Flags().Bool("fix-suggestions", false, "Show detailed fix suggestions for all issues")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
}
