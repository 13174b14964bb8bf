package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/submodsync/internal/domain/commands"
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// CheckAccessController handles the "check-access" subcommand.
type CheckAccessController struct {
	command commands.CheckAccess
}

// NewCheckAccessController creates a new CheckAccessController.
func NewCheckAccessController(command commands.CheckAccess) *CheckAccessController {
	return &CheckAccessController{command: command}
}

// GetBind returns the Cobra command metadata for the check-access controller.
func (it *CheckAccessController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check-access",
		Short: "Check remote access to all declared submodules",
		Long: `Probe every submodule remote declared in the manifest with a
content-free listing operation and report which repositories are
accessible, grouped by category.

Exits 0 when every probed submodule is accessible, 1 otherwise.`,
	}
}

// Execute runs the access check.
func (it *CheckAccessController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	rc, err := buildRuntimeContext(cmd)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	asJSON, _ := cmd.Flags().GetBool("json")
	fixPermissions, _ := cmd.Flags().GetBool("fix-permissions")

	report, err := it.command.Execute(ctx, rc, commands.CheckAccessOptions{
		Category: category,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		if encodeErr := writeJSON(out, report); encodeErr != nil {
			return encodeErr
		}
	} else {
		renderAccessReport(out, report, fixPermissions)
	}

	if !report.AllAccessible() {
		return fmt.Errorf(
			"%d of %d submodules are not accessible",
			report.Totals.Inaccessible, report.Totals.Checked,
		)
	}
	return nil
}

// AddFlags adds the check-access specific flags to the given Cobra command.
func (it *CheckAccessController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "", "Check only submodules of this category")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
	cmd.Flags().Bool("fix-permissions", false, "Show troubleshooting suggestions for access issues")
}
