package controllers

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/submodsync/internal/domain/commands"
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// InitController handles the "init-accessible" subcommand.
type InitController struct {
	command commands.InitAccessible
}

// NewInitController creates a new InitController.
func NewInitController(command commands.InitAccessible) *InitController {
	return &InitController{command: command}
}

// GetBind returns the Cobra command metadata for the init controller.
func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init-accessible",
		Short: "Initialize the submodules you have access to",
		Long: `Probe every declared submodule remote, inspect the local checkout
state, and materialize or update only the safe, accessible subset.

Checkouts with uncommitted local changes are never touched unless
--force is given. Exits 0 on full success, 1 when anything was
skipped or failed.`,
	}
}

// Execute runs the selective initialization.
func (it *InitController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	rc, err := buildRuntimeContext(cmd)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	asJSON, _ := cmd.Flags().GetBool("json")

	report, err := it.command.Execute(ctx, rc, commands.InitOptions{
		Category: category,
		DryRun:   dryRun,
		Force:    force,
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
		renderInitReport(out, report)
	}

	if !report.Clean() {
		return errors.New("some submodules were skipped or failed to initialize")
	}
	return nil
}

// AddFlags adds the init-specific flags to the given Cobra command.
func (it *InitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "", "Initialize only submodules of this category")
	cmd.Flags().Bool("dry-run", false, "Show the plan without making changes")
	cmd.Flags().Bool("force", false, "Allow updates over checkouts with uncommitted changes")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
}
