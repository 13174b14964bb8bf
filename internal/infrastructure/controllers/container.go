package controllers

import (
	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewCheckAccessController); err != nil {
		return err
	}
	if err := container.Provide(NewInitController); err != nil {
		return err
	}
	if err := container.Provide(NewDiagnoseController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppContext.
func NewControllers(
	checkAccessController *CheckAccessController,
	initController *InitController,
	diagnoseController *DiagnoseController,
) *[]entities.Controller {
	return &[]entities.Controller{
		checkAccessController,
		initController,
		diagnoseController,
	}
}
