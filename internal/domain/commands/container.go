package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewCheckAccessCommand); err != nil {
		return err
	}
	if err := container.Provide(NewInitCommand); err != nil {
		return err
	}
	if err := container.Provide(NewDiagnoseCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *CheckAccessCommand) CheckAccess {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *InitCommand) InitAccessible {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DiagnoseCommand) Diagnose {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
