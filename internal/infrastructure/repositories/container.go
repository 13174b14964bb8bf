package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/submodsync/internal/infrastructure/repositories/gitlocal"
	"github.com/rios0rios0/submodsync/internal/infrastructure/repositories/gitremote"
	"github.com/rios0rios0/submodsync/internal/infrastructure/repositories/syscheck"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(gitremote.NewGitRemoteProber); err != nil {
		return err
	}
	if err := container.Provide(gitlocal.NewGitStateInspector); err != nil {
		return err
	}
	if err := container.Provide(gitlocal.NewGitWorkspaceWriter); err != nil {
		return err
	}
	if err := container.Provide(syscheck.NewSystemEnvironmentChecker); err != nil {
		return err
	}

	return nil
}
