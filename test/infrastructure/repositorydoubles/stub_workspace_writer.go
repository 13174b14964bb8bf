//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// SpyWorkspaceWriter implements repositories.WorkspaceWriter as a configurable spy.
type SpyWorkspaceWriter struct {
	// --- Materialize ---
	MaterializeErrs map[string]error // path -> error to return
	// spy: paths materialized, in call order
	MaterializedPaths []string

	// --- Update ---
	UpdateErrs map[string]error // path -> error to return
	// spy: paths updated, in call order
	UpdatedPaths []string
}

var _ repositories.WorkspaceWriter = (*SpyWorkspaceWriter)(nil)

func (w *SpyWorkspaceWriter) Materialize(
	_ context.Context, entry entities.DependencyEntry, _ string, _ entities.RemoteAuth,
) error {
	w.MaterializedPaths = append(w.MaterializedPaths, entry.Path)
	return w.MaterializeErrs[entry.Path]
}

func (w *SpyWorkspaceWriter) Update(
	_ context.Context, entry entities.DependencyEntry, _ string, _ entities.RemoteAuth,
) error {
	w.UpdatedPaths = append(w.UpdatedPaths, entry.Path)
	return w.UpdateErrs[entry.Path]
}

// SpyEnvironmentChecker implements repositories.EnvironmentChecker as a
// configurable spy.
type SpyEnvironmentChecker struct {
	// --- CheckTools ---
	ToolChecks []entities.EnvCheck

	// --- CheckAuth ---
	AuthChecks []entities.EnvCheck

	// --- CheckHost ---
	HostChecks map[string][]entities.EnvCheck // host -> checks
	// spy: hosts that were checked, in call order
	CheckedHosts []string
}

var _ repositories.EnvironmentChecker = (*SpyEnvironmentChecker)(nil)

func (c *SpyEnvironmentChecker) CheckTools(_ context.Context) []entities.EnvCheck {
	return c.ToolChecks
}

func (c *SpyEnvironmentChecker) CheckAuth(
	_ context.Context, _ entities.RemoteAuth,
) []entities.EnvCheck {
	return c.AuthChecks
}

func (c *SpyEnvironmentChecker) CheckHost(
	_ context.Context, host string, _ bool,
) []entities.EnvCheck {
	c.CheckedHosts = append(c.CheckedHosts, host)
	return c.HostChecks[host]
}
