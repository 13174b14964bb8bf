package repositories

import (
	"context"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// WorkspaceWriter performs the filesystem mutations of the initializer.
// Each entry owns a disjoint subdirectory of the workspace root, and every
// operation is atomic for its entry: on failure the target directory is left
// in its pre-attempt state, never half-checked-out.
type WorkspaceWriter interface {
	// Materialize creates a fresh checkout for an absent or empty entry.
	Materialize(ctx context.Context, entry entities.DependencyEntry, workspaceRoot string, auth entities.RemoteAuth) error

	// Update moves an existing checkout to the entry's declared ref.
	Update(ctx context.Context, entry entities.DependencyEntry, workspaceRoot string, auth entities.RemoteAuth) error
}

// EnvironmentChecker runs the system-level checks of the diagnostic engine,
// separate from repository-specific probing.
type EnvironmentChecker interface {
	// CheckTools verifies required external tool presence and version.
	CheckTools(ctx context.Context) []entities.EnvCheck

	// CheckAuth verifies whether any credential mechanism is configured.
	CheckAuth(ctx context.Context, auth entities.RemoteAuth) []entities.EnvCheck

	// CheckHost verifies DNS resolution and basic connectivity for one
	// remote host, distinguishing network-layer failures from
	// repository-specific access failures.
	CheckHost(ctx context.Context, host string, ssh bool) []entities.EnvCheck
}
