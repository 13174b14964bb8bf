//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// SpyStateInspector implements repositories.StateInspector as a configurable spy.
type SpyStateInspector struct {
	// --- Inspect ---
	States map[string]entities.LocalState // path -> canned state

	// spy: paths that were inspected, in call order
	InspectedPaths []string
	// spy: workspace roots seen
	SeenRoots []string
}

var _ repositories.StateInspector = (*SpyStateInspector)(nil)

func (i *SpyStateInspector) Inspect(
	entry entities.DependencyEntry, workspaceRoot string,
) entities.LocalState {
	i.InspectedPaths = append(i.InspectedPaths, entry.Path)
	i.SeenRoots = append(i.SeenRoots, workspaceRoot)

	if state, ok := i.States[entry.Path]; ok {
		state.Entry = entry
		return state
	}
	return entities.LocalState{Entry: entry, Status: entities.StatusAbsent}
}
