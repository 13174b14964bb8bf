package repositories

import (
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// StateInspector classifies the on-disk checkout of one entry. It touches
// only the filesystem, never the network, and never returns an error: an
// absent path yields StatusAbsent and filesystem failures yield
// StatusUnreadable with the cause in Detail.
type StateInspector interface {
	Inspect(entry entities.DependencyEntry, workspaceRoot string) entities.LocalState
}
