package repositories

import (
	"context"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// RemoteProber performs a content-free reachability and read-access check
// against one remote. It must respect the context deadline: a timeout is
// reported as a classified ProbeResult, never as a panic or an indefinite
// block. Probes are independent across entries and safe to run in parallel.
type RemoteProber interface {
	Probe(ctx context.Context, entry entities.DependencyEntry, auth entities.RemoteAuth) entities.ProbeResult
}
