//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// SpyRemoteProber implements repositories.RemoteProber as a configurable spy.
// Configure Results by path for the entries your test exercises, then inspect
// ProbedPaths to verify behavior. Safe for concurrent Probe calls.
type SpyRemoteProber struct {
	mu sync.Mutex

	// --- Probe ---
	Results map[string]entities.ProbeResult // path -> canned result

	// FailuresBeforeSuccess makes the first N probes of a path fail with
	// the configured result before returning an accessible one, for
	// exercising retry behavior.
	FailuresBeforeSuccess map[string]int

	// spy: paths that were probed, in call order
	ProbedPaths []string
	// spy: auth passed on each call
	SeenAuth []entities.RemoteAuth

	attempts map[string]int
}

var _ repositories.RemoteProber = (*SpyRemoteProber)(nil)

func (p *SpyRemoteProber) Probe(
	_ context.Context, entry entities.DependencyEntry, auth entities.RemoteAuth,
) entities.ProbeResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProbedPaths = append(p.ProbedPaths, entry.Path)
	p.SeenAuth = append(p.SeenAuth, auth)

	if p.attempts == nil {
		p.attempts = make(map[string]int)
	}
	p.attempts[entry.Path]++

	if remaining, ok := p.FailuresBeforeSuccess[entry.Path]; ok {
		if p.attempts[entry.Path] <= remaining {
			if result, found := p.Results[entry.Path]; found {
				result.Entry = entry
				return result
			}
			return entities.ProbeResult{
				Entry:  entry,
				Reason: entities.FailureTimeout,
				Detail: "stubbed transient failure",
			}
		}
		return entities.ProbeResult{Entry: entry, Accessible: true}
	}

	if result, ok := p.Results[entry.Path]; ok {
		result.Entry = entry
		return result
	}
	return entities.ProbeResult{Entry: entry, Accessible: true}
}

// Attempts reports how many times a path was probed.
func (p *SpyRemoteProber) Attempts(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts[path]
}
