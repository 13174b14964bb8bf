package commands

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

const (
	defaultConcurrency = 6
	maxConcurrency     = 64
)

// probeAll runs the prober over all entries with a bounded worker pool.
// Each result lands in the slot indexed by the entry's manifest position,
// so the output order is manifest order regardless of completion order.
// Cancelling the context leaves already-completed results intact; entries
// never started are reported as timeouts.
func probeAll(
	ctx context.Context,
	prober repositories.RemoteProber,
	entries []entities.DependencyEntry,
	rc entities.RuntimeContext,
) []entities.ProbeResult {
	limit := rc.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	if limit > maxConcurrency {
		limit = maxConcurrency
	}

	results := make([]entities.ProbeResult, len(entries))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, entry := range entries {
		wg.Add(1)
		go func(slot int, entry entities.DependencyEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[slot] = probeWithRetry(ctx, prober, entry, rc)
		}(i, entry)
	}

	wg.Wait()
	return results
}

// probeWithRetry wraps a single probe with the configured retry policy.
// Only transient failures (timeout, network-unreachable) are retried; auth
// and not-found verdicts are final for the pass.
func probeWithRetry(
	ctx context.Context,
	prober repositories.RemoteProber,
	entry entities.DependencyEntry,
	rc entities.RuntimeContext,
) entities.ProbeResult {
	attempts := rc.Retry.MaxAttempts
	if attempts < 1 || rc.Retry.Strategy == entities.RetryNone {
		attempts = 1
	}

	var result entities.ProbeResult
	for attempt := 1; attempt <= attempts; attempt++ {
		result = probeOnce(ctx, prober, entry, rc)
		if result.Accessible || !transientFailure(result.Reason) {
			return result
		}
		if attempt == attempts || ctx.Err() != nil {
			break
		}

		select {
		case <-time.After(rc.Retry.Delay(attempt)):
		case <-ctx.Done():
			return result
		}
	}
	return result
}

func probeOnce(
	ctx context.Context,
	prober repositories.RemoteProber,
	entry entities.DependencyEntry,
	rc entities.RuntimeContext,
) entities.ProbeResult {
	probeCtx := ctx
	if rc.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, rc.ProbeTimeout)
		defer cancel()
	}
	return prober.Probe(probeCtx, entry, rc.Auth)
}

func transientFailure(reason entities.FailureReason) bool {
	return reason == entities.FailureTimeout || reason == entities.FailureNetworkUnreachable
}
