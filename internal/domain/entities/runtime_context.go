package entities

import "time"

// RetryStrategy selects the backoff behavior for transient probe failures.
type RetryStrategy string

const (
	RetryNone        RetryStrategy = "none"
	RetryFixed       RetryStrategy = "fixed"
	RetryExponential RetryStrategy = "exponential"
)

// RetryConfig is consumed by the generic retry wrapper around the remote
// probe. It never leaks into the pure planning logic.
type RetryConfig struct {
	Strategy    RetryStrategy
	BaseDelay   time.Duration
	MaxAttempts int
}

// Delay returns the wait before the given retry attempt (1-based, after the
// first failure). Exponential doubles per attempt.
func (c RetryConfig) Delay(attempt int) time.Duration {
	switch c.Strategy {
	case RetryFixed:
		return c.BaseDelay
	case RetryExponential:
		delay := c.BaseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}
		return delay
	default:
		return 0
	}
}

// RuntimeContext is constructed once at process start from the config file
// and CLI flags, then passed into every component. No component reads
// ambient process-wide variables directly.
type RuntimeContext struct {
	ManifestPath  string
	WorkspaceRoot string
	Concurrency   int
	ProbeTimeout  time.Duration
	Auth          RemoteAuth
	Retry         RetryConfig
	CategoryRules []CategoryRule
}

// LoadManifest parses the configured manifest file.
func (c RuntimeContext) LoadManifest() ([]DependencyEntry, error) {
	return LoadManifestFile(c.ManifestPath, c.CategoryRules)
}
