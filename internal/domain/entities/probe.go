package entities

import "time"

// FailureReason is the closed taxonomy of probe failures. Unrecognized
// transport errors map to FailureUnknown with the raw message preserved in
// ProbeResult.Detail for diagnostics, never for programmatic branching.
type FailureReason string

const (
	FailureNetworkUnreachable FailureReason = "network-unreachable"
	FailureAuthDenied         FailureReason = "auth-denied"
	FailureNotFound           FailureReason = "not-found"
	FailureTimeout            FailureReason = "timeout"
	FailureUnknown            FailureReason = "unknown"
)

// ProbeResult is the outcome of one content-free reachability check against
// a remote. Created fresh each probe pass and never mutated afterwards.
type ProbeResult struct {
	Entry      DependencyEntry `json:"entry"`
	Accessible bool            `json:"accessible"`
	Reason     FailureReason   `json:"reason,omitempty"`
	Detail     string          `json:"detail,omitempty"`
	Latency    time.Duration   `json:"latency_ms,omitempty"`
}

// RemoteAuth carries the optional credentials used by probes and checkouts.
type RemoteAuth struct {
	Token string
}

// Supplied reports whether any credential was actually configured. The
// auth-denied vs not-found classification depends on it.
func (a RemoteAuth) Supplied() bool {
	return a.Token != ""
}
