package gitremote

import (
	"context"
	"errors"
	"net"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// ClassifyProbeError maps a transport error into the closed failure
// taxonomy. The raw message is preserved for diagnostics only.
//
// The auth-denied vs not-found boundary is ambiguous on purpose on most
// hosts (private repositories answer 404 to hide their existence). The
// conservative default: a repository-not-found answer is not-found unless
// credentials were actually supplied, in which case it is treated as
// auth-denied. Explicit authentication demands are always auth-denied.
func ClassifyProbeError(err error, authSupplied bool) (entities.FailureReason, string) {
	detail := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return entities.FailureTimeout, detail

	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		return entities.FailureAuthDenied, detail

	case errors.Is(err, transport.ErrRepositoryNotFound):
		if authSupplied {
			return entities.FailureAuthDenied, detail
		}
		return entities.FailureNotFound, detail
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entities.FailureTimeout, detail
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return entities.FailureNetworkUnreachable, detail
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return entities.FailureNetworkUnreachable, detail
	}

	return entities.FailureUnknown, detail
}
