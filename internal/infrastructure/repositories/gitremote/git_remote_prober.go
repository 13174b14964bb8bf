package gitremote

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// GitRemoteProber implements repositories.RemoteProber with a lightweight
// remote listing (the transport-level equivalent of `git ls-remote`). No
// repository content is transferred.
type GitRemoteProber struct{}

// NewGitRemoteProber creates a new GitRemoteProber.
func NewGitRemoteProber() repositories.RemoteProber {
	return &GitRemoteProber{}
}

// Probe lists the remote's advertised references. The context deadline is
// the probe timeout; on expiry the result is classified as a timeout rather
// than surfaced as an error.
func (it *GitRemoteProber) Probe(
	ctx context.Context,
	entry entities.DependencyEntry,
	auth entities.RemoteAuth,
) entities.ProbeResult {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{entry.URL},
	})

	listOpts := &git.ListOptions{}
	if method := basicAuth(entry, auth); method != nil {
		listOpts.Auth = method
	}

	start := time.Now()
	_, err := remote.ListContext(ctx, listOpts)
	latency := time.Since(start)

	result := entities.ProbeResult{Entry: entry, Latency: latency}

	// An empty remote is still reachable and readable.
	if err == nil || err == transport.ErrEmptyRemoteRepository {
		result.Accessible = true
		return result
	}

	result.Reason, result.Detail = ClassifyProbeError(err, auth.Supplied())
	return result
}

// basicAuth builds HTTP basic auth from a configured token. SSH transports
// fall through to go-git's defaults (agent, default key files).
func basicAuth(entry entities.DependencyEntry, auth entities.RemoteAuth) transport.AuthMethod {
	if auth.Token == "" || !strings.HasPrefix(entry.URL, "http") {
		return nil
	}
	return &githttp.BasicAuth{Username: "token", Password: auth.Token}
}
