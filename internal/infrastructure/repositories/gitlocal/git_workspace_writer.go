package gitlocal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/gofrs/flock"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

const (
	lockDirName = ".submodsync/locks"
	dirMode     = 0o755
)

// GitWorkspaceWriter implements repositories.WorkspaceWriter with go-git.
// Materialization clones into a temp directory in the target's parent and
// renames into place, so a failed attempt never leaves a half-checked-out
// directory the inspector would later misclassify.
type GitWorkspaceWriter struct{}

// NewGitWorkspaceWriter creates a new GitWorkspaceWriter.
func NewGitWorkspaceWriter() repositories.WorkspaceWriter {
	return &GitWorkspaceWriter{}
}

// Materialize creates a fresh checkout for the entry. The per-path advisory
// lock guards against two initializers racing on the same path.
func (it *GitWorkspaceWriter) Materialize(
	ctx context.Context,
	entry entities.DependencyEntry,
	workspaceRoot string,
	auth entities.RemoteAuth,
) error {
	release, err := acquirePathLock(workspaceRoot, entry.Path)
	if err != nil {
		return initError(entry, "materialize", err)
	}
	defer release()

	target := filepath.Join(workspaceRoot, entry.Path)
	parent := filepath.Dir(target)
	if mkErr := os.MkdirAll(parent, dirMode); mkErr != nil {
		return initError(entry, "materialize", mkErr)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(target)+".part-")
	if err != nil {
		return initError(entry, "materialize", err)
	}

	cloneOpts := &git.CloneOptions{
		URL:  entry.URL,
		Auth: writerAuth(entry, auth),
	}
	if entry.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(entry.Branch)
		cloneOpts.SingleBranch = true
	}

	logger.Debugf("Cloning %s into %s", entry.URL, entry.Path)
	if _, cloneErr := git.PlainCloneContext(ctx, staging, false, cloneOpts); cloneErr != nil {
		_ = os.RemoveAll(staging)
		return initError(entry, "materialize", cloneErr)
	}

	// The target may pre-exist as an empty directory; os.Remove only
	// succeeds on empty ones, so pre-existing content is never destroyed.
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		if rmErr := os.Remove(target); rmErr != nil {
			_ = os.RemoveAll(staging)
			return initError(entry, "materialize", fmt.Errorf("target not empty: %w", rmErr))
		}
	}

	if renameErr := os.Rename(staging, target); renameErr != nil {
		_ = os.RemoveAll(staging)
		return initError(entry, "materialize", renameErr)
	}
	return nil
}

// Update fetches the remote and checks out the declared ref. A failed fetch
// or checkout leaves the existing checkout on its previous commit.
func (it *GitWorkspaceWriter) Update(
	ctx context.Context,
	entry entities.DependencyEntry,
	workspaceRoot string,
	auth entities.RemoteAuth,
) error {
	release, err := acquirePathLock(workspaceRoot, entry.Path)
	if err != nil {
		return initError(entry, "update", err)
	}
	defer release()

	target := filepath.Join(workspaceRoot, entry.Path)
	repo, err := git.PlainOpen(target)
	if err != nil {
		return initError(entry, "update", err)
	}

	fetchErr := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Auth:       writerAuth(entry, auth),
	})
	if fetchErr != nil && !errors.Is(fetchErr, git.NoErrAlreadyUpToDate) {
		return initError(entry, "update", fetchErr)
	}

	hash := resolveExpectedRef(repo, entry.Branch)
	if hash == "" {
		return initError(entry, "update",
			fmt.Errorf("cannot resolve declared ref %q after fetch", entry.Branch))
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return initError(entry, "update", err)
	}

	checkoutOpts := &git.CheckoutOptions{
		Hash:  plumbing.NewHash(hash),
		Force: true, // planner only schedules updates over dirty trees under ForcePolicy
	}
	if checkoutErr := worktree.Checkout(checkoutOpts); checkoutErr != nil {
		return initError(entry, "update", checkoutErr)
	}
	return nil
}

// acquirePathLock takes the advisory lock for one entry path. The returned
// func releases it.
func acquirePathLock(workspaceRoot, path string) (func(), error) {
	lockDir := filepath.Join(workspaceRoot, lockDirName)
	if err := os.MkdirAll(lockDir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}

	name := strings.ReplaceAll(path, string(os.PathSeparator), "__") + ".lock"
	fl := flock.New(filepath.Join(lockDir, name))

	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for %q: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another initializer holds the lock for %q", path)
	}
	return func() { _ = fl.Unlock() }, nil
}

func writerAuth(entry entities.DependencyEntry, auth entities.RemoteAuth) transport.AuthMethod {
	if auth.Token == "" || !strings.HasPrefix(entry.URL, "http") {
		return nil
	}
	return &githttp.BasicAuth{Username: "token", Password: auth.Token}
}

func initError(entry entities.DependencyEntry, op string, err error) *entities.InitializationError {
	return &entities.InitializationError{Path: entry.Path, Op: op, Err: err}
}
