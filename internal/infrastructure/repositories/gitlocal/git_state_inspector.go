package gitlocal

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rios0rios0/submodsync/internal/domain/entities"
	"github.com/rios0rios0/submodsync/internal/domain/repositories"
)

// GitStateInspector implements repositories.StateInspector over on-disk
// git checkouts. Filesystem only; no network.
type GitStateInspector struct{}

// NewGitStateInspector creates a new GitStateInspector.
func NewGitStateInspector() repositories.StateInspector {
	return &GitStateInspector{}
}

// Inspect classifies the checkout at workspaceRoot/entry.Path. An absent
// path always yields StatusAbsent; filesystem errors yield StatusUnreadable
// instead of being conflated with absence.
func (it *GitStateInspector) Inspect(
	entry entities.DependencyEntry,
	workspaceRoot string,
) entities.LocalState {
	state := entities.LocalState{Entry: entry}
	target := filepath.Join(workspaceRoot, entry.Path)

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		state.Status = entities.StatusAbsent
		return state
	case err != nil:
		state.Status = entities.StatusUnreadable
		state.Detail = err.Error()
		return state
	case !info.IsDir():
		state.Status = entities.StatusUnreadable
		state.Detail = "path exists but is not a directory"
		return state
	}

	children, err := os.ReadDir(target)
	if err != nil {
		state.Status = entities.StatusUnreadable
		state.Detail = err.Error()
		return state
	}
	if len(children) == 0 {
		state.Status = entities.StatusEmpty
		return state
	}

	repo, err := git.PlainOpen(target)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		// directory has content but no git metadata: nothing tracked
		state.Status = entities.StatusEmpty
		return state
	}
	if err != nil {
		state.Status = entities.StatusUnreadable
		state.Detail = err.Error()
		return state
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		state.Status = entities.StatusEmpty
		return state
	}
	if err != nil {
		state.Status = entities.StatusUnreadable
		state.Detail = err.Error()
		return state
	}

	state.CurrentRef = head.Hash().String()
	state.ExpectedRef = resolveExpectedRef(repo, entry.Branch)

	dirty, err := hasUncommittedChanges(repo)
	if err != nil {
		state.Status = entities.StatusUnreadable
		state.Detail = err.Error()
		return state
	}
	if dirty {
		// dirty wins over stale
		state.Status = entities.StatusDirty
		return state
	}

	if state.ExpectedRef != "" && state.ExpectedRef != state.CurrentRef {
		state.Status = entities.StatusStale
		return state
	}

	// No local evidence of staleness (including an unresolvable declared
	// branch on a shallow or offline clone) classifies as current.
	state.Status = entities.StatusCurrent
	return state
}

// resolveExpectedRef resolves the declared branch through the local
// remote-tracking refs to a concrete commit hash, or "" when the local
// metadata does not allow it.
func resolveExpectedRef(repo *git.Repository, branch string) string {
	names := []plumbing.ReferenceName{}
	if branch != "" {
		names = append(names, plumbing.NewRemoteReferenceName("origin", branch))
	} else {
		names = append(names, plumbing.NewRemoteReferenceName("origin", "HEAD"))
	}

	for _, name := range names {
		ref, err := repo.Reference(name, true)
		if err == nil && !ref.Hash().IsZero() {
			return ref.Hash().String()
		}
	}
	return ""
}

func hasUncommittedChanges(repo *git.Repository) (bool, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := worktree.Status()
	if err != nil {
		return false, err
	}
	return !status.IsClean(), nil
}
