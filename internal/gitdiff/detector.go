package gitdiff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/pkgship/internal/logfields"
	"git.home.luguber.info/inful/pkgship/internal/util/sets"
)

// Detector computes changed-path sets from a local repository.
type Detector struct {
	repoPath string
}

// NewDetector creates a detector for the repository at repoPath.
func NewDetector(repoPath string) *Detector {
	return &Detector{repoPath: repoPath}
}

// Detect returns the set of file paths touched by revision relative to its
// first parent. A root commit counts every file as changed. The result is
// duplicate-free and unordered; an empty set is valid (a no-op commit).
func (d *Detector) Detect(ctx context.Context, revision string) (sets.Set[string], error) {
	repo, err := git.PlainOpen(d.repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", d.repoPath, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, &RevisionError{Revision: revision, Err: err}
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, &RevisionError{Revision: revision, Err: err}
	}

	if err := d.checkDepth(repo, commit); err != nil {
		return nil, err
	}

	changes, err := d.diffFirstParent(ctx, commit)
	if err != nil {
		return nil, err
	}

	changed := sets.New[string]()
	for _, change := range changes {
		// A rename contributes both sides; either may be empty.
		if change.From.Name != "" {
			changed.Add(change.From.Name)
		}
		if change.To.Name != "" {
			changed.Add(change.To.Name)
		}
	}

	slog.Debug("Changed paths detected",
		logfields.Revision(commit.Hash.String()[:8]),
		logfields.ChangedPaths(changed.Len()))
	return changed, nil
}

// checkDepth rejects revisions whose parents were cut off by a shallow fetch.
func (d *Detector) checkDepth(repo *git.Repository, commit *object.Commit) error {
	shallows, err := repo.Storer.Shallow()
	if err != nil {
		return fmt.Errorf("failed to read shallow metadata: %w", err)
	}
	for _, sh := range shallows {
		if sh == commit.Hash {
			return &HistoryUnavailableError{
				Revision: commit.Hash.String(),
				Err:      fmt.Errorf("commit is a shallow graft point"),
			}
		}
	}
	return nil
}

// diffFirstParent diffs the commit tree against its first parent's tree.
// Merge commits are therefore treated as the push events CI reports them as:
// everything the merge brought onto the branch counts as changed.
func (d *Detector) diffFirstParent(ctx context.Context, commit *object.Commit) (object.Changes, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read commit tree: %w", err)
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				return nil, &HistoryUnavailableError{Revision: commit.Hash.String(), Err: err}
			}
			return nil, fmt.Errorf("failed to read parent commit: %w", err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				return nil, &HistoryUnavailableError{Revision: commit.Hash.String(), Err: err}
			}
			return nil, fmt.Errorf("failed to read parent tree: %w", err)
		}
	}

	changes, err := object.DiffTreeContext(ctx, parentTree, tree)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, &HistoryUnavailableError{Revision: commit.Hash.String(), Err: err}
		}
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}
	return changes, nil
}
