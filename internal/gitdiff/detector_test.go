package gitdiff

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, path)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

func (r *testRepo) commit(msg string, paths ...string) plumbing.Hash {
	return r.commitWithParents(msg, nil, paths...)
}

// commitWithParents commits the staged paths with an explicit parent list,
// which is how the tests below construct branch and merge topologies.
func (r *testRepo) commitWithParents(msg string, parents []plumbing.Hash, paths ...string) plumbing.Hash {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	for _, p := range paths {
		_, err := wt.Add(p)
		require.NoError(r.t, err)
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{
		AllowEmptyCommits: true,
		Parents:           parents,
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(r.t, err)
	return hash
}

func TestDetectSingleParentDiff(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	r.write("storage/config.yaml", "a: 1")
	r.commit("initial", "README.md", "storage/config.yaml")

	r.write("storage/config.yaml", "a: 2")
	r.write("docs/guide.md", "guide")
	head := r.commit("update", "storage/config.yaml", "docs/guide.md")

	changed, err := NewDetector(r.dir).Detect(context.Background(), head.String())
	require.NoError(t, err)

	assert.True(t, changed.Has("storage/config.yaml"))
	assert.True(t, changed.Has("docs/guide.md"))
	assert.False(t, changed.Has("README.md"))
	assert.Equal(t, 2, changed.Len())
}

func TestDetectRootCommitCountsEverything(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	r.write("core/lib.py", "pass")
	head := r.commit("initial", "README.md", "core/lib.py")

	changed, err := NewDetector(r.dir).Detect(context.Background(), head.String())
	require.NoError(t, err)

	assert.True(t, changed.Has("README.md"))
	assert.True(t, changed.Has("core/lib.py"))
}

func TestDetectEmptyCommit(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	r.commit("initial", "README.md")
	head := r.commit("empty")

	changed, err := NewDetector(r.dir).Detect(context.Background(), head.String())
	require.NoError(t, err)
	assert.Equal(t, 0, changed.Len())
}

func TestDetectUnknownRevision(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	r.commit("initial", "README.md")

	_, err := NewDetector(r.dir).Detect(context.Background(), "does-not-exist")
	var re *RevisionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "does-not-exist", re.Revision)
}

func TestDetectMergeCommitDiffsFirstParentOnly(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	base := r.commit("initial", "README.md")

	// Mainline advances with a docs change.
	r.write("docs/guide.md", "guide")
	mainTip := r.commit("main change", "docs/guide.md")

	// Feature branch forks from base and touches storage.
	r.write("storage/io.py", "io")
	featureTip := r.commitWithParents("feature change", []plumbing.Hash{base}, "storage/io.py")

	// Merging the feature into main: only what the merge brought onto the
	// branch relative to the first parent counts as changed.
	merge := r.commitWithParents("merge feature", []plumbing.Hash{mainTip, featureTip})

	changed, err := NewDetector(r.dir).Detect(context.Background(), merge.String())
	require.NoError(t, err)
	assert.True(t, changed.Has("storage/io.py"))
	assert.False(t, changed.Has("docs/guide.md"))
	assert.Equal(t, 1, changed.Len())
}

func TestDetectMissingParentObject(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	parent := r.commit("initial", "README.md")
	r.write("README.md", "hello again")
	head := r.commit("update", "README.md")

	// Drop the parent commit object, as a truncated fetch would leave it.
	objPath := filepath.Join(r.dir, ".git", "objects", parent.String()[:2], parent.String()[2:])
	require.NoError(t, os.Remove(objPath))

	_, err := NewDetector(r.dir).Detect(context.Background(), head.String())
	var he *HistoryUnavailableError
	require.True(t, errors.As(err, &he))
}

func TestDetectShallowHistory(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	r.commit("initial", "README.md")
	r.write("README.md", "hello again")
	head := r.commit("update", "README.md")

	// Mark HEAD as a shallow graft point, as a depth-1 fetch would.
	require.NoError(t, r.repo.Storer.SetShallow([]plumbing.Hash{head}))

	_, err := NewDetector(r.dir).Detect(context.Background(), head.String())
	var he *HistoryUnavailableError
	require.True(t, errors.As(err, &he))
}

func TestDetectResolvesHEAD(t *testing.T) {
	r := newTestRepo(t)
	r.write("README.md", "hello")
	r.commit("initial", "README.md")
	r.write("core/lib.py", "pass")
	r.commit("add core", "core/lib.py")

	changed, err := NewDetector(r.dir).Detect(context.Background(), "HEAD")
	require.NoError(t, err)
	assert.True(t, changed.Has("core/lib.py"))
	assert.Equal(t, 1, changed.Len())
}
