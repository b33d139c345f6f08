package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pkgship/internal/config"
	pkgerrors "git.home.luguber.info/inful/pkgship/internal/errors"
	"git.home.luguber.info/inful/pkgship/internal/gitdiff"
)

func monorepoConfig() *config.Config {
	return &config.Config{
		Packages: []config.PackageConfig{
			{Name: "full", Manifest: "packaging/setup_full.py"},
			{Name: "core", Manifest: "packaging/setup_core.py"},
			{Name: "storage", Manifest: "packaging/setup_storage.py", ActivationPrefix: "storage/"},
		},
	}
}

// initRepo builds a small history: an initial commit, then a commit touching
// the given paths. Returns the repo dir and the head revision.
func initRepo(t *testing.T, paths ...string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	write := func(rel string) {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(rel), 0o644))
		_, err := wt.Add(rel)
		require.NoError(t, err)
	}
	commit := func(msg string) plumbing.Hash {
		h, err := wt.Commit(msg, &git.CommitOptions{
			AllowEmptyCommits: true,
			Author:            &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Now()},
		})
		require.NoError(t, err)
		return h
	}

	write("README.md")
	commit("initial")
	for _, p := range paths {
		write(p)
	}
	head := commit("trigger")
	return dir, head.String()
}

func TestResolvePlanSkipsInactiveConditionalPackage(t *testing.T) {
	dir, head := initRepo(t, "docs/readme.md")

	pl, err := resolvePlan(context.Background(), monorepoConfig(), dir, head)
	require.NoError(t, err)
	assert.Equal(t, []string{"full", "core"}, pl.Names())
}

func TestResolvePlanActivatesStorage(t *testing.T) {
	dir, head := initRepo(t, "storage/config.yaml", "README.md")

	pl, err := resolvePlan(context.Background(), monorepoConfig(), dir, head)
	require.NoError(t, err)
	assert.Equal(t, []string{"full", "core", "storage"}, pl.Names())
}

func TestResolvePlanEmptyCommit(t *testing.T) {
	dir, head := initRepo(t)

	pl, err := resolvePlan(context.Background(), monorepoConfig(), dir, head)
	require.NoError(t, err)
	assert.Equal(t, []string{"full", "core"}, pl.Names())
}

func TestResolvePlanUnknownRevisionIsFatal(t *testing.T) {
	dir, _ := initRepo(t)

	_, err := resolvePlan(context.Background(), monorepoConfig(), dir, "no-such-rev")
	require.Error(t, err)
	pe, ok := err.(*pkgerrors.PublishError)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.CategoryGit, pe.Category)
	assert.Equal(t, pkgerrors.SeverityFatal, pe.Severity)
}

func TestClassifyDetectErrorMapsHistoryUnavailable(t *testing.T) {
	err := classifyDetectError("abc123", &gitdiff.HistoryUnavailableError{Revision: "abc123"})
	pe, ok := err.(*pkgerrors.PublishError)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.CategoryGit, pe.Category)
	assert.Equal(t, pkgerrors.SeverityFatal, pe.Severity)
}
