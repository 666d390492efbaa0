package git_test

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/logstat/internal/git"
	"github.com/audi70r/logstat/internal/gitlog"
)

var base = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

// testRepo creates a repository with three commits one day apart
func testRepo(t *testing.T) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	w, err := repo.Worktree()
	require.NoError(t, err)

	steps := []struct {
		file, content, message string
	}{
		{"src/app.go", "package app\n", "Add app"},
		{"src/app.go", "package app\n\nfunc Run() {}\n", "Add Run"},
		{"README.md", "# demo\n", "Add readme"},
	}

	var hashes []string
	for i, step := range steps {
		path := filepath.Join(dir, step.file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(step.content), 0o644))

		_, err := w.Add(step.file)
		require.NoError(t, err)

		hash, err := w.Commit(step.message, &gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "Ada Lovelace",
				Email: "ada@example.com",
				When:  base.AddDate(0, 0, i),
			},
		})
		require.NoError(t, err)
		hashes = append(hashes, hash.String())
	}

	return dir, hashes
}

func TestOpen_DetectsParentRepository(t *testing.T) {
	t.Parallel()

	dir, hashes := testRepo(t)

	repo, err := git.Open(filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Path)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hashes[2][:7], head)
	assert.True(t, git.IsGitRepo(dir))
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := git.Open(t.TempDir())
	require.ErrorIs(t, err, git.ErrNotGitRepo)
	assert.False(t, git.IsGitRepo(t.TempDir()))
}

func TestHead_EmptyRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	repo, err := git.Open(dir)
	require.NoError(t, err)

	_, err = repo.Head()
	require.ErrorIs(t, err, git.ErrNoHead)

	count, err := repo.EstimateCommitCount(git.LogOptions{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEstimateCommitCount(t *testing.T) {
	t.Parallel()

	dir, _ := testRepo(t)
	repo, err := git.Open(dir)
	require.NoError(t, err)

	count, err := repo.EstimateCommitCount(git.LogOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = repo.EstimateCommitCount(git.LogOptions{Since: base.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLogArgs(t *testing.T) {
	t.Parallel()

	args := git.LogArgs(git.LogOptions{Since: base})
	assert.Equal(t, "log", args[0])
	assert.Contains(t, args, "--numstat")
	assert.Contains(t, args, "--date=default")
	assert.Contains(t, args, "--no-color")
	assert.Contains(t, args, "--since=2024-03-04T09:00:00Z")
	assert.NotContains(t, args, "--until=")
}

func TestLog_ParsesWithGitlog(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir, hashes := testRepo(t)
	repo, err := git.Open(dir)
	require.NoError(t, err)

	r, err := repo.Log(context.Background(), git.LogOptions{})
	require.NoError(t, err)

	commits, report, err := gitlog.New(gitlog.Options{}).ParseAll(context.Background(), r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Empty(t, report.Skipped)
	require.Len(t, commits, 3)

	// Newest first
	assert.Equal(t, hashes[2], commits[0].Hash)
	assert.Equal(t, "Add readme", commits[0].Message)
	assert.Equal(t, "Ada Lovelace <ada@example.com>", commits[0].Author)
	assert.True(t, base.AddDate(0, 0, 2).Equal(commits[0].Date))

	require.Len(t, commits[1].Files, 1)
	assert.Equal(t, "src/app.go", commits[1].Files[0].Path.After)
	assert.Equal(t, 2, commits[1].Files[0].Added())
}

func TestLog_CloseBeforeEOF(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir, _ := testRepo(t)
	repo, err := git.Open(dir)
	require.NoError(t, err)

	r, err := repo.Log(context.Background(), git.LogOptions{})
	require.NoError(t, err)

	_, err = io.ReadFull(r, make([]byte, 8))
	require.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestScanProgress_Percent(t *testing.T) {
	t.Parallel()

	assert.Zero(t, git.ScanProgress{CommitsParsed: 5}.Percent())
	assert.InDelta(t, 50.0, git.ScanProgress{CommitsParsed: 5, TotalEstimate: 10}.Percent(), 1e-9)
	assert.InDelta(t, 100.0, git.ScanProgress{CommitsParsed: 12, TotalEstimate: 10}.Percent(), 1e-9)
}
