package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package main\n"), 0o644))
	run("add", ".")
	run("commit", "-q", "-m", "init")
	return dir
}

func TestOpenAndHeadCommit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := initRepo(t)
	repo, err := Open(dir)
	require.NoError(t, err)

	sha, err := repo.HeadCommit()
	require.NoError(t, err)
	assert.Len(t, sha, 40)
}

func TestChangedSinceCommitDetectsNewFile(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := initRepo(t)
	repo, err := Open(dir)
	require.NoError(t, err)
	sha, err := repo.HeadCommit()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package main\n"), 0o644))

	changed, err := repo.ChangedSinceCommit(sha)
	require.NoError(t, err)
	assert.Contains(t, changed, "b.go")
}

func TestIsRepoFalseOutsideGit(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir))
}
