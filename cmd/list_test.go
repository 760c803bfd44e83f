package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRepoWithCommit(t *testing.T, base, name string, when time.Time) string {
	t.Helper()

	path := filepath.Join(base, name)
	require.NoError(t, os.MkdirAll(path, 0o755))

	r, err := git.PlainInit(path, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	filePath := filepath.Join(path, "README.md")
	require.NoError(t, os.WriteFile(filePath, []byte("hello\n"), 0o644))

	_, err = wt.Add("README.md")
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  when,
	}
	_, err = wt.Commit("init", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestListCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()
	createRepoWithCommit(t, base, "alpha", time.Now().Add(-time.Hour))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "not-a-repo"), 0o755))

	out, err := execute(t, "list", "--base", base)
	require.NoError(t, err)

	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "not-a-repo")
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "1 hours ago")
}

func TestListCommand_EmptyBase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()

	out, err := execute(t, "list", "--base", base)
	require.NoError(t, err)
	assert.Contains(t, out, "no repositories found")
}

func TestListCommand_MissingBase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "list", "--base", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "git-local")
	assert.Contains(t, out, Version)
}
