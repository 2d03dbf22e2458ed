package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary directory with an initialized Git
// repository. Tests using it are skipped when git is not installed.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	runTestGit(t, dir, "init")
	return dir
}

// runTestGit runs a git command in dir and fails the test on a non-zero exit.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

func TestRepoRoot(t *testing.T) {
	repo := setupTestRepo(t)
	sub := filepath.Join(repo, "internal", "arith")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := RepoRoot(sub)
	require.NoError(t, err)
	assert.True(t, samePath(repo, root), "got %s, want %s", root, repo)
}

func TestRepoRoot_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	// A directory under the module's own testdata would be inside this
	// repository, so use a fresh temp dir.
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := RepoRoot(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git rev-parse --show-toplevel failed")
}

// TestResolve_RepoRootFallback verifies that a config at the repository root
// applies when running from a subdirectory without its own config.
func TestResolve_RepoRootFallback(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo, ".arith.yaml"), []byte("precision: 6\n"), 0o644))

	sub := filepath.Join(repo, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	cfg, err := Resolve("", sub)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Precision)

	// A config in the subdirectory itself takes precedence.
	require.NoError(t, os.WriteFile(filepath.Join(sub, ".arith.yml"), []byte("precision: 1\n"), 0o644))
	cfg, err = Resolve("", sub)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Precision)
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, samePath(dir, dir+string(filepath.Separator)))
	assert.False(t, samePath(dir, filepath.Join(dir, "other")))
}
