// repo.go locates the Git repository root so that .arith.yaml at the top of
// a repository applies when arith runs from a subdirectory (for example a
// CI step with working-directory set to a package).
package config

import (
	"fmt"
	"os/exec"
	"strings"
)

// RepoRoot returns the top-level directory of the Git working tree that
// contains dir, using `git rev-parse --show-toplevel`. It works for both
// the main repository and linked worktrees.
func RepoRoot(dir string) (string, error) {
	output, err := runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// runGit executes a git command in dir and returns its stdout. On failure
// the error includes git's stderr for diagnostics.
func runGit(dir string, args ...string) (string, error) {
	// -C makes git change to dir itself instead of relying on the process
	// working directory.
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204: args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", fmt.Errorf("%s: %w", message, err)
	}
	return stdout.String(), nil
}
