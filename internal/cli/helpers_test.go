package cli

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/w/internal/config"
	"github.com/mmr-tortoise/w/internal/resolve"
	"github.com/mmr-tortoise/w/internal/worktree"
)

// newTestApp builds an app over an explicit configuration and repository,
// bypassing newApp's environment and cwd lookups. The manager's logger is
// silenced to keep test output readable.
func newTestApp(t *testing.T, cfg *config.Config, repoRoot string) *app {
	t.Helper()

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	res := resolve.New(cfg)
	return &app{
		cfg:      cfg,
		res:      res,
		wm:       worktree.NewManager(silent),
		repoRoot: repoRoot,
		baseDir:  res.BaseDir(repoRoot),
	}
}

// setupTestRepo creates a temporary Git repository with one commit, with
// repo-local user config so `git commit` works without a global one.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo\n"), 0o644)
	require.NoError(t, err, "failed to create initial file")

	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in dir, failing the test on non-zero exit.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}
