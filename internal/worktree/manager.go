// Package worktree provides the Git integration layer for the w CLI.
//
// It wraps the git CLI (via os/exec) to create branches and worktrees,
// list them, and remove them. We shell out to `git` rather than using a Go
// Git library because worktree operations require full Git CLI
// compatibility, and go-git's worktree support is limited.
//
// All errors from git commands are wrapped in model.CLIError with
// ExitGitError so the CLI layer can produce correct process exit codes.
package worktree

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/w/internal/model"
)

// Info holds metadata about a single Git worktree entry as parsed from
// `git worktree list --porcelain` output.
//
// Example porcelain block:
//
//	worktree /path/to/feature-branch
//	HEAD abc123def456
//	branch refs/heads/feature-branch
type Info struct {
	// Path is the absolute filesystem path to the worktree directory.
	Path string

	// Branch is the full branch reference (e.g., "refs/heads/main").
	// Empty if the worktree is in a detached HEAD state.
	Branch string

	// HEAD is the commit SHA the worktree currently points to.
	HEAD string

	// IsBare indicates a bare repository entry.
	IsBare bool
}

// Manager provides Git operations by invoking the git CLI. Every git child
// process is traced at debug level through the attached logger.
type Manager struct {
	log *logrus.Logger
}

// NewManager creates a Manager that traces git invocations to logger.
func NewManager(logger *logrus.Logger) *Manager {
	return &Manager{log: logger}
}

// RepoRoot returns the top-level directory of the repository containing dir.
//
// Uses `git rev-parse --show-toplevel`, which works from both the main
// checkout and any worktree — it returns the root of whichever working tree
// contains dir. Failure is reported with ExitNotARepo since the overwhelming
// cause is running outside a repository.
func (m *Manager) RepoRoot(dir string) (string, error) {
	out, err := m.runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", model.WrapCLIError(model.ExitNotARepo, "not in a git repository", err)
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the short name of the branch checked out at dir,
// or "HEAD" when detached.
func (m *Manager) CurrentBranch(dir string) (string, error) {
	out, err := m.runGit(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// BranchExists reports whether a local branch with the given name exists.
// `git show-ref --verify` exits non-zero when the ref is absent; only the
// exit status matters here.
func (m *Manager) BranchExists(repoRoot, branch string) bool {
	_, err := m.runGit(repoRoot, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// RemoteBranchExists reports whether origin has a branch with the given
// name, using `git ls-remote --exit-code --heads origin <branch>`. A repo
// without an origin remote simply reports false.
func (m *Manager) RemoteBranchExists(repoRoot, branch string) bool {
	_, err := m.runGit(repoRoot, "ls-remote", "--exit-code", "--heads", "origin", branch)
	return err == nil
}

// EnsureBranch makes sure branch exists locally:
//
//  1. already present locally → nothing to do
//  2. present on origin → `git fetch origin <branch>:<branch>` creates a
//     local branch at the remote tip
//  3. otherwise → `git branch <branch> [base]` creates it locally, from
//     base when given, from HEAD otherwise
func (m *Manager) EnsureBranch(repoRoot, branch, base string) error {
	if m.BranchExists(repoRoot, branch) {
		return nil
	}

	if m.RemoteBranchExists(repoRoot, branch) {
		m.log.Debugf("branch %s exists on origin, fetching", branch)
		_, err := m.runGit(repoRoot, "fetch", "origin", branch+":"+branch)
		return err
	}

	args := []string{"branch", branch}
	if base != "" {
		args = append(args, base)
	}
	m.log.Debugf("creating local branch %s", branch)
	_, err := m.runGit(repoRoot, args...)
	return err
}

// FetchAllPrune runs `git fetch --all --prune`. Callers treat this as best
// effort: a repository with no remotes, or no network, should not block
// worktree creation.
func (m *Manager) FetchAllPrune(repoRoot string) error {
	_, err := m.runGit(repoRoot, "fetch", "--all", "--prune")
	return err
}

// Add creates a worktree at path checking out branch. The branch must
// already exist (see EnsureBranch).
func (m *Manager) Add(repoRoot, path, branch string) error {
	_, err := m.runGit(repoRoot, "worktree", "add", path, branch)
	return err
}

// Remove deletes the worktree at path. With force, --force is passed so
// git removes worktrees holding uncommitted or untracked changes.
func (m *Manager) Remove(repoRoot, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	_, err := m.runGit(repoRoot, args...)
	return err
}

// List returns all worktrees attached to the repository, parsed from
// `git worktree list --porcelain`.
func (m *Manager) List(repoRoot string) ([]Info, error) {
	out, err := m.runGit(repoRoot, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// MainWorktree returns the path of the main working directory — the first
// entry in the porcelain listing. When the listing fails (for example in a
// repository state git refuses to enumerate), it falls back to the repo
// root of dir itself.
func (m *Manager) MainWorktree(dir string) (string, error) {
	infos, err := m.List(dir)
	if err == nil && len(infos) > 0 {
		return infos[0].Path, nil
	}
	return m.RepoRoot(dir)
}

// runGit executes a git command in the given directory via `git -C`,
// which is handled by git itself and avoids touching the process's own
// working directory. On failure the stderr output is folded into the
// returned CLIError.
func (m *Manager) runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	m.log.Debugf("running: git %s", strings.Join(fullArgs, " "))

	// #nosec G204 — arguments are constructed internally, not from raw user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
		return "", model.WrapCLIError(model.ExitGitError, msg, err)
	}

	return stdout.String(), nil
}

// parsePorcelain parses `git worktree list --porcelain` output. Blocks are
// separated by blank lines; within a block each line is a space-separated
// key/value pair, with "bare" and "detached" appearing as bare markers.
func parsePorcelain(output string) []Info {
	var worktrees []Info

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	var current *Info
	for _, line := range lines {
		if line == "" {
			if current != nil {
				worktrees = append(worktrees, *current)
				current = nil
			}
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			current = &Info{Path: value}
		case "HEAD":
			if current != nil {
				current.HEAD = value
			}
		case "branch":
			if current != nil {
				current.Branch = value
			}
		case "bare":
			if current != nil {
				current.IsBare = true
			}
			// "detached" needs no handling: a detached HEAD simply has an
			// empty Branch field.
		}
	}

	if current != nil {
		worktrees = append(worktrees, *current)
	}

	return worktrees
}
