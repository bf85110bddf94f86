package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mmr-tortoise/w/internal/config"
	"github.com/mmr-tortoise/w/internal/model"
)

// runSwitch implements the default operation: resolve the named worktree,
// create branch and worktree on first use, then either run a command inside
// it or print its path for the shell wrapper.
func runSwitch(rawName string, command []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	settings, err := config.LoadRepoSettings(a.repoRoot)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load repo settings", err)
	}

	ref, err := resolveRef(a, settings, rawName)
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(ref.Path); os.IsNotExist(statErr) {
		if err := createWorktree(a, ref, settings); err != nil {
			return err
		}
	}

	if len(command) > 0 {
		return runInWorktree(ref.Path, command)
	}

	// The path on stdout is the whole success contract: the wrapper cds here.
	fmt.Println(ref.Path)
	return nil
}

// resolveRef computes the worktree reference for a raw user-supplied name:
// the sanitized name, the (possibly prefixed) branch it checks out, and the
// target directory. Pure path math — nothing is touched on disk beyond the
// resolver's legacy-layout probe.
func resolveRef(a *app, settings *config.RepoSettings, rawName string) (model.WorktreeRef, error) {
	name, err := model.SanitizeName(rawName)
	if err != nil {
		return model.WorktreeRef{}, model.WrapCLIError(model.ExitGeneralError, "invalid worktree name", err)
	}

	return model.WorktreeRef{
		Name:   name,
		Branch: model.BuildBranchName(settings.EffectivePrefix(a.cfg.BranchPrefix), name),
		Path:   a.res.Target(a.repoRoot, name),
	}, nil
}

// createWorktree brings the branch and worktree into existence:
// fetch (best effort), ensure the branch, add the worktree, run hooks.
func createWorktree(a *app, ref model.WorktreeRef, settings *config.RepoSettings) error {
	announcef("Creating worktree: %s (branch: %s)", ref.Path, ref.Branch)

	if err := os.MkdirAll(filepath.Dir(ref.Path), 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create worktree base directory", err)
	}

	// Refresh remote refs so EnsureBranch sees a current picture of origin.
	// A repo without remotes (or without network) must still work.
	if err := a.wm.FetchAllPrune(a.repoRoot); err != nil {
		logger.Debugf("fetch --all --prune failed (continuing): %v", err)
	}

	if err := a.wm.EnsureBranch(a.repoRoot, ref.Branch, settings.Base); err != nil {
		return err
	}

	if err := a.wm.Add(a.repoRoot, ref.Path, ref.Branch); err != nil {
		return err
	}

	return runPostCreateHooks(ref.Path, settings.PostCreate)
}

// runPostCreateHooks runs each configured hook inside the new worktree.
// Hook output goes to stderr so the path contract on stdout holds. A failed
// hook aborts the remaining ones: the worktree exists, but the failure is
// surfaced rather than swallowed.
func runPostCreateHooks(dir string, hooks []string) error {
	for _, hook := range hooks {
		announcef("Running post-create hook: %s", hook)

		cmd := exec.Command("sh", "-c", hook)
		cmd.Dir = dir
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		cmd.Stdin = os.Stdin
		if err := cmd.Run(); err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("post-create hook failed: %s", hook), err)
		}
	}
	return nil
}

// runInWorktree executes command inside the worktree directory with
// inherited stdio, propagating the child's exit code. A single argument is
// passed to the shell, so `w feature-x 'make && make test'` works; multiple
// arguments are executed directly.
func runInWorktree(dir string, command []string) error {
	var cmd *exec.Cmd
	if len(command) == 1 {
		cmd = exec.Command("sh", "-c", command[0])
	} else {
		// #nosec G204 — running the user's own command is the feature
		cmd = exec.Command(command[0], command[1:]...)
	}

	// The child gets the worktree as its working directory; w's own cwd is
	// untouched, same reasoning as `git -C` in the worktree layer.
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitError{code: exitErr.ExitCode()}
	}
	return model.WrapCLIError(model.ExitGeneralError,
		fmt.Sprintf("failed to run command in %s", dir), err)
}

// announcef prints a progress message to stderr, colorized only when
// stderr is a terminal. stdout stays untouched.
func announcef(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = color.New(color.FgGreen).Sprint(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
