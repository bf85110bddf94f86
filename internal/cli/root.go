// Package cli implements the w command surface.
//
// Unlike subcommand-style tools, w keeps a flat flag interface so the
// shell wrapper stays trivial: a positional worktree name (optionally
// followed by a command to run inside it) plus mode flags --list, --rm,
// --clean, --home, --where and --shell-init. Each mode lives in its own
// file within this package; this file holds the root command, dispatch,
// and error-to-exit-code translation.
//
// Output contract: stdout carries only data the wrapper may consume (a
// directory path, listings, resolved locations). Progress and errors go to
// stderr.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/w/internal/config"
	"github.com/mmr-tortoise/w/internal/model"
	"github.com/mmr-tortoise/w/internal/resolve"
	"github.com/mmr-tortoise/w/internal/worktree"
)

// Build-time identification, injected from the main package via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// logger is the package-wide logger. It writes to stderr at WarnLevel and
// is raised to DebugLevel by --verbose in the root PersistentPreRun.
var logger = newLogger()

// jsonOutput mirrors the --json flag. It lives at package level because
// Execute needs it after cobra has returned: error formatting honors the
// flag too, not just success output.
var jsonOutput bool

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// rootFlags holds every mode flag of the root command.
type rootFlags struct {
	where     bool
	list      bool
	all       bool
	rm        string
	force     bool
	clean     bool
	home      bool
	shellInit string
	verbose   bool
}

// NewRootCommand creates the root cobra command carrying the whole flag
// surface of the tool.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "w [flags] [name] [command...]",
		Short: "Git worktree manager",
		Long: `w resolves a branch name to a worktree directory, creating the branch and
worktree on first use, and prints the directory so a shell wrapper can cd
into it (see --shell-init).

Examples:
  w feature-x             Create/switch to worktree 'feature-x'
  w feature-x make test   Run a command inside the worktree
  w --list                List worktrees for the current repo
  w --list --all          List all worktrees
  w --rm feature-x        Remove worktree 'feature-x'
  w --clean               Remove all worktrees for the current repo
  w --home                Print the main repository path
  w --where               Print resolved repo root and worktree base`,

		// Errors are formatted by Execute; usage spam on every failed git
		// call helps nobody.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		Args: cobra.ArbitraryArgs,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, flags, args)
		},
	}

	// Everything after the first positional argument belongs to the command
	// run inside the worktree, not to w itself.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVar(&flags.where, "where", false, "Print resolved repo root and worktree base")
	cmd.Flags().BoolVar(&flags.list, "list", false, "List worktrees")
	cmd.Flags().BoolVar(&flags.all, "all", false, "List worktrees of every repository (with --list)")
	cmd.Flags().StringVar(&flags.rm, "rm", "", "Remove the named worktree")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Force removal of a dirty worktree (with --rm)")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "Remove all worktrees for the current repo")
	cmd.Flags().BoolVar(&flags.home, "home", false, "Print the main repository path")
	cmd.Flags().StringVar(&flags.shellInit, "shell-init", "", "Print the shell wrapper function (bash, zsh)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format where applicable")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// dispatch routes the root invocation to the selected mode. Mode flags are
// mutually exclusive; when several are given, the first match below wins.
func dispatch(cmd *cobra.Command, flags *rootFlags, args []string) error {
	switch {
	case flags.shellInit != "":
		return runShellInit(flags.shellInit)
	case flags.where:
		return runWhere()
	case flags.list:
		return runList(flags.all, jsonOutput)
	case flags.rm != "":
		return runRemove(flags.rm, flags.force)
	case flags.clean:
		return runClean()
	case flags.home:
		return runHome()
	case len(args) > 0:
		return runSwitch(args[0], args[1:])
	default:
		_ = cmd.Help()
		return exitError{code: int(model.ExitGeneralError)}
	}
}

// app bundles the pieces every repository-bound mode needs: configuration,
// the path resolver, the git layer, and the resolved repo root/base dir.
type app struct {
	cfg      *config.Config
	res      *resolve.Resolver
	wm       *worktree.Manager
	repoRoot string
	baseDir  string
}

// newApp loads configuration and, when requireRepo is set, resolves the
// repository containing the current directory. Modes like --list --all
// operate on the worktree root alone and skip repo detection.
func newApp(requireRepo bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}

	a := &app{
		cfg: cfg,
		res: resolve.New(cfg),
		wm:  worktree.NewManager(logger),
	}

	if requireRepo {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
		}
		a.repoRoot, err = a.wm.RepoRoot(cwd)
		if err != nil {
			return nil, err
		}
		a.baseDir = a.res.BaseDir(a.repoRoot)
		logger.Debugf("repo root: %s, worktree base: %s", a.repoRoot, a.baseDir)
	}

	return a, nil
}

// exitError carries a bare exit code with no message of its own. It is used
// to propagate a child process's exit status and for the help-only exit.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and translates errors into process exit
// codes: exitError exits silently with its code, CLIError prints and exits
// with its code, anything else prints and exits 1.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var silent exitError
	if errors.As(err, &silent) {
		os.Exit(silent.code)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}

	printError(err.Error(), nil)
	os.Exit(int(model.ExitGeneralError))
}

// printError writes an error to stderr, as "Error: <msg>" text or as a
// JSON object when --json is set. stdout is never used for errors, even in
// JSON mode: the wrapper treats stdout as data.
func printError(message string, underlying error) {
	fmt.Fprintln(os.Stderr, formatError(message, underlying, jsonOutput))
}

// formatError renders an error in text or JSON form. The JSON shape is an
// "error" object with "message" and, when a cause exists, "detail".
func formatError(message string, underlying error, asJSON bool) string {
	if !asJSON {
		if underlying != nil {
			return fmt.Sprintf("Error: %s: %v", message, underlying)
		}
		return fmt.Sprintf("Error: %s", message)
	}

	errObj := map[string]any{"message": message}
	if underlying != nil {
		errObj["detail"] = underlying.Error()
	}
	data, _ := json.MarshalIndent(map[string]any{"error": errObj}, "", "  ")
	return string(data)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode JSON output", err)
	}
	fmt.Println(string(data))
	return nil
}
