// Package model defines the domain types shared across the w CLI.
//
// The types here are intentionally small: a worktree reference is just a
// (name, branch, path) triple computed from configuration, and all durable
// worktree state belongs to Git itself. The one piece of machinery is
// CLIError, which carries a process exit code from wherever an operation
// fails up to the command dispatcher.
package model

import (
	"fmt"
	"strings"
)

// WorktreeRef ties a sanitized worktree name to the branch it checks out
// and the directory it resolves to. It is computed, never persisted —
// Git's own worktree metadata is the source of truth.
type WorktreeRef struct {
	// Name is the sanitized worktree name (directory basename).
	Name string

	// Branch is the full local branch name, including any configured prefix.
	Branch string

	// Path is the absolute target directory for the worktree.
	Path string
}

// SanitizeName normalizes a user-supplied worktree name: spaces become
// hyphens and leading/trailing slashes are stripped. Returns an error if
// nothing usable remains.
//
// The slash trim matters for names pasted from branch refs ("feature/x/"):
// interior slashes are kept so the branch keeps its hierarchy, but a
// leading or trailing slash would produce an empty path segment.
func SanitizeName(name string) (string, error) {
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.Trim(name, "/")
	if name == "" {
		return "", fmt.Errorf("invalid worktree name")
	}
	return name, nil
}

// BuildBranchName prepends the configured branch prefix, if any, to a
// sanitized worktree name. Trailing slashes on the prefix are ignored so
// both "user/" and "user" configure the same namespace.
func BuildBranchName(prefix, name string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// ExitCode defines the process exit codes emitted by the CLI. The shell
// wrapper and scripts key off these, so they are part of the interface.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitNotARepo indicates the command was run outside a Git repository.
	ExitNotARepo ExitCode = 2

	// ExitGitError indicates an invoked git command failed.
	ExitGitError ExitCode = 3

	// ExitWorktreeNotFound indicates the named worktree does not exist.
	ExitWorktreeNotFound ExitCode = 4
)

// CLIError is an error that carries an exit code. The CLI layer unwraps it
// in Execute to translate domain failures into process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
