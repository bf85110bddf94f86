package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSanitizeName covers the normalization rules: spaces become hyphens,
// leading/trailing slashes are stripped, interior slashes survive.
func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"feature-x", "feature-x"},
		{"my feature", "my-feature"},
		{"/feature/", "feature"},
		{"feature/sub", "feature/sub"},
		{"  spaced  out  ", "--spaced--out--"},
	}

	for _, tc := range cases {
		got, err := SanitizeName(tc.in)
		require.NoError(t, err, "SanitizeName(%q)", tc.in)
		assert.Equal(t, tc.want, got, "SanitizeName(%q)", tc.in)
	}
}

// TestSanitizeNameEmpty verifies that names which normalize to nothing are
// rejected rather than producing an empty path segment.
func TestSanitizeNameEmpty(t *testing.T) {
	for _, in := range []string{"", "/", "///"} {
		_, err := SanitizeName(in)
		assert.Error(t, err, "SanitizeName(%q) should fail", in)
	}
}

// TestBuildBranchName verifies prefix joining, including trailing-slash
// normalization on the prefix.
func TestBuildBranchName(t *testing.T) {
	assert.Equal(t, "feature-x", BuildBranchName("", "feature-x"))
	assert.Equal(t, "alice/feature-x", BuildBranchName("alice", "feature-x"))
	assert.Equal(t, "alice/feature-x", BuildBranchName("alice/", "feature-x"))
	assert.Equal(t, "team/alice/feature-x", BuildBranchName("team/alice", "feature-x"))
}

// TestCLIErrorUnwrap verifies the Go 1.13 error-wrapping contract so that
// errors.Is sees through CLIError to the underlying cause.
func TestCLIErrorUnwrap(t *testing.T) {
	underlying := errors.New("boom")
	err := WrapCLIError(ExitGitError, "git worktree add failed", underlying)

	assert.True(t, errors.Is(err, underlying))
	assert.Equal(t, ExitGitError, err.Code)
	assert.Contains(t, err.Error(), "git worktree add failed")
	assert.Contains(t, err.Error(), "boom")
}

// TestCLIErrorWithoutCause verifies the message-only form.
func TestCLIErrorWithoutCause(t *testing.T) {
	err := NewCLIError(ExitWorktreeNotFound, "worktree not found: feature-x")
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "worktree not found: feature-x", err.Error())
}
