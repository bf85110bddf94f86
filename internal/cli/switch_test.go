package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/w/internal/config"
	"github.com/mmr-tortoise/w/internal/model"
)

// TestResolveRef verifies the name → (name, branch, path) computation,
// including branch prefixing from the global configuration.
func TestResolveRef(t *testing.T) {
	cfg := &config.Config{
		ProjectsDir:  "/home/u/projects",
		WorktreesDir: "/home/u/wts",
		BranchPrefix: "alice",
	}
	a := newTestApp(t, cfg, "/home/u/projects/myrepo")

	ref, err := resolveRef(a, &config.RepoSettings{}, "my feature")
	require.NoError(t, err)

	assert.Equal(t, "my-feature", ref.Name)
	assert.Equal(t, "alice/my-feature", ref.Branch)
	assert.Equal(t, filepath.Join("/home/u/wts", "myrepo", "my-feature"), ref.Path)
}

// TestResolveRefRepoPrefixOverride verifies that a per-repo branch prefix
// wins over the global one, affecting the branch but never the path.
func TestResolveRefRepoPrefixOverride(t *testing.T) {
	cfg := &config.Config{
		ProjectsDir:  "/home/u/projects",
		WorktreesDir: "/home/u/wts",
		BranchPrefix: "alice",
	}
	a := newTestApp(t, cfg, "/home/u/projects/myrepo")

	ref, err := resolveRef(a, &config.RepoSettings{BranchPrefix: "team/bob"}, "feature-x")
	require.NoError(t, err)

	assert.Equal(t, "team/bob/feature-x", ref.Branch)
	assert.Equal(t, filepath.Join("/home/u/wts", "myrepo", "feature-x"), ref.Path)
}

// TestResolveRefInvalidName verifies that a name which sanitizes to nothing
// is rejected with a general error code.
func TestResolveRefInvalidName(t *testing.T) {
	cfg := &config.Config{ProjectsDir: "/p", WorktreesDir: "/w"}
	a := newTestApp(t, cfg, "/p/repo")

	_, err := resolveRef(a, &config.RepoSettings{}, "///")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}
