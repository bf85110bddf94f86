package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every configuration variable so tests see only what they
// set themselves. t.Setenv registers the restore automatically.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvProjectsDir, EnvWorktreesDir, EnvBranchPrefix, EnvLegacyLayout, "XDG_CONFIG_HOME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoadDefaults verifies the built-in layout under the home directory
// when no file and no environment variables are present.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	// Point XDG at an empty dir so a developer's real config file cannot
	// leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "projects"), cfg.ProjectsDir)
	assert.Equal(t, filepath.Join(home, "projects", "worktrees"), cfg.WorktreesDir)
	assert.Empty(t, cfg.BranchPrefix)
	assert.False(t, cfg.LegacyLayout)
}

// TestLoadFromEnv verifies that environment variables take effect, including
// the non-empty-means-true rule for the legacy layout flag.
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvProjectsDir, "/srv/code")
	t.Setenv(EnvWorktreesDir, "/srv/wts")
	t.Setenv(EnvBranchPrefix, "alice")
	t.Setenv(EnvLegacyLayout, "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/code", cfg.ProjectsDir)
	assert.Equal(t, "/srv/wts", cfg.WorktreesDir)
	assert.Equal(t, "alice", cfg.BranchPrefix)
	assert.True(t, cfg.LegacyLayout)
}

// TestLoadFromFile verifies YAML config file loading via XDG_CONFIG_HOME.
func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "w")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "projects_dir: /data/projects\nworktrees_dir: /data/wts\nbranch_prefix: team/alice\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/projects", cfg.ProjectsDir)
	assert.Equal(t, "/data/wts", cfg.WorktreesDir)
	assert.Equal(t, "team/alice", cfg.BranchPrefix)
}

// TestEnvOverridesFile verifies precedence: environment beats the file.
func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "w")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("projects_dir: /from/file\n"), 0o644))

	t.Setenv(EnvProjectsDir, "/from/env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.ProjectsDir)
}

// TestLoadRejectsUnknownKeys verifies that typos in the config file surface
// as errors instead of being silently dropped.
func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := filepath.Join(xdg, "w")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("projekts_dir: /oops\n"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

// TestExpandTilde covers the home expansion helper directly.
func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/projects")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects"), got)

	got, err = expandTilde("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	// Paths not starting with ~ pass through untouched, including ones
	// that merely contain a tilde.
	got, err = expandTilde("/data/~cache")
	require.NoError(t, err)
	assert.Equal(t, "/data/~cache", got)
}
