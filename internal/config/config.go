// Package config loads process configuration for the w CLI.
//
// Configuration is layered, lowest precedence first: built-in defaults, an
// optional YAML user config file, then the W_* environment variables. The
// result is immutable for the lifetime of the process.
//
// A second, per-repository layer lives in .worktrees.jsonc at the repo root
// (see repo.go). It can override branch naming and attach post-create hooks
// but never changes where worktrees live.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names. These form the tool's primary configuration
// surface and are part of the documented interface.
const (
	EnvProjectsDir  = "W_PROJECTS_DIR"
	EnvWorktreesDir = "W_WORKTREES_DIR"
	EnvBranchPrefix = "W_DEFAULT_BRANCH_PREFIX"
	EnvLegacyLayout = "W_SUPPORT_LEGACY_CORE_WTS"
)

// Config holds the resolved process configuration.
type Config struct {
	// ProjectsDir is the root under which repositories are expected to
	// live. Repositories inside it keep their relative layout under
	// WorktreesDir; repositories outside it fall back to their basename.
	ProjectsDir string `yaml:"projects_dir"`

	// WorktreesDir is the root under which worktree directories are created,
	// one subdirectory per repository.
	WorktreesDir string `yaml:"worktrees_dir"`

	// BranchPrefix, when non-empty, is prepended (slash-joined) to every
	// branch name this tool creates.
	BranchPrefix string `yaml:"branch_prefix"`

	// LegacyLayout enables recognition of the pre-v1 flat layout where
	// every worktree sat directly under WorktreesDir. Resolution and
	// removal prefer an existing flat-layout directory; creation always
	// uses the per-repo layout.
	LegacyLayout bool `yaml:"legacy_layout"`
}

// Load builds the configuration from defaults, the user config file and the
// environment, in that order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	path, err := userConfigPath()
	if err == nil {
		if loadErr := loadFile(path, cfg); loadErr != nil {
			return nil, loadErr
		}
	}

	applyEnv(cfg)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns the built-in configuration: everything under ~/projects.
func defaults() *Config {
	return &Config{
		ProjectsDir:  filepath.Join("~", "projects"),
		WorktreesDir: filepath.Join("~", "projects", "worktrees"),
	}
}

// userConfigPath returns the config file location, honoring XDG_CONFIG_HOME
// and falling back to ~/.config/w/config.yaml.
func userConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "w", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "w", "config.yaml"), nil
}

// loadFile merges the YAML config file at path into cfg. A missing file is
// not an error — the file is optional.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Strict decoding surfaces typos in config keys instead of silently
	// ignoring them.
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		// An empty config file decodes to io.EOF; treat it like no file.
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays the W_* environment variables onto cfg. Unset variables
// leave the existing value in place; any non-empty value enables
// LegacyLayout, matching shell-style truthiness.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProjectsDir); v != "" {
		cfg.ProjectsDir = v
	}
	if v := os.Getenv(EnvWorktreesDir); v != "" {
		cfg.WorktreesDir = v
	}
	if v := os.Getenv(EnvBranchPrefix); v != "" {
		cfg.BranchPrefix = v
	}
	if v := os.Getenv(EnvLegacyLayout); v != "" {
		cfg.LegacyLayout = true
	}
}

// expandPaths expands a leading ~ in the directory settings and makes them
// absolute, so later path math never sees a relative root.
func (c *Config) expandPaths() error {
	var err error
	if c.ProjectsDir, err = expandTilde(c.ProjectsDir); err != nil {
		return err
	}
	if c.WorktreesDir, err = expandTilde(c.WorktreesDir); err != nil {
		return err
	}
	return nil
}

// expandTilde replaces a leading "~" or "~/" with the user's home directory.
func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %q: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
