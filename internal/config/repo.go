package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// RepoSettingsFile is the per-repository settings file name, looked up at
// the repository root. The format is JSONC so the file can carry comments.
const RepoSettingsFile = ".worktrees.jsonc"

// RepoSettings holds per-repository overrides and hooks. All fields are
// optional; a missing file yields the zero value.
type RepoSettings struct {
	// Base is the branch new worktree branches are created from.
	// Empty means HEAD.
	Base string `json:"base,omitempty"`

	// BranchPrefix overrides the global branch prefix for this repository.
	// An explicit empty string in the file is indistinguishable from unset
	// and keeps the global prefix.
	BranchPrefix string `json:"branchPrefix,omitempty"`

	// PostCreate lists commands run inside a freshly created worktree,
	// in order. Each entry is passed to the shell.
	PostCreate []string `json:"postCreate,omitempty"`
}

// LoadRepoSettings reads .worktrees.jsonc from the given repository root.
// Comments and trailing commas are stripped before parsing, matching how
// editors treat the file. A missing file returns empty settings, nil error.
func LoadRepoSettings(repoRoot string) (*RepoSettings, error) {
	path := filepath.Join(repoRoot, RepoSettingsFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RepoSettings{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var settings RepoSettings
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &settings, nil
}

// EffectivePrefix returns the branch prefix to use for a repository,
// preferring the per-repo override over the global configuration.
func (s *RepoSettings) EffectivePrefix(global string) string {
	if s.BranchPrefix != "" {
		return s.BranchPrefix
	}
	return global
}
