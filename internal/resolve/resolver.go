// Package resolve computes worktree directory paths from configuration.
//
// The layout is deterministic: a repository at <ProjectsDir>/<rel> keeps its
// worktrees under <WorktreesDir>/<rel>/<name>. Repositories living outside
// the projects dir fall back to their basename, so two repos with the same
// basename outside the projects dir would collide — a known property of the
// layout, not something this package papers over.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/w/internal/config"
)

// Resolver computes paths for a fixed configuration.
type Resolver struct {
	cfg *config.Config
}

// New returns a Resolver over cfg.
func New(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// RepoRel returns the repository's path relative to the projects dir, or
// its basename when the repository lives outside it.
func (r *Resolver) RepoRel(repoRoot string) string {
	rel, err := filepath.Rel(r.cfg.ProjectsDir, repoRoot)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return filepath.Base(repoRoot)
	}
	return rel
}

// BaseDir returns the directory that holds all of this repository's
// worktrees: <WorktreesDir>/<RepoRel>.
func (r *Resolver) BaseDir(repoRoot string) string {
	return filepath.Join(r.cfg.WorktreesDir, r.RepoRel(repoRoot))
}

// Target returns the directory for a named worktree of the repository.
//
// With the legacy layout enabled, an existing directory at the pre-v1 flat
// location <WorktreesDir>/<name> wins, so old worktrees keep resolving to
// where they actually are. New worktrees are always placed in the per-repo
// layout: the legacy path is honored only when it already exists.
func (r *Resolver) Target(repoRoot, name string) string {
	if r.cfg.LegacyLayout {
		legacy := r.LegacyTarget(name)
		if info, err := os.Stat(legacy); err == nil && info.IsDir() {
			return legacy
		}
	}
	return filepath.Join(r.BaseDir(repoRoot), name)
}

// LegacyTarget returns where a worktree of the given name would live in the
// pre-v1 flat layout, whether or not it exists.
func (r *Resolver) LegacyTarget(name string) string {
	return filepath.Join(r.cfg.WorktreesDir, name)
}
