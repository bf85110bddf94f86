package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/mmr-tortoise/w/internal/model"
	"github.com/mmr-tortoise/w/internal/worktree"
)

// listEntry describes a single worktree in listing output. Branch and HEAD
// are filled from `git worktree list --porcelain` when the directory is a
// registered worktree; directories git does not know about (stale leftovers)
// still appear, just without enrichment.
type listEntry struct {
	Name   string `json:"name"`
	Branch string `json:"branch,omitempty"`
	HEAD   string `json:"head,omitempty"`
	Path   string `json:"path"`
	Legacy bool   `json:"legacy,omitempty"`
}

// repoListing groups a repository's worktrees for --list --all output.
type repoListing struct {
	Repo      string      `json:"repo"`
	Worktrees []listEntry `json:"worktrees"`
}

// runList implements --list and --list --all.
func runList(all, jsonOut bool) error {
	if all {
		return runListAll(jsonOut)
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}

	entries, err := collectRepoEntries(a)
	if err != nil {
		return err
	}

	if jsonOut {
		if entries == nil {
			// Empty slice so JSON shows [] instead of null.
			entries = []listEntry{}
		}
		return printJSON(struct {
			Worktrees []listEntry `json:"worktrees"`
		}{Worktrees: entries})
	}

	headerf("=== Worktrees for current repo ===")
	fmt.Print(formatEntries(entries))
	return nil
}

// collectRepoEntries lists the current repo's worktree directories and
// enriches them with branch/HEAD data from git's own registry. With the
// legacy layout enabled, registered worktrees sitting flat under the
// worktree root are included too.
func collectRepoEntries(a *app) ([]listEntry, error) {
	// Branch/HEAD lookup keyed by canonical worktree path, so directories
	// read through a symlinked worktree root (macOS /var -> /private/var)
	// still match git's porcelain paths. A listing failure is not fatal:
	// directories still get listed, just unenriched.
	byPath := map[string]worktree.Info{}
	infos, err := a.wm.List(a.repoRoot)
	if err != nil {
		logger.Debugf("worktree list failed (listing directories only): %v", err)
	}
	for _, info := range infos {
		byPath[canonicalPath(info.Path)] = info
	}

	var entries []listEntry

	dirs, err := os.ReadDir(a.baseDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read worktree base directory", err)
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(a.baseDir, d.Name())
		entries = append(entries, newListEntry(d.Name(), path, byPath, false))
	}

	if a.cfg.LegacyLayout {
		// Legacy worktrees are found through git's registry rather than by
		// scanning the flat directory, which also contains the per-repo
		// subtrees of every other repository.
		wtsRoot := canonicalPath(a.cfg.WorktreesDir)
		for _, info := range infos {
			if filepath.Dir(canonicalPath(info.Path)) == wtsRoot {
				entries = append(entries, newListEntry(filepath.Base(info.Path), info.Path, byPath, true))
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// newListEntry builds a listEntry, pulling branch/HEAD from the porcelain
// lookup when the path is registered with git.
func newListEntry(name, path string, byPath map[string]worktree.Info, legacy bool) listEntry {
	entry := listEntry{Name: name, Path: path, Legacy: legacy}
	if info, ok := byPath[canonicalPath(path)]; ok {
		entry.Branch = shortRef(info.Branch)
		entry.HEAD = info.HEAD
	}
	return entry
}

// canonicalPath resolves symlinks so paths derived from os.ReadDir compare
// equal to the paths git reports. Paths that cannot be resolved (already
// removed, permission) pass through unchanged.
func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// runListAll walks the worktree root and lists every repository's worktrees.
// Only the directory layout is consulted: enumerating branches would need a
// git invocation per repository, and the overview does not warrant it.
func runListAll(jsonOut bool) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}

	listings, err := collectAllListings(a.cfg.WorktreesDir)
	if err != nil {
		return err
	}

	if jsonOut {
		if listings == nil {
			listings = []repoListing{}
		}
		return printJSON(struct {
			Repos []repoListing `json:"repos"`
		}{Repos: listings})
	}

	headerf("=== All Worktrees ===")
	for _, listing := range listings {
		fmt.Printf("[%s]\n", listing.Repo)
		fmt.Print(formatEntries(listing.Worktrees))
		fmt.Println()
	}
	return nil
}

// collectAllListings reads the two-level layout <root>/<repo>/<worktree>.
// Repositories with no worktree directories are skipped. A missing root is
// an empty result, not an error.
func collectAllListings(root string) ([]repoListing, error) {
	repos, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to read worktrees directory", err)
	}

	var listings []repoListing
	for _, repo := range repos {
		if !repo.IsDir() {
			continue
		}

		repoDir := filepath.Join(root, repo.Name())
		wts, err := os.ReadDir(repoDir)
		if err != nil {
			logger.Debugf("skipping %s: %v", repoDir, err)
			continue
		}

		listing := repoListing{Repo: repo.Name()}
		for _, wt := range wts {
			if !wt.IsDir() {
				continue
			}
			listing.Worktrees = append(listing.Worktrees, listEntry{
				Name: wt.Name(),
				Path: filepath.Join(repoDir, wt.Name()),
			})
		}
		if len(listing.Worktrees) > 0 {
			listings = append(listings, listing)
		}
	}

	sort.Slice(listings, func(i, j int) bool { return listings[i].Repo < listings[j].Repo })
	return listings, nil
}

// formatEntries renders worktree entries as bullet lines:
//
//	• feature-x (feature-x @ abc123d)
//	• stale-dir
//	• old-one (old-one @ def456a) [legacy]
func formatEntries(entries []listEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString("  • " + e.Name)
		if e.Branch != "" {
			b.WriteString(fmt.Sprintf(" (%s @ %s)", e.Branch, abbrevHEAD(e.HEAD)))
		}
		if e.Legacy {
			b.WriteString(" [legacy]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// shortRef strips the refs/heads/ prefix from a full branch ref.
func shortRef(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}

// abbrevHEAD shortens a commit SHA to the conventional 7 characters.
func abbrevHEAD(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// headerf prints a bold section header to stdout. Listings are data, so
// unlike progress messages they belong on stdout; color.New disables
// coloring by itself when stdout is not a terminal.
func headerf(format string, args ...any) {
	color.New(color.Bold).Printf(format+"\n", args...)
}
