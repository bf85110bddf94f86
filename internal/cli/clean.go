package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/w/internal/model"
)

// runClean implements --clean: remove every worktree directory under the
// current repository's base. Removal is non-forced, so dirty worktrees
// survive with a warning rather than losing uncommitted work.
func runClean() error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	dirs, err := os.ReadDir(a.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No worktrees to clean")
			return nil
		}
		return model.WrapCLIError(model.ExitGeneralError, "failed to read worktree base directory", err)
	}

	count := 0
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(a.baseDir, d.Name())

		fmt.Printf("Removing worktree: %s\n", d.Name())
		if err := a.wm.Remove(a.repoRoot, path, false); err != nil {
			logger.Warnf("skipping %s: %v", d.Name(), err)
			continue
		}
		count++
	}

	if count > 0 {
		fmt.Printf("Cleaned %d worktree(s)\n", count)
	} else {
		fmt.Println("No worktrees were removed")
	}
	return nil
}
