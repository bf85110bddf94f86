package cli

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/w/internal/model"
)

// runRemove implements --rm: resolve the named worktree (the legacy flat
// layout applies) and remove it through git.
func runRemove(rawName string, force bool) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	name, err := model.SanitizeName(rawName)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid worktree name", err)
	}

	target := a.res.Target(a.repoRoot, name)
	if _, statErr := os.Stat(target); os.IsNotExist(statErr) {
		return model.NewCLIError(model.ExitWorktreeNotFound,
			fmt.Sprintf("worktree not found: %s", target))
	}

	if err := a.wm.Remove(a.repoRoot, target, force); err != nil {
		return err
	}

	fmt.Printf("Removed worktree: %s\n", name)
	return nil
}
