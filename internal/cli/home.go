package cli

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/w/internal/model"
)

// runHome implements --home: print the main repository path so the wrapper
// can cd back from any worktree.
func runHome() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	main, err := a.wm.MainWorktree(cwd)
	if err != nil {
		return model.WrapCLIError(model.ExitNotARepo, "could not find main repository", err)
	}

	fmt.Println(main)
	return nil
}
