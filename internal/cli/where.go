package cli

import "fmt"

// runWhere implements --where: print the resolved repo root and worktree
// base, one per line, for inspection and scripting.
func runWhere() error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	fmt.Println(a.repoRoot)
	fmt.Println(a.baseDir)
	return nil
}
