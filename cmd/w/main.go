// Package main is the entry point for the w CLI, a Git worktree manager.
// All functionality lives in internal/cli.
package main

import (
	"github.com/mmr-tortoise/w/internal/cli"
)

// Set by the release build via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
