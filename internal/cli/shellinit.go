package cli

import (
	_ "embed"
	"fmt"

	"github.com/mmr-tortoise/w/internal/model"
)

// wrapperScript is the shell function users eval into their shell. The
// function, not the binary, performs the cd: a child process cannot change
// its parent's working directory.
//
//go:embed wrapper.sh
var wrapperScript string

// runShellInit implements --shell-init: print the wrapper function for the
// requested shell. The function is plain POSIX, so bash and zsh share it;
// the argument exists to validate intent and to leave room for shells that
// will need their own variant.
func runShellInit(shell string) error {
	switch shell {
	case "bash", "zsh":
		fmt.Print(wrapperScript)
		return nil
	default:
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unsupported shell %q (supported: bash, zsh)", shell))
	}
}
