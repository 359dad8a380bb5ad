package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/bytetree/cli/tree"
	"github.com/nspcc-dev/bytetree/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "bst\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates an instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "bst"
	ctl.Version = config.Version
	ctl.Usage = "Merkle binary search tree of byte entries"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, tree.NewCommands()...)
	return ctl
}
