package main

import (
	"context"
	"dominicbreuker/tsize/cmd/query"
	"dominicbreuker/tsize/cmd/version"
	"dominicbreuker/tsize/pkg/log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
	}
}

// newApp runs a size query when called without a subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:   "tsize",
		Usage:  "set the tty driver's window size from the terminal's own report",
		Flags:  query.GetFlags(),
		Action: query.Action,
		Commands: []*cli.Command{
			query.GetCommand(),
			version.GetCommand(),
		},
	}
}
