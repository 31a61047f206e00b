// Package query implements the query command, which asks a terminal for its
// size and stores the answer in the terminal driver.
package query

import (
	"context"
	"dominicbreuker/tsize/cmd/shared"
	"dominicbreuker/tsize/pkg/config"
	"dominicbreuker/tsize/pkg/log"
	"dominicbreuker/tsize/pkg/rawterm"
	"dominicbreuker/tsize/pkg/termsize"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

// GetCommand returns the CLI command for querying the terminal size.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:   "query",
		Usage:  "Ask the terminal for its size and tell the tty driver",
		Action: Action,
		Flags:  GetFlags(),
	}
}

// GetFlags returns the flags of the query command.
func GetFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, shared.GetCommonFlags()...)
	flags = append(flags, shared.GetQueryFlags()...)

	return flags
}

// Action runs a size query configured by the flags of cmd. Like the
// classic tool, a terminal that cannot be sized is not an error; it is
// only reported in verbose mode.
func Action(ctx context.Context, cmd *cli.Command) error {
	cfg := &config.Query{
		Device:  cmd.String(shared.DeviceFlag),
		Timeout: time.Duration(cmd.Int(shared.TimeoutFlag)) * time.Millisecond,
		Verbose: cmd.Bool(shared.VerboseFlag),
		Format:  config.Format(cmd.String(shared.FormatFlag)),
	}

	if errors := config.Validate(cfg); len(errors) > 0 {
		log.ErrorMsg("Argument validation errors:\n")
		for _, err := range errors {
			log.ErrorMsg(" - %s\n", err)
		}
		return fmt.Errorf("exiting")
	}

	if err := run(cfg, os.Stdout); err != nil && cfg.Verbose {
		log.ErrorMsg("could not determine terminal size: %s\n", err)
	}
	return nil
}

func run(cfg *config.Query, stdout io.Writer) error {
	f := os.Stdin
	if !cfg.UsesStdin() {
		dev, err := os.OpenFile(cfg.Device, os.O_RDWR|syscall.O_NOCTTY, 0)
		if err != nil {
			return fmt.Errorf("opening %s: %w", cfg.Device, err)
		}
		defer dev.Close()
		f = dev
	}

	s, err := rawterm.OpenWithTimeout(f, cfg.Timeout)
	if err != nil {
		return err
	}
	restore := func() {
		if err := s.Close(); err != nil {
			log.WarnMsg("%s\n", err)
		}
	}
	defer restore()
	stop := shared.RestoreOnSignal(restore)
	defer stop()

	if cfg.Verbose {
		log.InfoMsg("Querying size of %s\n", f.Name())
	}

	size, err := termsize.Query(s)
	if err != nil {
		return err
	}

	// output post-processing is off until the session is closed
	stop()
	restore()

	if cfg.Verbose {
		log.InfoMsg("Terminal size is %d rows, %d columns\n", size.Rows, size.Cols)
	}

	return printSize(stdout, size, cfg.Format)
}
