package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	kaleido "go.kaleido.dev/pkg"
)

func main() {
	app := &cli.App{
		Name:      "kaleido",
		Usage:     "read kaleido source and acknowledge each top-level construct",
		ArgsUsage: "[file]",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	repl := kaleido.NewREPL(os.Stderr)

	if c.Args().Len() == 0 {
		repl.Run(os.Stdin)
		return nil
	}

	if err := repl.RunFile(c.Args().First()); err != nil {
		return errors.Wrap(err, "open source file")
	}

	return nil
}
