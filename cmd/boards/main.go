// Package main is the boards command itself.
package main

import (
	"os"

	"go.fpgaboards.dev/boards/cli"

	// register every board.
	_ "go.fpgaboards.dev/boards/boards/all"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		cli.Errorf(app.ErrWriter, "%v", err)
		os.Exit(1)
	}
}
