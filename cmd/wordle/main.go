package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI(&application{}).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCLI(app *application) *cli.App {
	return &cli.App{
		Name:  "wordle",
		Usage: "build and serve the puzzle results dataset from a chat export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"WORDLE_CONFIG"},
			},
		},
		Before: app.setup,
		After:  app.teardown,
		Commands: []*cli.Command{
			app.buildCommand(),
			app.serveCommand(),
			app.dbCommand(),
		},
	}
}
