// provider-gen prints the GUID a trace provider name registers under, for
// use in WPR profiles, collector configurations, and trace filters.
package main

import (
	"fmt"
	"os"

	cli "github.com/urfave/cli/v2"

	tracelog "github.com/helsaawy/go-tracelog"
)

func main() {
	// because of ExitErrHandler, Run() should not return an error
	_ = app().Run(os.Args)
}

func app() *cli.App {
	return &cli.App{
		Name:      "provider-gen",
		Usage:     "print the GUID a trace provider name registers under",
		ArgsUsage: "name [name ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "print GUIDs only, without the names",
			},
		},
		Action: run,
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			cli.HandleExitCoder(cli.Exit(fmt.Errorf("%s: %w", c.App.Name, err), 1))
		},
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no provider names given")
	}
	for _, name := range c.Args().Slice() {
		if name == "" {
			return fmt.Errorf("provider name is empty")
		}
		id := tracelog.ProviderID(name)
		if c.Bool("quiet") {
			fmt.Println(id)
			continue
		}
		fmt.Printf("%s\t%s\n", name, id)
	}
	return nil
}
