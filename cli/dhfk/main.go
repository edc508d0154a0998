// Package main is the dhfk command itself.
package main

import (
	"os"

	"go.viam.com/dhfk/cli"
	"go.viam.com/dhfk/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		os.Exit(1)
	}
}
