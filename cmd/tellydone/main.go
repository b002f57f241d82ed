package main

import (
	"os"

	"github.com/tellydone/tellydone/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
