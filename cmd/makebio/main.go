package main

import (
	"fmt"
	"os"

	"github.com/raivivek/makebio/internal/cli"
	"github.com/raivivek/makebio/internal/project"
)

var version = "0.1.0-dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(project.ExitCode(err))
	}
}
