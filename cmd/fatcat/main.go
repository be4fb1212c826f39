// Command fatcat runs the catalog server and its operator subcommands.
package main

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/fatcat-project/fatcat/cmd/fatcat/command"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := hclog.New(&hclog.LoggerOptions{Name: "fatcat"})

	if len(args) == 0 {
		args = []string{"serve"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:     "fatcat",
		Args:     args,
		Commands: command.Factories(ui, log),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}
