package cmd

import (
	"bufio"
	"log/slog"
	"os"

	"github.com/magodo/slog2hclog"
	"github.com/mitchellh/cli"
)

// Version is set at build time.
var Version = "dev"

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	log := slog2hclog.New(slog.New(handler), logLevel).Named(cliName)

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  Version,
		Commands: Commands(log, logLevel, ui, os.Stdin),
	}

	exitCode, err := c.Run()
	if err != nil {
		panic(err)
	}

	return exitCode
}
