package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/fintrack/backend/internal/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	// serve is the default
	if flag.NArg() == 0 {
		_ = flag.CommandLine.Parse(append(os.Args[1:], "serve"))
	}

	os.Exit(int(commander.Execute(context.Background())))
}
