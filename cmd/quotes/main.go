package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"portfolioquotes/internal/cli"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	env := &cli.Env{Out: os.Stdout, Err: os.Stderr}
	for _, c := range cli.Commands(env) {
		commander.Register(c, "")
	}

	flag.Parse()
	env.Open = cli.OpenConfig(*configPath)
	os.Exit(int(commander.Execute(context.Background())))
}
