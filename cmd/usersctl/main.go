// Command usersctl inspects and edits the bot's user store.
// It may run next to the bot: file store updates are serialized through a lock file.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path"

	"tradeassist/internal/config"
	"tradeassist/internal/repository"
	"tradeassist/internal/storage"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

var verbose = flag.Bool("v", false, "log storage activity to stderr")

// stdout is where commands print their results
var stdout io.Writer = os.Stdout

// openStore opens the configured user store
var openStore = func() (repository.UserRepository, func() error, error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, nil, err
	}
	return storage.Open(cfg, newLogger())
}

func newLogger() *zap.Logger {
	if !*verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
