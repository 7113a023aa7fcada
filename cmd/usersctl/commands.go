package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"tradeassist/internal/domain"
	"tradeassist/internal/repository"
	"tradeassist/internal/service"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// register adds every store command to the commander
func register(c *subcommands.Commander) {
	c.Register(&listCmd{}, "users")
	c.Register(&showCmd{}, "users")
	c.Register(&setLangCmd{}, "users")
	c.Register(&connectCmd{}, "users")
	c.Register(&statsCmd{}, "reporting")
}

// withStore opens the store, runs fn and reports its error
func withStore(fn func(repo repository.UserRepository) error) subcommands.ExitStatus {
	repo, closeStore, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := fn(repo); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printUser(id string, user domain.User) {
	fmt.Fprintf(stdout, "%s\tlang=%s\tconnected=%t\n", id, user.Language, user.Connected)
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all users with their language and connection flag" }
func (*listCmd) Usage() string {
	return `usersctl list

  Prints one line per stored user, sorted by id.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(repo repository.UserRepository) error {
		users, err := repo.Load()
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(users))
		for id := range users {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLANG\tCONNECTED")
		for _, id := range ids {
			fmt.Fprintf(w, "%s\t%s\t%t\n", id, users[id].Language, users[id].Connected)
		}
		return w.Flush()
	})
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one user" }
func (*showCmd) Usage() string {
	return `usersctl show <user id>
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	return withStore(func(repo repository.UserRepository) error {
		user, err := repo.Get(id)
		if err != nil {
			return err
		}
		printUser(id, user)
		return nil
	})
}

type setLangCmd struct{}

func (*setLangCmd) Name() string     { return "set-lang" }
func (*setLangCmd) Synopsis() string { return "change a user's display language" }
func (*setLangCmd) Usage() string {
	return `usersctl set-lang <user id> <de|en|ru>
`
}
func (*setLangCmd) SetFlags(*flag.FlagSet) {}

func (*setLangCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	lang, err := domain.ParseLanguage(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	return withStore(func(repo repository.UserRepository) error {
		if err := repo.SetLanguage(id, lang); err != nil {
			return err
		}
		user, err := repo.Get(id)
		if err != nil {
			return err
		}
		printUser(id, user)
		return nil
	})
}

type connectCmd struct {
	off bool
}

func (*connectCmd) Name() string     { return "connect" }
func (*connectCmd) Synopsis() string { return "set or clear a user's marketplace connection flag" }
func (*connectCmd) Usage() string {
	return `usersctl connect [-off] <user id>
`
}

func (p *connectCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.off, "off", false, "clear the connection flag instead of setting it")
}

func (p *connectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	return withStore(func(repo repository.UserRepository) error {
		if err := repo.SetConnected(id, !p.off); err != nil {
			return err
		}
		user, err := repo.Get(id)
		if err != nil {
			return err
		}
		printUser(id, user)
		return nil
	})
}

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "print user totals" }
func (*statsCmd) Usage() string {
	return `usersctl stats
`
}
func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (*statsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withStore(func(repo repository.UserRepository) error {
		stats, err := service.NewStatsService(repo, zap.NewNop()).Collect()
		if err != nil {
			if errors.Is(err, domain.ErrCorruptStore) {
				return fmt.Errorf("store is unreadable, fix or restore it before running the bot: %w", err)
			}
			return err
		}

		fmt.Fprintf(stdout, "total: %d\nconnected: %d\n", stats.Total, stats.Connected)
		for _, lang := range domain.Languages {
			fmt.Fprintf(stdout, "%s: %d\n", lang, stats.ByLanguage[lang])
		}
		return nil
	})
}
