package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fintrack/backend/internal/auth"
	"github.com/fintrack/backend/internal/config"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type tokenCmd struct {
	config string
	owner  string
	ttl    time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "sign an API token for an owner" }
func (*tokenCmd) Usage() string {
	return `fintrack token -owner <uuid> [-ttl <duration>] [-config <file>]

  Prints a bearer token for the owner, signed with auth.secret.
`
}

func (t *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.config, "config", "", "Path of a YAML configuration file.")
	f.StringVar(&t.owner, "owner", "", "ID of the owner the token is issued for.")
	f.DurationVar(&t.ttl, "ttl", 0, "Lifetime of the token, defaults to auth.token_ttl.")
}

func (t *tokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	owner, err := uuid.Parse(t.owner)
	if err != nil || owner == uuid.Nil {
		fmt.Fprintf(os.Stderr, "-owner must be a valid, non-nil UUID\n\n%s", t.Usage())
		return subcommands.ExitUsageError
	}

	cfg, err := config.Load(t.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if cfg.Auth.Secret == "" {
		fmt.Fprintln(os.Stderr, config.ErrSecretNotSet)
		return subcommands.ExitFailure
	}

	ttl := t.ttl
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	token, err := auth.NewToken(cfg.Auth.Secret, owner, ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Println(token)
	return subcommands.ExitSuccess
}
