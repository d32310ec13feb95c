package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bigmodel/pkg/apitoken"
	"github.com/domino14/bigmodel/pkg/config"
)

var errUsage = errors.New("bad arguments")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatal().Err(err).Msg("loading .env")
	}
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("token-failure")
	}
}

// run issues one token as configured by args and writes it to out.
func run(args []string, out io.Writer) error {
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	issuer := apitoken.NewIssuer(cfg.IssuerOptions()...)
	t, err := issuer.Issue(cfg.APIKey, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}
	log.Debug().Int64("ttl", cfg.TokenTTL).Str("sign_type", cfg.SignType).Msg("issued token")
	_, err = fmt.Fprintln(out, t)
	return err
}
