package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bigmodel/pkg/chat"
	"github.com/domino14/bigmodel/pkg/config"
)

const debugLogFile = "bigmodel-chat.log"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatal().Err(err).Msg("loading .env")
	}
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.Prompt != "" {
		client, err := chat.NewFromConfig(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("bad configuration")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		reply, err := client.NewConversation("").Send(ctx, cfg.Prompt)
		if err != nil {
			log.Fatal().Err(err).Msg("chat request failed")
		}
		fmt.Println(reply.Content)
		return
	}

	// The terminal belongs to the UI, so logs go to a file.
	if cfg.Debug {
		f, err := tea.LogToFile(debugLogFile, "chat")
		if err != nil {
			log.Fatal().Err(err).Msg("opening debug log")
		}
		defer f.Close()
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true})
	} else {
		log.Logger = zerolog.Nop()
	}

	client, err := chat.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := tea.NewProgram(initialModel(ctx, client.NewConversation(""), cfg.Model))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
