// hotelctl is the terminal admin for the hotel portal. It drives the same
// admin actions as the web dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_portal/internal/adapters/observability"
	"hotel_portal/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	// stdout belongs to command output
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "hotelctl").
		Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

	if err := run(ctx, cfg.AdminAPIURL, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("hotelctl")
		os.Exit(1)
	}
}
