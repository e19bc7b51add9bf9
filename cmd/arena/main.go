package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/pylos/automatic"
	"github.com/domino14/pylos/config"
)

// arena plays games between two presets and prints a report, e.g.
//
//	arena --player1 deep --player2 default --arena-games 200 --arena-output turns.csv
//
// Progress counters are served on PYLOS_EXPVAR_ADDR (e.g. :8088) if set.
func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch cfg.GetString(config.ConfigLogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if addr := os.Getenv("PYLOS_EXPVAR_ADDR"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/debug/vars", expvar.Handler())
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Err(err).Msg("expvar-server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := automatic.PlayArena(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("arena-failed")
		os.Exit(1)
	}
	fmt.Print(rep.String())
}
