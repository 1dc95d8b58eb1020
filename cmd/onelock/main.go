package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/onelock/internal/client"
	"github.com/MKhiriev/onelock/internal/config"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "onelock: configuration: %v\n", err)
		return 2
	}

	log, err := logger.NewFileLogger("onelock", cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "onelock: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, models.NewBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Error().Err(err).Msg("init app error")
		fmt.Fprintf(os.Stderr, "onelock: %s\n", client.UserMessage(err))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("close storage")
		}
	}()

	err = app.Run(ctx, args)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, client.ErrUsage):
		fmt.Fprintf(os.Stderr, "onelock: %v\n", err)
		return 2
	default:
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "onelock: %s\n", client.UserMessage(err))
		return 1
	}
}
