package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-ride-keeper/internal/client"
	"github.com/MKhiriev/go-ride-keeper/internal/config"
	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
	"github.com/MKhiriev/go-ride-keeper/internal/logger"
	"github.com/MKhiriev/go-ride-keeper/internal/service"
	"github.com/MKhiriev/go-ride-keeper/internal/store"
	"github.com/MKhiriev/go-ride-keeper/internal/tui"
	"github.com/MKhiriev/go-ride-keeper/models"
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
	// keygen is how a first key is obtained, so it must work unconfigured.
	if len(os.Args) == 2 && os.Args[1] == "keygen" {
		if err := client.Keygen(os.Stdout); err != nil {
			fmt.Fprint(os.Stderr, tui.RenderError(err))
			return 1
		}
		return 0
	}

	log := logger.NewFileLogger("ridekeeper", "").WithLevel(zerolog.WarnLevel)
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 2
	}
	if cfg.App.LogFile != "" {
		log = logger.NewFileLogger("ridekeeper", cfg.App.LogFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	key, err := cfg.App.ResolveFieldKey()
	if err != nil {
		log.Error().Err(err).Msg("error resolving field key")
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 2
	}

	cipher, err := crypto.NewFieldCipher(key)
	if err != nil {
		log.Error().Err(err).Msg("error creating field cipher")
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 1
	}

	storages, err := store.NewLocalStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating storages")
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 1
	}
	defer storages.Close()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services := service.NewServices(storages, cipher, cfg.App, build, log)

	app, err := client.NewApp(services, cipher, cfg.Workers, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return 1
	}

	if err = app.Run(ctx, flag.Args()); err != nil {
		log.Error().Err(err).Strs("args", flag.Args()).Msg("command failed")
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		if client.IsUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}
