package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/handler"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/internal/media"
	"github.com/MKhiriev/go-vinted/internal/server"
	"github.com/MKhiriev/go-vinted/internal/service"
	"github.com/MKhiriev/go-vinted/internal/store"
	"github.com/MKhiriev/go-vinted/internal/workers"
	"github.com/MKhiriev/go-vinted/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("vinted-server")
	if err := run(context.Background(), os.Args[1:], buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, args []string, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	cfg, err := config.GetStructuredConfig(args)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return err
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("media_driver", cfg.Media.Driver).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Msg("received configs")

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database")
		}
	}()

	if cfg.Storage.DB.Migrate {
		if err = db.Migrate(); err != nil {
			return fmt.Errorf("error applying migrations: %w", err)
		}
		log.Info().Msg("migrations applied")
	}

	uploader, err := media.NewUploader(ctx, cfg.Media, log)
	if err != nil {
		return fmt.Errorf("error creating media uploader: %w", err)
	}

	services, err := service.NewServices(store.NewStorages(db, log), uploader, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	var reporters []workers.HealthReporter
	if handlers.GRPC != nil {
		reporters = append(reporters, handlers.GRPC)
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	workers.NewWorkers(cfg.Workers, db, log, reporters...).Run(workersCtx)

	return srv.RunServer(ctx)
}
