package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cityseed/internal/di"
	"cityseed/internal/seed/config"
	"cityseed/internal/seed/usecase"
	apperrors "cityseed/internal/shared/errors"
	"cityseed/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Warnf("Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		return 1
	}

	appLogger := logger.New(cfg.Log.Backend, cfg.Log.Level, cfg.Log.Format)
	appLogger.Debugf("Configuration loaded (database %s, collection %s)", cfg.DatabaseName, cfg.CitiesCollection)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(context.Background()); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	if err := container.InitializeMongo(ctx, cfg); err != nil {
		appLogger.Errorf("%v", err)
		return 1
	}
	if err := container.InitializeEvents(ctx, cfg); err != nil {
		appLogger.Errorf("Failed to initialize events: %v", err)
		return 1
	}
	if err := container.InitializeSeed(cfg); err != nil {
		appLogger.Errorf("%v", err)
		return 1
	}

	report, err := container.SeedModule.Run(ctx)
	if err != nil {
		fields := map[string]interface{}{"error_type": string(apperrors.TypeOf(err))}
		if report != nil {
			fields["requested"] = report.Requested
			fields["inserted"] = report.Inserted
		}
		appLogger.WithFields(fields).Errorf("Seeding failed: %v", err)
		return 1
	}

	fmt.Println(usecase.CompletionMessage(report))
	return 0
}
