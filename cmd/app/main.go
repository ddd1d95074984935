package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/osse101/BoxLedger_Go/docs"
	"github.com/osse101/BoxLedger_Go/internal/bootstrap"
	"github.com/osse101/BoxLedger_Go/internal/config"
	"github.com/osse101/BoxLedger_Go/internal/server"
	"github.com/osse101/BoxLedger_Go/internal/sse"
)

// ShutdownTimeout bounds the graceful shutdown sequence
const ShutdownTimeout = 15 * time.Second

// @title BoxLedger API
// @version 1.0
// @description Loot box sale and fee-bearing token ledger.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		closeStore()
		return err
	}

	sseHub := sse.NewHub()
	kafkaSink, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		SSEHub:   sseHub,
		Config:   cfg,
	})
	if err != nil {
		closeStore()
		return err
	}

	services, err := bootstrap.InitializeServices(cfg, store, publisher)
	if err != nil {
		closeStore()
		return err
	}

	if err := bootstrap.EnsureInitialized(ctx, services.Box, cfg.OwnerAccount); err != nil {
		closeStore()
		return err
	}

	services.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, store, services.Box, services.Gateway, sseHub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Services:           services,
		ResilientPublisher: publisher,
		KafkaSink:          kafkaSink,
		CloseStore:         closeStore,
	})

	return err
}
