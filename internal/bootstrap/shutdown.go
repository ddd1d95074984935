package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Services           *Services
	ResilientPublisher *event.ResilientPublisher
	KafkaSink          *event.KafkaSink
	CloseStore         func()
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Outbox sweep and transfer workers (finish in-flight deliveries)
// 3. Event publisher (flush pending events), then the Kafka sink
// 4. Store connection pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Services != nil {
		components.Services.Scheduler.Stop()
		components.Services.Pool.Stop()
		slog.Info(LogMsgWorkersStopped)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.KafkaSink != nil {
		if err := components.KafkaSink.Close(); err != nil {
			slog.Error(LogMsgKafkaSinkCloseFailed, "error", err)
		}
	}

	if components.CloseStore != nil {
		components.CloseStore()
	}

	slog.Info(LogMsgServerStopped)
}
