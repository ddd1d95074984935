package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/BoxLedger_Go/internal/config"
	"github.com/osse101/BoxLedger_Go/internal/database"
	"github.com/osse101/BoxLedger_Go/internal/database/memory"
	"github.com/osse101/BoxLedger_Go/internal/database/postgres"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

// Store is everything the services need from a storage backend.
type Store interface {
	repository.Box
	repository.Token
	repository.Outbox
	Ping(ctx context.Context) error
}

// OpenStore connects the configured backend and applies migrations. The returned
// close function releases the connection pool and is safe to call once.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend)
		return memory.NewStore(), func() {}, nil

	case config.StoreBackendPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectStore, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStore, err)
		}
		slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend, "db_host", cfg.DBHost, "db_name", cfg.DBName)
		return postgres.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreBackend, cfg.StoreBackend)
	}
}
