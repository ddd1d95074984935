package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/BoxLedger_Go/internal/bank"
	"github.com/osse101/BoxLedger_Go/internal/config"
	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/lootbox"
	"github.com/osse101/BoxLedger_Go/internal/random"
	"github.com/osse101/BoxLedger_Go/internal/scheduler"
	"github.com/osse101/BoxLedger_Go/internal/token"
	"github.com/osse101/BoxLedger_Go/internal/worker"
)

// Services holds the wired domain services and the workers behind them.
type Services struct {
	Box        lootbox.Service
	Gateway    token.Gateway
	Pool       *worker.Pool
	Dispatcher *worker.TransferDispatcher
	Scheduler  *scheduler.Scheduler
}

// InitializeServices wires the box sale and the token gateway onto store. The worker
// pool and the outbox sweep are created but not started; call Start.
func InitializeServices(cfg *config.Config, store Store, publisher event.Publisher) (*Services, error) {
	if err := domain.ValidateAccountID(cfg.ContractAccount); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidContract, err)
	}

	price, err := domain.ParseAmount(cfg.BoxPrice)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidBoxPrice, err)
	}

	policy, err := lootbox.ParseShortfallPolicy(cfg.PoolShortfallPolicy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPolicy, err)
	}

	seeds, err := random.NewSource(cfg.RandomSource, cfg.RandomSalt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateSource, err)
	}

	pool := worker.NewPool(cfg.DispatchWorkers, cfg.DispatchQueueSize)
	dispatcher := worker.NewTransferDispatcher(store, pool, bank.New(cfg.NativeBankURL, cfg.NativeBankAPIKey), publisher)

	sched := scheduler.New(pool)
	if err := sched.Schedule(JobNameOutboxSweep, cfg.OutboxSweepSchedule, dispatcher.SweepJob(worker.DefaultSweepBatch)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleSweep, err)
	}

	boxService := lootbox.NewService(store, seeds, publisher, dispatcher, lootbox.Config{
		Contract:        cfg.ContractAccount,
		Price:           price,
		StartAt:         cfg.MintStart(),
		ShortfallPolicy: policy,
		Cache: lootbox.CacheConfig{
			Size: cfg.RewardCacheSize,
			TTL:  cfg.RewardCacheTTL,
		},
	})

	return &Services{
		Box:        boxService,
		Gateway:    token.NewGateway(store, cfg.ContractAccount, publisher, dispatcher),
		Pool:       pool,
		Dispatcher: dispatcher,
		Scheduler:  sched,
	}, nil
}

// Start launches the transfer workers and the outbox sweep. The first sweep also
// picks up rows left pending by a previous run.
func (s *Services) Start() {
	s.Pool.Start()
	s.Scheduler.Start()
}

// EnsureInitialized creates the box state for owner when the store has none.
func EnsureInitialized(ctx context.Context, boxService lootbox.Service, owner string) error {
	if err := domain.ValidateAccountID(owner); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidOwner, err)
	}

	err := boxService.Initialize(ctx, owner)
	switch {
	case err == nil:
		slog.Info(LogMsgStateInitialized, "owner", owner)
		return nil
	case errors.Is(err, domain.ErrAlreadyInitialized):
		slog.Info(LogMsgStateAlreadyPresent)
		return nil
	default:
		return fmt.Errorf("%s: %w", ErrMsgFailedInitializeBox, err)
	}
}
