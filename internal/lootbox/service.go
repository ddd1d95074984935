package lootbox

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/leaderboard"
	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/random"
	"github.com/osse101/BoxLedger_Go/internal/repository"
	"github.com/osse101/BoxLedger_Go/internal/roster"
	"github.com/osse101/BoxLedger_Go/internal/token"
)

// Dispatcher hands a committed outbox row to the transfer workers
type Dispatcher interface {
	Dispatch(ctx context.Context, transferID string)
}

// Service defines the box sale operations
type Service interface {
	OpenBox(ctx context.Context, caller string, payment domain.Amount) (*domain.OpenBoxResult, error)
	GetUserRewards(ctx context.Context, account string) (*domain.UserRewards, error)
	GetTotalStats(ctx context.Context) (*domain.TotalStats, error)
	GetAllParticipants(ctx context.Context) ([]domain.LeaderboardEntry, error)
	GetLeaderboards(ctx context.Context) (*domain.Leaderboards, error)
	UserPremiumBoxesLeft(ctx context.Context, account string) (uint32, error)
	GrantAdditionalPremium(ctx context.Context, caller, account string, amount uint32) (uint32, error)
	EraseTransientState(ctx context.Context, caller string) error
	Initialize(ctx context.Context, owner string) error
	GetCacheStats() CacheStats
}

// Config holds the sale parameters
type Config struct {
	Contract        string
	Price           domain.Amount
	StartAt         time.Time
	ShortfallPolicy ShortfallPolicy
	Cache           CacheConfig
}

type service struct {
	repo       repository.Box
	seeds      random.Source
	publisher  event.Publisher
	dispatcher Dispatcher
	cache      *rewardCache
	cfg        Config
	now        func() time.Time
}

// NewService creates a new box sale service. publisher and dispatcher may be nil.
func NewService(repo repository.Box, seeds random.Source, publisher event.Publisher, dispatcher Dispatcher, cfg Config) Service {
	if cfg.ShortfallPolicy == "" {
		cfg.ShortfallPolicy = ShortfallPolicyCredit
	}
	return &service{
		repo:       repo,
		seeds:      seeds,
		publisher:  publisher,
		dispatcher: dispatcher,
		cache:      newRewardCache(cfg.Cache),
		cfg:        cfg,
		now:        time.Now,
	}
}

// OpenBox sells one box to caller and pays its rewards
func (s *service) OpenBox(ctx context.Context, caller string, payment domain.Amount) (*domain.OpenBoxResult, error) {
	log := logger.FromContext(ctx)

	seed, err := s.seeds.Seed(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDrawSeed, err)
	}

	tx, err := s.repo.BeginBoxTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	state, err := tx.GetStateForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}

	now := s.now()
	if err := ValidatePurchase(payment, s.cfg.Price, now, state.Inventory, s.cfg.StartAt); err != nil {
		return nil, err
	}

	rec, err := tx.GetAccountForUpdate(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadAccount, err)
	}

	if rec.BoxesOpened == 0 {
		created, err := token.Register(ctx, tx, caller)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToRegister, err)
		}
		if created {
			log.Info(LogMsgStorageRegistered, LogFieldAccount, caller)
		}
	}

	eligible := IsPremiumEligible(state.Inventory, rec)
	rec.BoxesOpened++
	if err := takeBox(&state.Inventory); err != nil {
		return nil, err
	}

	tier := SelectTier(seed, state.Inventory, eligible)
	if err := consumeTier(&state.Inventory, tier); err != nil {
		return nil, err
	}

	roster.Add(state, caller)

	result := &domain.OpenBoxResult{Tier: tier}

	result.TokenAmount = DrawTokenReward(seed, tier != domain.TierCommon)
	covered, err := applyTokenReward(state, rec, result.TokenAmount, s.cfg.ShortfallPolicy)
	if err != nil {
		return nil, err
	}
	if covered {
		if err := token.Move(ctx, tx, state.ReserveAccount(), caller, result.TokenAmount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToMoveTokens, err)
		}
	} else {
		result.PoolShortfall = true
		log.Warn(LogMsgPoolShortfall,
			LogFieldAccount, caller,
			LogFieldAmount, result.TokenAmount.String(),
			LogFieldPool, state.TokenPoolRemaining.String(),
			LogFieldPolicy, s.cfg.ShortfallPolicy)
	}

	result.NativeAmount, err = applyNativeReward(state, rec, tier)
	if err != nil {
		return nil, err
	}

	var payout *domain.PendingTransfer
	if tier != domain.TierCommon {
		payout = domain.NewPendingTransfer(domain.TransferKindNative, state.Contract, caller, result.NativeAmount, "", "", now)
		if err := tx.EnqueueTransfer(ctx, payout); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToQueuePayout, err)
		}
	}

	state.UpdatedAt = now
	if err := tx.SaveAccount(ctx, rec); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveAccount, err)
	}
	if err := tx.SaveState(ctx, state); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveState, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Info(fmt.Sprintf(LogMsgRewardFormat, caller, tier, result.TokenAmount, result.NativeAmount),
		LogFieldAccount, caller,
		LogFieldTier, tier)

	s.cache.Invalidate(caller)
	if payout != nil && s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, payout.ID)
	}
	s.publishOpen(ctx, caller, result, state, covered)

	return result, nil
}

func (s *service) publishOpen(ctx context.Context, caller string, result *domain.OpenBoxResult, state *domain.BoxState, tokenBoardChanged bool) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, event.NewBoxOpenedEvent(caller, result, state.Inventory.TotalRemaining))
	if result.Tier != domain.TierCommon {
		s.publisher.PublishWithRetry(ctx, event.NewLeaderboardUpdatedEvent(leaderboard.Native.String(), state.NativeLeaderboard))
	}
	if tokenBoardChanged {
		s.publisher.PublishWithRetry(ctx, event.NewLeaderboardUpdatedEvent(leaderboard.Token.String(), state.TokenLeaderboard))
	}
}

// GetUserRewards returns the reward totals of account; unknown accounts read as zero
func (s *service) GetUserRewards(ctx context.Context, account string) (*domain.UserRewards, error) {
	if cached, ok := s.cache.Get(account); ok {
		return &cached, nil
	}

	gen := s.cache.Generation()
	rec, err := s.repo.GetAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadAccount, err)
	}

	rewards := domain.UserRewards{
		TokenTotal:  rec.TokenRewardTotal,
		NativeTotal: rec.NativeRewardTotal,
		BoxesOpened: rec.BoxesOpened,
	}
	s.cache.Fill(account, rewards, gen)
	return &rewards, nil
}

// GetTotalStats returns the sale-wide counters
func (s *service) GetTotalStats(ctx context.Context) (*domain.TotalStats, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}

	return &domain.TotalStats{
		TotalParticipants:  state.TotalParticipants,
		Remaining:          state.Inventory.Remaining,
		TotalRemaining:     state.Inventory.TotalRemaining,
		TotalInit:          state.Inventory.TotalInit,
		TotalSupply:        domain.TotalSupply,
		LPSupply:           domain.LPSupply,
		PoolRemaining:      state.TokenPoolRemaining,
		DisplayMultipliers: domain.DisplayMultipliers,
		StartTimestamp:     s.cfg.StartAt.UnixNano(),
	}, nil
}

// GetAllParticipants returns the roster in join order with each account's token total
func (s *service) GetAllParticipants(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}

	recs, err := s.repo.GetAccounts(ctx, state.Participants)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadAccount, err)
	}

	out := make([]domain.LeaderboardEntry, 0, len(state.Participants))
	for _, id := range state.Participants {
		amount := domain.ZeroAmount()
		if rec, ok := recs[id]; ok {
			amount = rec.TokenRewardTotal
		}
		out = append(out, domain.LeaderboardEntry{AccountID: id, Amount: amount})
	}
	return out, nil
}

// GetLeaderboards returns both leaderboards
func (s *service) GetLeaderboards(ctx context.Context) (*domain.Leaderboards, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	return &domain.Leaderboards{
		Native: state.NativeLeaderboard,
		Token:  state.TokenLeaderboard,
	}, nil
}

// UserPremiumBoxesLeft returns how many premium boxes account may still receive
func (s *service) UserPremiumBoxesLeft(ctx context.Context, account string) (uint32, error) {
	rec, err := s.repo.GetAccount(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToLoadAccount, err)
	}
	return PremiumBoxesLeft(rec), nil
}

// GrantAdditionalPremium raises the premium quota of account. Owner only.
func (s *service) GrantAdditionalPremium(ctx context.Context, caller, account string, amount uint32) (uint32, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginBoxTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	state, err := tx.GetStateForUpdate(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if err := s.requireOwner(ctx, state, caller); err != nil {
		return 0, err
	}

	rec, err := tx.GetAccountForUpdate(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToLoadAccount, err)
	}
	total, err := grantPremium(rec, amount)
	if err != nil {
		return 0, err
	}
	if err := tx.SaveAccount(ctx, rec); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToSaveAccount, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Info(LogMsgPremiumGranted, LogFieldAccount, account, LogFieldAmount, amount, "additional_total", total)
	return total, nil
}

// EraseTransientState clears the roster and both leaderboards and zeroes the per-tier
// counters. Totals, the token pool and per-account records are kept. Owner only.
func (s *service) EraseTransientState(ctx context.Context, caller string) error {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginBoxTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	state, err := tx.GetStateForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToLoadState, err)
	}
	if err := s.requireOwner(ctx, state, caller); err != nil {
		return err
	}

	state.Participants = []string{}
	state.NativeLeaderboard = []domain.LeaderboardEntry{}
	state.TokenLeaderboard = []domain.LeaderboardEntry{}
	eraseTiers(&state.Inventory)
	state.UpdatedAt = s.now()

	if err := tx.SaveState(ctx, state); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveState, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Warn(LogMsgStateErased, LogFieldCaller, caller)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewStateErasedEvent(caller))
	}
	return nil
}

// Initialize creates the sale state and mints the token supply
func (s *service) Initialize(ctx context.Context, owner string) error {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginBoxTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	state := domain.NewBoxState(owner, s.cfg.Contract, s.now().UTC())
	if err := tx.CreateState(ctx, state); err != nil {
		return err
	}

	if err := token.Mint(ctx, tx, state.ReserveAccount(), domain.RewardPoolSupply); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToMint, err)
	}
	if err := token.Mint(ctx, tx, state.LiquidityAccount(), domain.LPSupply); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToMint, err)
	}
	if _, err := token.Register(ctx, tx, state.BurnAccount()); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToMint, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Info(LogMsgInitialized, "owner", owner, "contract", s.cfg.Contract)
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewTokensMintedEvent(state.ReserveAccount(), domain.RewardPoolSupply, domain.MemoReserveMint))
		s.publisher.PublishWithRetry(ctx, event.NewTokensMintedEvent(state.LiquidityAccount(), domain.LPSupply, domain.MemoLPMint))
	}
	return nil
}

// GetCacheStats returns the reward cache counters
func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}

func (s *service) requireOwner(ctx context.Context, state *domain.BoxState, caller string) error {
	if caller != state.Owner {
		logger.FromContext(ctx).Warn(LogMsgUnauthorized, LogFieldCaller, caller)
		return domain.ErrUnauthorized
	}
	return nil
}
