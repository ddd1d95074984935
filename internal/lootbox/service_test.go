package lootbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/database/memory"
	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/random"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

const (
	testOwner    = "owner.testnet"
	testContract = "lol.testnet"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingDispatcher struct {
	mu  sync.Mutex
	ids []string
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, id)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc   *service
	store *memory.Store
	pub   *recordingPublisher
	disp  *recordingDispatcher
}

func newFixture(t testing.TB, policy ShortfallPolicy, seed ...byte) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	disp := &recordingDispatcher{}

	svc := NewService(store, random.NewFixedSource(seed...), pub, disp, Config{
		Contract:        testContract,
		Price:           domain.DefaultBoxPrice,
		StartAt:         domain.StartTime(domain.MintStartTimestamp),
		ShortfallPolicy: policy,
	}).(*service)
	svc.now = func() time.Time { return testNow }

	require.NoError(t, svc.Initialize(context.Background(), testOwner))
	pub.events = nil
	return &fixture{svc: svc, store: store, pub: pub, disp: disp}
}

func (f *fixture) reseed(seed ...byte) {
	f.svc.seeds = random.NewFixedSource(seed...)
}

// mutate edits committed state directly, for setting up edge cases
func (f *fixture) mutate(t *testing.T, fn func(ctx context.Context, state *domain.BoxState, tx repository.BoxTx)) {
	t.Helper()
	ctx := context.Background()
	tx, err := f.store.BeginBoxTx(ctx)
	require.NoError(t, err)
	state, err := tx.GetStateForUpdate(ctx)
	require.NoError(t, err)
	fn(ctx, state, tx)
	require.NoError(t, tx.SaveState(ctx, state))
	require.NoError(t, tx.Commit(ctx))
}

func (f *fixture) balance(t *testing.T, account string) domain.Amount {
	t.Helper()
	bal, _, err := f.store.GetBalance(context.Background(), account)
	require.NoError(t, err)
	return bal
}

func TestInitialize_MintsSupply(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit)
	ctx := context.Background()

	supply, err := f.store.GetTotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TotalSupply, supply)
	assert.Equal(t, domain.RewardPoolSupply, f.balance(t, testContract))
	assert.Equal(t, domain.LPSupply, f.balance(t, "liquidity."+testContract))

	_, registered, err := f.store.GetBalance(ctx, "burn."+testContract)
	require.NoError(t, err)
	assert.True(t, registered)

	stats, err := f.svc.GetTotalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(50000), stats.TotalInit)
	assert.Equal(t, uint32(50000), stats.TotalRemaining)
	assert.Equal(t, domain.InitialRemaining, stats.Remaining)
	assert.Equal(t, domain.RewardPoolSupply, stats.PoolRemaining)
	assert.Equal(t, domain.MintStartTimestamp, stats.StartTimestamp)
	assert.Equal(t, "1000", stats.DisplayMultipliers[domain.TierLegendary].String())
}

func TestInitialize_Twice(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit)

	err := f.svc.Initialize(context.Background(), testOwner)
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)

	supply, err := f.store.GetTotalSupply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.TotalSupply, supply)
}

func TestOpenBox_Legendary(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 0)
	ctx := context.Background()

	result, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)

	assert.Equal(t, domain.TierLegendary, result.Tier)
	assert.Equal(t, domain.Tokens(100), result.TokenAmount)
	assert.Equal(t, domain.Tokens(1000), result.NativeAmount)
	assert.False(t, result.PoolShortfall)

	state, err := f.store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), state.Inventory.Remaining[domain.TierLegendary])
	assert.Equal(t, uint32(49999), state.Inventory.TotalRemaining)
	assert.Equal(t, uint32(5550), state.Inventory.TotalPremiumRemaining)
	assert.Equal(t, domain.RewardPoolSupply.Sub(domain.Tokens(100)), state.TokenPoolRemaining)
	assert.Equal(t, []string{"alice"}, state.Participants)
	assert.Equal(t, uint32(1), state.TotalParticipants)

	// the token reward moves from the reserve without a fee
	assert.Equal(t, domain.Tokens(100), f.balance(t, "alice"))
	assert.Equal(t, domain.RewardPoolSupply.Sub(domain.Tokens(100)), f.balance(t, testContract))

	transfers := f.store.Transfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, domain.TransferKindNative, transfers[0].Kind)
	assert.Equal(t, testContract, transfers[0].FromAccount)
	assert.Equal(t, "alice", transfers[0].ToAccount)
	assert.Equal(t, domain.Tokens(1000), transfers[0].Amount)
	assert.Equal(t, []string{transfers[0].ID}, f.disp.ids)

	boards, err := f.svc.GetLeaderboards(ctx)
	require.NoError(t, err)
	require.Len(t, boards.Native, 1)
	assert.Equal(t, domain.LeaderboardEntry{AccountID: "alice", Amount: domain.Tokens(1000)}, boards.Native[0])
	require.Len(t, boards.Token, 1)
	assert.Equal(t, domain.Tokens(100), boards.Token[0].Amount)

	assert.Equal(t, []event.Type{event.BoxOpened, event.LeaderboardUpdated, event.LeaderboardUpdated}, f.pub.types())
}

func TestOpenBox_QuotaExhaustedForcesCommon(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 255, 0)
	ctx := context.Background()

	f.mutate(t, func(ctx context.Context, _ *domain.BoxState, tx repository.BoxTx) {
		rec := domain.NewAccountRecord("alice")
		rec.PremiumOpened = domain.PremiumBoxesPerAccount
		require.NoError(t, tx.SaveAccount(ctx, rec))
	})

	left, err := f.svc.UserPremiumBoxesLeft(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, left)

	result, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)

	assert.Equal(t, domain.TierCommon, result.Tier)
	assert.True(t, result.NativeAmount.IsZero())
	assert.Equal(t, domain.Tokens(9965), result.TokenAmount)
	assert.Empty(t, f.store.Transfers())
	assert.Empty(t, f.disp.ids)

	state, err := f.store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(44448), state.Inventory.Remaining[domain.TierCommon])
	assert.Equal(t, uint32(5551), state.Inventory.TotalPremiumRemaining)
	assert.Empty(t, state.NativeLeaderboard)
}

func TestOpenBox_CommonTokenRange(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 255)

	result, err := f.svc.OpenBox(context.Background(), "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)

	assert.Equal(t, domain.TierCommon, result.Tier)
	assert.Equal(t, domain.Tokens(1000), result.TokenAmount)
}

func TestOpenBox_PoolShortfall(t *testing.T) {
	tests := []struct {
		name      string
		policy    ShortfallPolicy
		wantTotal domain.Amount
	}{
		{"credit keeps the drawn total", ShortfallPolicyCredit, domain.Tokens(100)},
		{"skip leaves the total untouched", ShortfallPolicySkip, domain.ZeroAmount()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.policy, 0, 0)
			ctx := context.Background()

			f.mutate(t, func(_ context.Context, state *domain.BoxState, _ repository.BoxTx) {
				state.TokenPoolRemaining = domain.Tokens(50)
			})

			result, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
			require.NoError(t, err)
			assert.True(t, result.PoolShortfall)
			assert.Equal(t, domain.Tokens(100), result.TokenAmount)

			rewards, err := f.svc.GetUserRewards(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, rewards.TokenTotal)

			state, err := f.store.GetState(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.Tokens(50), state.TokenPoolRemaining)
			assert.Empty(t, state.TokenLeaderboard)

			_, registered, err := f.store.GetBalance(ctx, "alice")
			require.NoError(t, err)
			assert.True(t, registered)
			assert.True(t, f.balance(t, "alice").IsZero())
			assert.Equal(t, domain.RewardPoolSupply, f.balance(t, testContract))
		})
	}
}

func TestOpenBox_ReserveShortFailsWholeOpen(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 0)
	ctx := context.Background()

	f.mutate(t, func(ctx context.Context, _ *domain.BoxState, tx repository.BoxTx) {
		require.NoError(t, tx.SetBalance(ctx, testContract, domain.Tokens(10)))
	})

	_, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	state, err := f.store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(50000), state.Inventory.TotalRemaining)
	assert.Empty(t, state.Participants)
	assert.Empty(t, f.store.Transfers())
	assert.Empty(t, f.pub.types())
}

func TestOpenBox_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payment domain.Amount
		setup   func(state *domain.BoxState)
		startAt time.Time
		wantErr error
	}{
		{
			name:    "payment below price",
			payment: domain.DefaultBoxPrice.Sub(domain.OneUnit()),
			wantErr: domain.ErrInsufficientPayment,
		},
		{
			name:    "payment is checked before stock",
			payment: domain.ZeroAmount(),
			setup:   func(state *domain.BoxState) { state.Inventory.TotalRemaining = 0 },
			wantErr: domain.ErrInsufficientPayment,
		},
		{
			name:    "sold out",
			payment: domain.DefaultBoxPrice,
			setup:   func(state *domain.BoxState) { state.Inventory.TotalRemaining = 0 },
			wantErr: domain.ErrSoldOut,
		},
		{
			name:    "sold out is checked before start time",
			payment: domain.DefaultBoxPrice,
			setup:   func(state *domain.BoxState) { state.Inventory.TotalRemaining = 0 },
			startAt: testNow.Add(time.Hour),
			wantErr: domain.ErrSoldOut,
		},
		{
			name:    "not yet open",
			payment: domain.DefaultBoxPrice,
			startAt: testNow.Add(time.Nanosecond),
			wantErr: domain.ErrNotYetOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, ShortfallPolicyCredit, 0, 0)
			if !tt.startAt.IsZero() {
				f.svc.cfg.StartAt = tt.startAt
			}
			if tt.setup != nil {
				f.mutate(t, func(_ context.Context, state *domain.BoxState, _ repository.BoxTx) {
					tt.setup(state)
				})
			}

			_, err := f.svc.OpenBox(context.Background(), "alice", tt.payment)
			assert.ErrorIs(t, err, tt.wantErr)

			rec, err := f.store.GetAccount(context.Background(), "alice")
			require.NoError(t, err)
			assert.Zero(t, rec.BoxesOpened)
			assert.Empty(t, f.store.Transfers())
		})
	}
}

func TestOpenBox_OpensAtStartTime(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 0)
	f.svc.cfg.StartAt = testNow

	_, err := f.svc.OpenBox(context.Background(), "alice", domain.DefaultBoxPrice)
	assert.NoError(t, err)
}

func TestOpenBox_RegistersStorageOnce(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 255)
	ctx := context.Background()

	_, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)
	_, err = f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)

	assert.Equal(t, domain.Tokens(2000), f.balance(t, "alice"))

	rewards, err := f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rewards.BoxesOpened)
	assert.Equal(t, domain.Tokens(2000), rewards.TokenTotal)

	state, err := f.store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), state.TotalParticipants)
}

func TestOpenBox_EraseThenOpenIsSoldOut(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 0)
	ctx := context.Background()

	_, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)

	require.NoError(t, f.svc.EraseTransientState(ctx, testOwner))

	state, err := f.store.GetState(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Participants)
	assert.Empty(t, state.NativeLeaderboard)
	assert.Empty(t, state.TokenLeaderboard)
	assert.Equal(t, [domain.TierCount]uint32{}, state.Inventory.Remaining)
	assert.Equal(t, uint32(49999), state.Inventory.TotalRemaining)
	assert.Equal(t, uint32(1), state.TotalParticipants)
	assert.Equal(t, domain.RewardPoolSupply.Sub(domain.Tokens(100)), state.TokenPoolRemaining)

	rewards, err := f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Tokens(1000), rewards.NativeTotal)

	_, err = f.svc.OpenBox(ctx, "bob", domain.DefaultBoxPrice)
	assert.ErrorIs(t, err, domain.ErrSoldOut)

	after, err := f.store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(49999), after.Inventory.TotalRemaining)
	assert.Contains(t, f.pub.types(), event.StateErased)
}

func TestOwnerOperations_Unauthorized(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit)
	ctx := context.Background()

	_, err := f.svc.GrantAdditionalPremium(ctx, "mallory", "alice", 5)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.svc.EraseTransientState(ctx, "mallory")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	left, err := f.svc.UserPremiumBoxesLeft(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(domain.PremiumBoxesPerAccount), left)
}

func TestGrantAdditionalPremium(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit)
	ctx := context.Background()

	total, err := f.svc.GrantAdditionalPremium(ctx, testOwner, "alice", 5)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), total)

	total, err = f.svc.GrantAdditionalPremium(ctx, testOwner, "alice", 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), total)

	left, err := f.svc.UserPremiumBoxesLeft(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(108), left)
}

func TestGetUserRewards_CacheInvalidatedByOpen(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 0)
	ctx := context.Background()

	before, err := f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, before.TokenTotal.IsZero())
	assert.Zero(t, before.BoxesOpened)

	_, err = f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	require.NoError(t, err)

	after, err := f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), after.BoxesOpened)
	assert.Equal(t, domain.Tokens(100), after.TokenTotal)
	assert.Equal(t, domain.Tokens(1000), after.NativeTotal)

	_, err = f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 2, Evictions: 1, Size: 1}, f.svc.GetCacheStats())
}

// racingRepo runs after once, right after the first account read returns
type racingRepo struct {
	repository.Box
	once  sync.Once
	after func()
}

func (r *racingRepo) GetAccount(ctx context.Context, account string) (*domain.AccountRecord, error) {
	rec, err := r.Box.GetAccount(ctx, account)
	r.once.Do(r.after)
	return rec, err
}

func TestGetUserRewards_ReadRacingOpenIsNotCached(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 0)
	ctx := context.Background()

	f.svc.repo = &racingRepo{Box: f.store, after: func() {
		_, err := f.svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
		require.NoError(t, err)
	}}

	// the read saw the state before the open committed
	stale, err := f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, stale.BoxesOpened)

	fresh, err := f.svc.GetUserRewards(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), fresh.BoxesOpened)
	assert.Equal(t, domain.Tokens(100), fresh.TokenTotal)
}

func TestRewardCache_FillAfterInvalidateIsDropped(t *testing.T) {
	c := newRewardCache(CacheConfig{Size: 8, TTL: time.Minute})
	old := domain.UserRewards{BoxesOpened: 1}

	gen := c.Generation()
	c.Invalidate("alice")
	assert.False(t, c.Fill("alice", old, gen))
	_, ok := c.Get("alice")
	assert.False(t, ok)

	gen = c.Generation()
	assert.True(t, c.Fill("alice", old, gen))
	got, ok := c.Get("alice")
	require.True(t, ok)
	assert.Equal(t, old, got)
}

func TestGetAllParticipants(t *testing.T) {
	f := newFixture(t, ShortfallPolicyCredit, 0, 255)
	ctx := context.Background()

	for _, acct := range []string{"alice", "bob", "alice"} {
		_, err := f.svc.OpenBox(ctx, acct, domain.DefaultBoxPrice)
		require.NoError(t, err)
	}

	list, err := f.svc.GetAllParticipants(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{AccountID: "alice", Amount: domain.Tokens(2000)},
		{AccountID: "bob", Amount: domain.Tokens(1000)},
	}, list)
}

func TestQueries_NotInitialized(t *testing.T) {
	svc := NewService(memory.NewStore(), random.NewFixedSource(), nil, nil, Config{Contract: testContract})
	ctx := context.Background()

	_, err := svc.GetTotalStats(ctx)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = svc.OpenBox(ctx, "alice", domain.DefaultBoxPrice)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func BenchmarkOpenBox(b *testing.B) {
	ctx := context.Background()
	accounts := make([]string, 256)
	for i := range accounts {
		accounts[i] = fmt.Sprintf("bench%d.near", i)
	}

	f := newFixture(b, ShortfallPolicyCredit)
	f.svc.seeds = random.NewCryptoSource()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := f.svc.OpenBox(ctx, accounts[i%len(accounts)], domain.DefaultBoxPrice)
		if errors.Is(err, domain.ErrSoldOut) {
			b.StopTimer()
			f = newFixture(b, ShortfallPolicyCredit)
			f.svc.seeds = random.NewCryptoSource()
			b.StartTimer()
			continue
		}
		if err != nil {
			b.Fatal(err)
		}
	}
}
