package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/lootbox"
	"github.com/osse101/BoxLedger_Go/internal/random"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

func createState(t *testing.T, store *Store) *domain.BoxState {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginBoxTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	state := domain.NewBoxState("owner.testnet", "lol.testnet", time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, tx.CreateState(ctx, state))
	require.NoError(t, tx.Commit(ctx))
	return state
}

func TestStore_StateRoundTrip(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	_, err := store.GetState(ctx)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	created := createState(t, store)

	tx, err := store.BeginBoxTx(ctx)
	require.NoError(t, err)
	state, err := tx.GetStateForUpdate(ctx)
	require.NoError(t, err)
	state.Inventory.Remaining[domain.TierLegendary] = 0
	state.TokenPoolRemaining = domain.MustParseAmount("340282366920938463463374607431768211455")
	state.NativeLeaderboard = []domain.LeaderboardEntry{{AccountID: "alice", Amount: domain.Tokens(1000)}}
	state.Participants = []string{"alice", "bob"}
	state.TotalParticipants = 2
	require.NoError(t, tx.SaveState(ctx, state))
	require.NoError(t, tx.Commit(ctx))

	got, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.Owner, got.Owner)
	assert.Equal(t, created.Contract, got.Contract)
	assert.Equal(t, uint32(0), got.Inventory.Remaining[domain.TierLegendary])
	assert.Equal(t, uint32(50000), got.Inventory.TotalInit)
	assert.Equal(t, "340282366920938463463374607431768211455", got.TokenPoolRemaining.String())
	assert.Equal(t, state.NativeLeaderboard, got.NativeLeaderboard)
	assert.Empty(t, got.TokenLeaderboard)
	assert.Equal(t, []string{"alice", "bob"}, got.Participants)
	assert.Equal(t, uint32(2), got.TotalParticipants)
}

func TestStore_CreateStateTwice(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()
	createState(t, store)

	tx, err := store.BeginBoxTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	err = tx.CreateState(ctx, domain.NewBoxState("other", "lol.testnet", time.Now()))
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
}

func TestStore_AccountRecords(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	tx, err := store.BeginBoxTx(ctx)
	require.NoError(t, err)
	rec, err := tx.GetAccountForUpdate(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, rec.BoxesOpened)

	rec.BoxesOpened = 3
	rec.PremiumOpened = 2
	rec.AdditionalPremium = 7
	rec.NativeRewardTotal = domain.Tokens(11)
	rec.TokenRewardTotal = domain.Tokens(250)
	require.NoError(t, tx.SaveAccount(ctx, rec))
	require.NoError(t, tx.Commit(ctx))

	got, err := store.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	recs, err := store.GetAccounts(ctx, []string{"alice", "nobody"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.Tokens(250), recs["alice"].TokenRewardTotal)
}

func TestStore_Balances(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	tx, err := store.BeginTokenTx(ctx)
	require.NoError(t, err)

	created, err := tx.RegisterAccount(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = tx.RegisterAccount(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, tx.SetBalance(ctx, "alice", domain.TotalSupply))
	assert.ErrorIs(t, tx.SetBalance(ctx, "bob", domain.OneToken), domain.ErrAccountNotRegistered)
	require.NoError(t, tx.Commit(ctx))

	bal, registered, err := store.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, registered)
	assert.Equal(t, domain.TotalSupply, bal)

	_, registered, err = store.GetBalance(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, registered)

	supply, err := store.GetTotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TotalSupply, supply)
}

func TestStore_Outbox(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	tx, err := store.BeginTokenTx(ctx)
	require.NoError(t, err)
	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 3; i++ {
		pt := domain.NewPendingTransfer(domain.TransferKindNative, "lol.testnet", fmt.Sprintf("user%d", i),
			domain.OneToken, "", "", base.Add(time.Duration(i)*time.Second))
		ids = append(ids, pt.ID)
		require.NoError(t, tx.EnqueueTransfer(ctx, pt))
	}
	require.NoError(t, tx.Commit(ctx))

	claimed, err := store.ClaimByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, domain.TransferStatusDispatching, claimed.Status)
	assert.Equal(t, 1, claimed.Attempts)
	assert.Equal(t, domain.OneToken, claimed.Amount)

	again, err := store.ClaimByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Nil(t, again)

	batch, err := store.ClaimPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, ids[1], batch[0].ID)
	assert.Equal(t, ids[2], batch[1].ID)

	require.NoError(t, store.MarkFailed(ctx, ids[1], "bank unavailable"))
	require.NoError(t, store.MarkDone(ctx, ids[2]))
	assert.ErrorIs(t, store.MarkDone(ctx, "00000000-0000-0000-0000-000000000000"), domain.ErrTransferNotFound)

	// ids[0] is still dispatching with no outcome
	recent, err := store.FailStale(ctx, time.Now().Add(-time.Hour), "interrupted")
	require.NoError(t, err)
	assert.Empty(t, recent)

	stale, err := store.FailStale(ctx, time.Now().Add(time.Minute), "interrupted")
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, ids[0], stale[0].ID)
	assert.Equal(t, domain.TransferStatusFailed, stale[0].Status)
	assert.Equal(t, "interrupted", stale[0].LastError)
	require.NotNil(t, stale[0].ClaimedAt)

	empty, err := store.ClaimPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestLootbox_ConcurrentOpens drives the box service against Postgres from many goroutines
func TestLootbox_ConcurrentOpens(t *testing.T) {
	store := requireDB(t)
	ctx := context.Background()

	svc := lootbox.NewService(store, random.NewCryptoSource(), nil, nil, lootbox.Config{
		Contract: "lol.testnet",
		Price:    domain.DefaultBoxPrice,
		StartAt:  domain.StartTime(domain.MintStartTimestamp),
	})
	require.NoError(t, svc.Initialize(ctx, "owner.testnet"))

	const opens = 20
	var wg sync.WaitGroup
	errs := make(chan error, opens)
	for i := 0; i < opens; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.OpenBox(ctx, fmt.Sprintf("user%d", i%5), domain.DefaultBoxPrice)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := svc.GetTotalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(50000-opens), stats.TotalRemaining)
	assert.Equal(t, uint32(5), stats.TotalParticipants)

	var tierSum uint32
	for _, n := range stats.Remaining {
		tierSum += n
	}
	assert.Equal(t, stats.TotalRemaining, tierSum)

	supply, err := store.GetTotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TotalSupply, supply)

	var opened uint32
	for i := 0; i < 5; i++ {
		rewards, err := svc.GetUserRewards(ctx, fmt.Sprintf("user%d", i))
		require.NoError(t, err)
		opened += rewards.BoxesOpened
	}
	assert.Equal(t, uint32(opens), opened)
}
