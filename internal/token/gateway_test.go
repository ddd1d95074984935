package token

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/database/memory"
	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
)

const (
	testContract = "lol.testnet"
	testBurn     = "burn.lol.testnet"
)

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
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.events = append(p.events, evt)
}

// seed registers the reserve, the burn account and the given balances
func seed(t testing.TB, store *memory.Store, reserve domain.Amount, balances map[string]domain.Amount) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTokenTx(ctx)
	require.NoError(t, err)
	require.NoError(t, Mint(ctx, tx, testContract, reserve))
	_, err = Register(ctx, tx, testBurn)
	require.NoError(t, err)
	for acct, bal := range balances {
		require.NoError(t, Mint(ctx, tx, acct, bal))
	}
	require.NoError(t, tx.Commit(ctx))
}

func balanceOf(t *testing.T, g Gateway, account string) domain.Amount {
	t.Helper()
	bal, err := g.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	return bal
}

func TestFeeFor(t *testing.T) {
	tests := []struct {
		name    string
		amount  domain.Amount
		wantFee domain.Amount
		wantNet domain.Amount
	}{
		{"round thousand", domain.MustParseAmount("1000"), domain.MustParseAmount("10"), domain.MustParseAmount("990")},
		{"whole tokens", domain.Tokens(1000), domain.Tokens(10), domain.Tokens(990)},
		{"fraction rounds fee up", domain.MustParseAmount("150"), domain.MustParseAmount("2"), domain.MustParseAmount("148")},
		{"tiny amount is all fee", domain.MustParseAmount("1"), domain.MustParseAmount("1"), domain.ZeroAmount()},
		{"zero", domain.ZeroAmount(), domain.ZeroAmount(), domain.ZeroAmount()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, net := FeeFor(tt.amount)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantNet, net)
			assert.Equal(t, tt.amount, fee.Add(net))
		})
	}
}

func TestTransfer_SkimsFeeFromReserve(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, domain.Tokens(100), map[string]domain.Amount{"alice": domain.Tokens(5000), "bob": domain.ZeroAmount()})
	pub := &recordingPublisher{}
	g := NewGateway(store, testContract, pub, nil)

	res, err := g.Transfer(context.Background(), "alice", "bob", domain.Tokens(1000), "gift")
	require.NoError(t, err)

	assert.Equal(t, domain.Tokens(10), res.Fee)
	assert.Equal(t, domain.Tokens(990), res.Net)
	assert.Equal(t, domain.Tokens(10), balanceOf(t, g, testBurn))
	assert.Equal(t, domain.Tokens(990), balanceOf(t, g, "bob"))
	assert.Equal(t, domain.Tokens(4010), balanceOf(t, g, "alice"))
	assert.Equal(t, domain.Tokens(90), balanceOf(t, g, testContract))

	require.Len(t, pub.events, 1)
	assert.Equal(t, event.TokensTransferred, pub.events[0].Type)
}

func TestTransfer_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		reserve   domain.Amount
		caller    string
		recipient string
		amount    domain.Amount
		wantErr   error
	}{
		{"zero amount", domain.Tokens(100), "alice", "bob", domain.ZeroAmount(), domain.ErrInvalidAmount},
		{"net rounds to zero", domain.Tokens(100), "alice", "bob", domain.MustParseAmount("1"), domain.ErrInvalidAmount},
		{"self transfer", domain.Tokens(100), "alice", "alice", domain.Tokens(1), domain.ErrSelfTransfer},
		{"reserve cannot pay fee", domain.ZeroAmount(), "alice", "bob", domain.Tokens(100), domain.ErrInsufficientBalance},
		{"caller balance too low", domain.Tokens(100), "alice", "bob", domain.Tokens(6000), domain.ErrInsufficientBalance},
		{"recipient not registered", domain.Tokens(100), "alice", "carol", domain.Tokens(10), domain.ErrAccountNotRegistered},
		{"caller not registered", domain.Tokens(100), "dave", "bob", domain.Tokens(10), domain.ErrAccountNotRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			seed(t, store, tt.reserve, map[string]domain.Amount{"alice": domain.Tokens(5000), "bob": domain.ZeroAmount()})
			g := NewGateway(store, testContract, nil, nil)
			supplyBefore, err := g.TotalSupply(context.Background())
			require.NoError(t, err)

			_, err = g.Transfer(context.Background(), tt.caller, tt.recipient, tt.amount, "")
			assert.ErrorIs(t, err, tt.wantErr)

			// nothing persisted
			assert.Equal(t, domain.Tokens(5000), balanceOf(t, g, "alice"))
			assert.True(t, balanceOf(t, g, testBurn).IsZero())
			assert.Equal(t, tt.reserve, balanceOf(t, g, testContract))
			supplyAfter, err := g.TotalSupply(context.Background())
			require.NoError(t, err)
			assert.Equal(t, supplyBefore, supplyAfter)
		})
	}
}

func TestTransferWithNotification_QueuesNotification(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, domain.Tokens(100), map[string]domain.Amount{"alice": domain.Tokens(5000), "dex": domain.ZeroAmount()})
	d := &recordingDispatcher{}
	g := NewGateway(store, testContract, nil, d)

	res, err := g.TransferWithNotification(context.Background(), "alice", "dex", domain.Tokens(1000), "", `{"action":"swap"}`)
	require.NoError(t, err)
	require.NotEmpty(t, res.NotificationID)

	assert.Equal(t, []string{res.NotificationID}, d.ids)
	rows := store.Transfers()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.TransferKindNotify, rows[0].Kind)
	assert.Equal(t, domain.TransferStatusPending, rows[0].Status)
	assert.Equal(t, `{"action":"swap"}`, rows[0].Msg)
	assert.Equal(t, domain.Tokens(990), rows[0].Amount)
}

func TestTransferWithNotification_FailureQueuesNothing(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, domain.Tokens(100), map[string]domain.Amount{"alice": domain.Tokens(1)})
	d := &recordingDispatcher{}
	g := NewGateway(store, testContract, nil, d)

	_, err := g.TransferWithNotification(context.Background(), "alice", "dex", domain.Tokens(1), "", "msg")
	assert.ErrorIs(t, err, domain.ErrAccountNotRegistered)
	assert.Empty(t, d.ids)
	assert.Empty(t, store.Transfers())
}

func TestRegisterAccount_Idempotent(t *testing.T) {
	g := NewGateway(memory.NewStore(), testContract, nil, nil)

	created, err := g.RegisterAccount(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = g.RegisterAccount(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestBalanceOf_UnregisteredIsZero(t *testing.T) {
	g := NewGateway(memory.NewStore(), testContract, nil, nil)
	assert.True(t, balanceOf(t, g, "nobody").IsZero())
}

func TestTotalSupply_ConservedByTransfers(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, domain.Tokens(100), map[string]domain.Amount{"alice": domain.Tokens(5000), "bob": domain.ZeroAmount()})
	g := NewGateway(store, testContract, nil, nil)

	for i := 0; i < 5; i++ {
		_, err := g.Transfer(context.Background(), "alice", "bob", domain.MustParseAmount("123456789"), "")
		require.NoError(t, err)
	}

	total, err := g.TotalSupply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Tokens(5100), total)
}

func TestMetadata(t *testing.T) {
	md := NewGateway(memory.NewStore(), testContract, nil, nil).Metadata()
	assert.Equal(t, "LOL", md.Symbol)
	assert.Equal(t, 24, md.Decimals)
	assert.Equal(t, "ft-1.0.0", md.Spec)
}

func BenchmarkTransfer(b *testing.B) {
	store := memory.NewStore()
	seed(b, store, domain.Tokens(100), map[string]domain.Amount{
		"alice": domain.Tokens(1_000_000_000),
		"bob":   domain.ZeroAmount(),
	})
	g := NewGateway(store, testContract, &recordingPublisher{}, nil)
	amount := domain.MustParseAmount("1000")
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Transfer(ctx, "alice", "bob", amount, ""); err != nil {
			b.Fatal(err)
		}
	}
}
