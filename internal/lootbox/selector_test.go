package lootbox

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/random"
)

// openedOnce is the inventory the selector sees on the first open: one box already taken
func openedOnce() domain.BoxInventory {
	inv := domain.NewBoxInventory()
	inv.TotalRemaining--
	return inv
}

func TestSelectTier(t *testing.T) {
	emptyLegendary := openedOnce()
	emptyLegendary.Remaining[domain.TierLegendary] = 0

	tests := []struct {
		name     string
		tierByte byte
		inv      domain.BoxInventory
		eligible bool
		want     int
	}{
		{"zero byte hits the rarest tier", 0, openedOnce(), true, domain.TierLegendary},
		{"low byte lands in rare", 1, openedOnce(), true, domain.TierRare},
		{"uncommon band", 6, openedOnce(), true, domain.TierUncommon},
		{"top of uncommon band", 51, openedOnce(), true, domain.TierUncommon},
		{"above premium thresholds", 52, openedOnce(), true, domain.TierCommon},
		{"max byte", 255, openedOnce(), true, domain.TierCommon},
		{"ineligible always common", 0, openedOnce(), false, domain.TierCommon},
		{"empty tier is skipped", 0, emptyLegendary, true, domain.TierEpic},
		{"all tiers empty", 0, domain.BoxInventory{TotalRemaining: 10, TotalPremiumRemaining: 1}, true, domain.TierCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := random.Seed{0, tt.tierByte}
			assert.Equal(t, tt.want, SelectTier(seed, tt.inv, tt.eligible))
		})
	}
}

func TestBasePool(t *testing.T) {
	assert.Equal(t, uint32(27775), basePool(openedOnce()))

	inv := domain.BoxInventory{TotalRemaining: 10}
	inv.Remaining[domain.TierCommon] = 100
	assert.Zero(t, basePool(inv))
}

func TestDrawTokenReward(t *testing.T) {
	tests := []struct {
		name      string
		tokenByte byte
		premium   bool
		want      uint64
	}{
		{"premium floor", 0, true, 100},
		{"premium ceiling", 255, true, 997},
		{"common floor", 0, false, 1000},
		{"common ceiling", 255, false, 9965},
		{"common mid", 128, false, 5500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := random.Seed{tt.tokenByte, 0}
			assert.Equal(t, domain.Tokens(tt.want), DrawTokenReward(seed, tt.premium))
		})
	}
}

func TestNativeReward(t *testing.T) {
	assert.True(t, NativeReward(domain.TierCommon).IsZero())
	assert.Equal(t, "100000000000000000000000", NativeReward(domain.TierUncommon).String())
	assert.Equal(t, domain.OneToken, NativeReward(domain.TierRare))
	assert.Equal(t, domain.Tokens(10), NativeReward(domain.TierEpic))
	assert.Equal(t, domain.Tokens(1000), NativeReward(domain.TierLegendary))
}

func TestApplyNativeReward_Common(t *testing.T) {
	state := domain.NewBoxState(testOwner, testContract, testNow)
	rec := domain.NewAccountRecord("alice")

	amount, err := applyNativeReward(state, rec, domain.TierCommon)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
	assert.Zero(t, rec.PremiumOpened)
	assert.Equal(t, uint32(5551), state.Inventory.TotalPremiumRemaining)
	assert.Empty(t, state.NativeLeaderboard)
}

func TestApplyTokenReward_Overflow(t *testing.T) {
	state := domain.NewBoxState(testOwner, testContract, testNow)
	rec := domain.NewAccountRecord("alice")
	rec.TokenRewardTotal = domain.MustParseAmount("340282366920938463463374607431768211455")

	_, err := applyTokenReward(state, rec, domain.Tokens(1), ShortfallPolicyCredit)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
}

func TestConsumeTier(t *testing.T) {
	inv := domain.NewBoxInventory()
	require.NoError(t, consumeTier(&inv, domain.TierLegendary))
	assert.Zero(t, inv.Remaining[domain.TierLegendary])

	err := consumeTier(&inv, domain.TierLegendary)
	assert.ErrorIs(t, err, domain.ErrSoldOut)
	assert.Contains(t, err.Error(), ErrContextEmptyTier)

	assert.ErrorIs(t, consumeTier(&inv, domain.TierCount), domain.ErrSoldOut)
}

func TestTakeBox(t *testing.T) {
	inv := domain.BoxInventory{TotalRemaining: 1}
	require.NoError(t, takeBox(&inv))
	assert.ErrorIs(t, takeBox(&inv), domain.ErrSoldOut)
}

func TestPremiumEntitlement(t *testing.T) {
	inv := domain.NewBoxInventory()
	rec := domain.NewAccountRecord("alice")

	assert.True(t, IsPremiumEligible(inv, rec))
	assert.Equal(t, uint32(100), PremiumBoxesLeft(rec))

	rec.PremiumOpened = 100
	assert.False(t, IsPremiumEligible(inv, rec))
	assert.Zero(t, PremiumBoxesLeft(rec))

	rec.PremiumOpened = 120
	assert.Zero(t, PremiumBoxesLeft(rec))

	total, err := grantPremium(rec, 25)
	require.NoError(t, err)
	assert.Equal(t, uint32(25), total)
	assert.Equal(t, uint32(5), PremiumBoxesLeft(rec))
	assert.True(t, IsPremiumEligible(inv, rec))

	inv.TotalPremiumRemaining = 0
	assert.False(t, IsPremiumEligible(inv, rec))
}

func TestGrantPremium_Overflow(t *testing.T) {
	rec := domain.NewAccountRecord("alice")
	rec.AdditionalPremium = math.MaxUint32 - domain.PremiumBoxesPerAccount

	_, err := grantPremium(rec, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, uint32(math.MaxUint32-domain.PremiumBoxesPerAccount), rec.AdditionalPremium)
}

func TestValidatePurchase(t *testing.T) {
	start := domain.StartTime(domain.MintStartTimestamp)
	inv := domain.NewBoxInventory()
	price := domain.DefaultBoxPrice

	assert.NoError(t, ValidatePurchase(price, price, start, inv, start))
	assert.NoError(t, ValidatePurchase(domain.Tokens(1), price, start, inv, start))
	assert.ErrorIs(t, ValidatePurchase(price, price, start.Add(-time.Second), inv, start), domain.ErrNotYetOpen)

	empty := domain.BoxInventory{}
	assert.ErrorIs(t, ValidatePurchase(domain.ZeroAmount(), price, start.Add(-time.Second), empty, start), domain.ErrInsufficientPayment)
	assert.ErrorIs(t, ValidatePurchase(price, price, start.Add(-time.Second), empty, start), domain.ErrSoldOut)
}

func TestParseShortfallPolicy(t *testing.T) {
	p, err := ParseShortfallPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ShortfallPolicyCredit, p)

	p, err = ParseShortfallPolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, ShortfallPolicySkip, p)

	_, err = ParseShortfallPolicy("refund")
	assert.Error(t, err)
}

func BenchmarkSelectTier(b *testing.B) {
	inv := openedOnce()
	seed := random.Seed{0, 0x40}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SelectTier(seed, inv, true)
	}
}
