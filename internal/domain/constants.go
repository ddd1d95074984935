package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reward tier indexes. Tier 0 is the common tier; 1-4 are premium tiers in ascending rarity.
const (
	TierCommon    = 0
	TierUncommon  = 1
	TierRare      = 2
	TierEpic      = 3
	TierLegendary = 4

	// TierCount is the number of reward tiers tracked by the inventory
	TierCount = 5
)

// Box sale limits
const (
	// PremiumBoxesPerAccount is the base premium quota every account starts with
	PremiumBoxesPerAccount = 100

	// RosterCapacity is the maximum number of accounts kept in the participant roster
	RosterCapacity = 500

	// LeaderboardSize is the maximum number of entries in each leaderboard
	LeaderboardSize = 10
)

// MintStartTimestamp is the default opening time of the box sale (2024-01-06 09:00:00 UTC) in nanoseconds.
const MintStartTimestamp int64 = 1704531600000000000

// InitialRemaining is the starting box count per tier.
var InitialRemaining = [TierCount]uint32{44449, 5000, 500, 50, 1}

// DisplayMultipliers are the per-tier native reward multipliers shown to clients.
// They are never used for payout arithmetic.
var DisplayMultipliers = [TierCount]decimal.Decimal{
	decimal.Zero,
	decimal.RequireFromString("0.1"),
	decimal.NewFromInt(1),
	decimal.NewFromInt(10),
	decimal.NewFromInt(1000),
}

// Derived account prefixes, joined with the contract account ("burn.<contract>")
const (
	BurnAccountPrefix      = "burn"
	LiquidityAccountPrefix = "liquidity"
)

// Token metadata
const (
	TokenSpec     = "ft-1.0.0"
	TokenName     = "LOL Memecoin"
	TokenSymbol   = "LOL"
	TokenDecimals = 24
)

// Mint memos
const (
	MemoReserveMint = "Initial tokens supply is minted"
	MemoLPMint      = "LP tokens supply is minted"
)

// StartTime converts a nanosecond timestamp to time.Time.
func StartTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// Account id limits
const (
	MinAccountIDLength = 2
	MaxAccountIDLength = 64
)
