package domain

import "time"

// BoxInventory tracks the boxes left per reward tier.
// TotalRemaining is the sum of Remaining; TotalPremiumRemaining is the sum of tiers 1-4.
type BoxInventory struct {
	Remaining             [TierCount]uint32 `json:"remaining"`
	TotalInit             uint32            `json:"total_init"`
	TotalRemaining        uint32            `json:"total_remaining"`
	TotalPremiumRemaining uint32            `json:"total_premium_remaining"`
}

// NewBoxInventory returns the inventory every sale starts with.
func NewBoxInventory() BoxInventory {
	inv := BoxInventory{Remaining: InitialRemaining}
	for tier, n := range inv.Remaining {
		inv.TotalInit += n
		if tier != TierCommon {
			inv.TotalPremiumRemaining += n
		}
	}
	inv.TotalRemaining = inv.TotalInit
	return inv
}

// BoxState is the aggregate record shared by every call: inventory, token pool,
// leaderboards, roster and counters.
type BoxState struct {
	Owner              string             `json:"owner"`
	Contract           string             `json:"contract"`
	Inventory          BoxInventory       `json:"inventory"`
	TokenPoolRemaining Amount             `json:"-"`
	NativeLeaderboard  []LeaderboardEntry `json:"native_leaderboard"`
	TokenLeaderboard   []LeaderboardEntry `json:"token_leaderboard"`
	Participants       []string           `json:"participants"`
	TotalParticipants  uint32             `json:"total_participants"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewBoxState builds the initial aggregate for a freshly initialized sale.
func NewBoxState(owner, contract string, now time.Time) *BoxState {
	return &BoxState{
		Owner:              owner,
		Contract:           contract,
		Inventory:          NewBoxInventory(),
		TokenPoolRemaining: RewardPoolSupply,
		NativeLeaderboard:  []LeaderboardEntry{},
		TokenLeaderboard:   []LeaderboardEntry{},
		Participants:       []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ReserveAccount is the account holding the reward pool tokens.
func (s *BoxState) ReserveAccount() string {
	return s.Contract
}

// BurnAccount is the account collecting transfer fees.
func (s *BoxState) BurnAccount() string {
	return BurnAccountPrefix + "." + s.Contract
}

// LiquidityAccount is the account holding the LP supply.
func (s *BoxState) LiquidityAccount() string {
	return LiquidityAccountPrefix + "." + s.Contract
}

// Clone returns a deep copy of the state.
func (s *BoxState) Clone() *BoxState {
	c := *s
	c.NativeLeaderboard = append([]LeaderboardEntry{}, s.NativeLeaderboard...)
	c.TokenLeaderboard = append([]LeaderboardEntry{}, s.TokenLeaderboard...)
	c.Participants = append([]string{}, s.Participants...)
	return &c
}
