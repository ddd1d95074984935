package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// accountIDPattern accepts dot-separated lowercase parts joined by single '-' or '_'
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// IsValidAccountID reports whether id is a well-formed account id.
func IsValidAccountID(id string) bool {
	if len(id) < MinAccountIDLength || len(id) > MaxAccountIDLength {
		return false
	}
	return accountIDPattern.MatchString(id)
}

// ValidateAccountID returns ErrInvalidAccountID for a malformed id.
func ValidateAccountID(id string) error {
	if !IsValidAccountID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountID, id)
	}
	return nil
}

// AccountRecord holds the per-account maps: reward totals, box counters and premium quota.
// A missing record reads as all zero.
type AccountRecord struct {
	AccountID         string `json:"account_id"`
	NativeRewardTotal Amount `json:"-"`
	TokenRewardTotal  Amount `json:"-"`
	BoxesOpened       uint32 `json:"boxes_opened"`
	PremiumOpened     uint32 `json:"premium_opened"`
	AdditionalPremium uint32 `json:"additional_premium"`
}

// NewAccountRecord returns the zero record for an account.
func NewAccountRecord(accountID string) *AccountRecord {
	return &AccountRecord{
		AccountID:         accountID,
		NativeRewardTotal: ZeroAmount(),
		TokenRewardTotal:  ZeroAmount(),
	}
}

// PremiumQuota is the total number of premium boxes the account may receive.
func (r *AccountRecord) PremiumQuota() uint32 {
	return PremiumBoxesPerAccount + r.AdditionalPremium
}

// UserRewards is the reward summary of one account.
type UserRewards struct {
	TokenTotal  Amount
	NativeTotal Amount
	BoxesOpened uint32
}

// OpenBoxResult is returned from a successful box open.
type OpenBoxResult struct {
	Tier         int
	TokenAmount  Amount
	NativeAmount Amount
	// PoolShortfall is set when the token pool could not cover TokenAmount
	PoolShortfall bool
}

// TotalStats is the sale-wide snapshot returned by the stats query.
type TotalStats struct {
	TotalParticipants  uint32
	Remaining          [TierCount]uint32
	TotalRemaining     uint32
	TotalInit          uint32
	TotalSupply        Amount
	LPSupply           Amount
	PoolRemaining      Amount
	DisplayMultipliers [TierCount]decimal.Decimal
	StartTimestamp     int64
}

// Leaderboards holds both top lists.
type Leaderboards struct {
	Native []LeaderboardEntry
	Token  []LeaderboardEntry
}

// TokenMetadata describes the secondary token.
type TokenMetadata struct {
	Spec     string `json:"spec"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}
