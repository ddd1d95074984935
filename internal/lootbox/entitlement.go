package lootbox

import (
	"fmt"
	"math"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// IsPremiumEligible reports whether an open by rec may draw a premium tier.
func IsPremiumEligible(inv domain.BoxInventory, rec *domain.AccountRecord) bool {
	return inv.TotalPremiumRemaining > 0 && rec.PremiumOpened < rec.PremiumQuota()
}

// PremiumBoxesLeft is the remaining premium quota of rec, never below zero.
func PremiumBoxesLeft(rec *domain.AccountRecord) uint32 {
	quota := rec.PremiumQuota()
	if rec.PremiumOpened >= quota {
		return 0
	}
	return quota - rec.PremiumOpened
}

// grantPremium adds amount to the additional quota and returns the new additional quota.
func grantPremium(rec *domain.AccountRecord, amount uint32) (uint32, error) {
	if uint64(rec.AdditionalPremium)+uint64(amount)+domain.PremiumBoxesPerAccount > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, ErrContextPremiumQuotaOverflow)
	}
	rec.AdditionalPremium += amount
	return rec.AdditionalPremium, nil
}
