package lootbox

import (
	"fmt"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// takeBox removes one box from the sale total. It runs before the tier draw,
// so the draw sees the already decremented total.
func takeBox(inv *domain.BoxInventory) error {
	if inv.TotalRemaining == 0 {
		return domain.ErrSoldOut
	}
	inv.TotalRemaining--
	return nil
}

// consumeTier removes the drawn box from its tier counter.
func consumeTier(inv *domain.BoxInventory, tier int) error {
	if tier < 0 || tier >= domain.TierCount || inv.Remaining[tier] == 0 {
		return fmt.Errorf("%w: %s (tier %d)", domain.ErrSoldOut, ErrContextEmptyTier, tier)
	}
	inv.Remaining[tier]--
	return nil
}

// consumePremium removes one box from the premium total.
func consumePremium(inv *domain.BoxInventory) {
	if inv.TotalPremiumRemaining > 0 {
		inv.TotalPremiumRemaining--
	}
}

// eraseTiers zeroes the per-tier counters. Aggregate totals are left as they are.
func eraseTiers(inv *domain.BoxInventory) {
	inv.Remaining = [domain.TierCount]uint32{}
}
