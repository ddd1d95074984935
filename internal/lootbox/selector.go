package lootbox

import (
	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/random"
)

// basePool is the draw range of the tier selector: the boxes left minus half of
// the common boxes, which tilts the draw towards premium tiers.
func basePool(inv domain.BoxInventory) uint32 {
	half := inv.Remaining[domain.TierCommon] / 2
	if half > inv.TotalRemaining {
		return 0
	}
	return inv.TotalRemaining - half
}

// SelectTier draws a reward tier from the byte at random.OffsetTier.
// Ineligible accounts always get the common tier. Otherwise the drawn value is
// checked against the cumulative counts of the rarest tiers first.
func SelectTier(seed random.Seed, inv domain.BoxInventory, eligible bool) int {
	if !eligible {
		return domain.TierCommon
	}

	value := seed.InRange(random.OffsetTier, basePool(inv))

	var threshold uint32
	for tier := domain.TierLegendary; tier > domain.TierCommon; tier-- {
		threshold += inv.Remaining[tier]
		if value < threshold {
			return tier
		}
	}
	return domain.TierCommon
}
