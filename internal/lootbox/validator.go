package lootbox

import (
	"fmt"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// ValidatePurchase checks an open request before anything is mutated.
// Checks run in a fixed order: payment, stock, start time.
func ValidatePurchase(payment, price domain.Amount, now time.Time, inv domain.BoxInventory, startAt time.Time) error {
	if payment.Cmp(price) < 0 {
		return fmt.Errorf("%w: attached %s, price %s", domain.ErrInsufficientPayment, payment, price)
	}
	if inv.TotalRemaining == 0 {
		return domain.ErrSoldOut
	}
	if now.Before(startAt) {
		return fmt.Errorf("%w: opens at %s", domain.ErrNotYetOpen, startAt.Format(time.RFC3339))
	}
	return nil
}
