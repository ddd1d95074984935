package lootbox

import (
	"fmt"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/leaderboard"
	"github.com/osse101/BoxLedger_Go/internal/random"
)

// NativeReward is the native currency paid for a tier. The common tier pays nothing.
func NativeReward(tier int) domain.Amount {
	switch tier {
	case domain.TierUncommon:
		return domain.OneToken.Div64(10)
	case domain.TierRare:
		return domain.OneToken
	case domain.TierEpic:
		return domain.Tokens(10)
	case domain.TierLegendary:
		return domain.Tokens(1000)
	default:
		return domain.ZeroAmount()
	}
}

// DrawTokenReward draws the token reward from the byte at random.OffsetTokenAmount.
// Premium boxes pay [100, 1000) tokens, common boxes [1000, 10000).
func DrawTokenReward(seed random.Seed, premium bool) domain.Amount {
	base, span := uint64(CommonTokenBase), uint32(CommonTokenSpan)
	if premium {
		base, span = PremiumTokenBase, PremiumTokenSpan
	}
	whole := uint64(seed.InRange(random.OffsetTokenAmount, span)) + base
	return domain.Tokens(whole)
}

// applyTokenReward books a token draw against the pool. When the pool covers the
// amount the pool shrinks and the token leaderboard is updated; the caller then moves
// the tokens. When it does not, the account total follows policy and covered is false.
func applyTokenReward(state *domain.BoxState, rec *domain.AccountRecord, amount domain.Amount, policy ShortfallPolicy) (covered bool, err error) {
	covered = state.TokenPoolRemaining.Cmp(amount) >= 0

	if covered || policy != ShortfallPolicySkip {
		total, err := domain.SafeAdd(rec.TokenRewardTotal, amount)
		if err != nil {
			return false, err
		}
		rec.TokenRewardTotal = total
	}

	if !covered {
		return false, nil
	}

	state.TokenPoolRemaining = state.TokenPoolRemaining.Sub(amount)
	if err := leaderboard.Update(state, leaderboard.Token, rec.AccountID, rec.TokenRewardTotal); err != nil {
		return false, err
	}
	return true, nil
}

// applyNativeReward books the native reward of a premium tier: the premium counters,
// the account total and the native leaderboard. It returns the amount to pay out.
func applyNativeReward(state *domain.BoxState, rec *domain.AccountRecord, tier int) (domain.Amount, error) {
	if tier == domain.TierCommon {
		return domain.ZeroAmount(), nil
	}

	amount := NativeReward(tier)
	rec.PremiumOpened++
	consumePremium(&state.Inventory)

	total, err := domain.SafeAdd(rec.NativeRewardTotal, amount)
	if err != nil {
		return domain.ZeroAmount(), err
	}
	rec.NativeRewardTotal = total

	if err := leaderboard.Update(state, leaderboard.Native, rec.AccountID, total); err != nil {
		return domain.ZeroAmount(), err
	}
	return amount, nil
}

// ParseShortfallPolicy maps a config value onto a policy. Empty means credit.
func ParseShortfallPolicy(s string) (ShortfallPolicy, error) {
	switch ShortfallPolicy(s) {
	case "", ShortfallPolicyCredit:
		return ShortfallPolicyCredit, nil
	case ShortfallPolicySkip:
		return ShortfallPolicySkip, nil
	default:
		return "", fmt.Errorf("%s: %q", ErrContextUnknownShortfall, s)
	}
}
