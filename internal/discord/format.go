package discord

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// nativeSymbol labels native coin amounts; they share the token's 24 decimals
const nativeSymbol = "NEAR"

var titleCaser = cases.Title(language.English)

// tierNames label the reward tiers from common to legendary
var tierNames = [domain.TierCount]string{"common", "uncommon", "rare", "epic", "legendary"}

// tierName returns the display name of tier, or "tier N" when out of range
func tierName(tier int) string {
	if tier < 0 || tier >= domain.TierCount {
		return fmt.Sprintf("tier %d", tier)
	}
	return titleCaser.String(tierNames[tier])
}

// boardName turns a leaderboard selector such as "native" into a heading
func boardName(board string) string {
	return titleCaser.String(strings.ReplaceAll(board, "_", " "))
}

// formatAmount renders a smallest-unit decimal string as whole units with the
// given symbol. Malformed input is shown unchanged.
func formatAmount(raw, symbol string) string {
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		return raw
	}
	return domain.FormatTokens(amount) + " " + symbol
}

// formatLeaderboard renders ranked entries one per line
func formatLeaderboard(entries []domain.LeaderboardEntry, symbol string) string {
	if len(entries) == 0 {
		return MsgNoEntries
	}

	var sb strings.Builder
	for rank, e := range entries {
		medal := fmt.Sprintf("%d.", rank+1)
		switch rank {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		fmt.Fprintf(&sb, "%s **%s** %s %s\n", medal, e.AccountID, domain.FormatTokens(e.Amount), symbol)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
