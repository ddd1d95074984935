package leaderboard

import (
	"fmt"
	"sort"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Kind selects one of the two leaderboards.
type Kind int

const (
	// Native ranks accounts by cumulative native-currency rewards
	Native Kind = iota
	// Token ranks accounts by cumulative secondary-token rewards
	Token
)

// String returns the kind name used in logs, events and the API.
func (k Kind) String() string {
	switch k {
	case Native:
		return KindNameNative
	case Token:
		return KindNameToken
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts an API name into a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case KindNameNative:
		return Native, nil
	case KindNameToken:
		return Token, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidLeaderboardSelector, name)
	}
}

// Select resolves kind to the list it names inside state.
func Select(state *domain.BoxState, kind Kind) (*[]domain.LeaderboardEntry, error) {
	switch kind {
	case Native:
		return &state.NativeLeaderboard, nil
	case Token:
		return &state.TokenLeaderboard, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidLeaderboardSelector, kind)
	}
}

// Update records amount for account in the selected leaderboard of state.
func Update(state *domain.BoxState, kind Kind, account string, amount domain.Amount) error {
	list, err := Select(state, kind)
	if err != nil {
		return err
	}
	*list = Apply(*list, account, amount)
	return nil
}

// Apply overwrites the account's entry in place (or appends one), sorts by amount
// descending keeping the relative order of equal amounts, and keeps the top
// domain.LeaderboardSize entries.
func Apply(list []domain.LeaderboardEntry, account string, amount domain.Amount) []domain.LeaderboardEntry {
	found := false
	for i := range list {
		if list[i].AccountID == account {
			list[i].Amount = amount
			found = true
			break
		}
	}
	if !found {
		list = append(list, domain.LeaderboardEntry{AccountID: account, Amount: amount})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Amount.Cmp(list[j].Amount) > 0
	})

	for len(list) > domain.LeaderboardSize {
		list = list[:len(list)-1]
	}
	return list
}
