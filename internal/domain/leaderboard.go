package domain

import "encoding/json"

// LeaderboardEntry is one ranked account with its cumulative amount.
type LeaderboardEntry struct {
	AccountID string
	Amount    Amount
}

type leaderboardEntryJSON struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

// MarshalJSON encodes the amount as a decimal string.
func (e LeaderboardEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(leaderboardEntryJSON{AccountID: e.AccountID, Amount: e.Amount.String()})
}

// UnmarshalJSON decodes an entry written by MarshalJSON.
func (e *LeaderboardEntry) UnmarshalJSON(data []byte) error {
	var raw leaderboardEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := ParseAmount(raw.Amount)
	if err != nil {
		return err
	}
	e.AccountID = raw.AccountID
	e.Amount = amount
	return nil
}
