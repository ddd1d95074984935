package roster

import "github.com/osse101/BoxLedger_Go/internal/domain"

// Add records account as a participant of state.
// A new account is appended and counted in TotalParticipants; once the roster holds more
// than domain.RosterCapacity accounts the oldest one is evicted. The lifetime counter is
// never decremented. Returns true when the account was new to the roster.
func Add(state *domain.BoxState, account string) bool {
	if Contains(state.Participants, account) {
		return false
	}

	state.Participants = append(state.Participants, account)
	state.TotalParticipants++

	if len(state.Participants) > domain.RosterCapacity {
		state.Participants = state.Participants[1:]
	}
	return true
}

// Contains reports whether account is in the roster.
func Contains(participants []string, account string) bool {
	for _, p := range participants {
		if p == account {
			return true
		}
	}
	return false
}
