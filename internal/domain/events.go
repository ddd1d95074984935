package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "box.opened")
const (
	// EventTypeBoxOpened is published after a box open commits
	EventTypeBoxOpened = "box.opened"

	// EventTypeLeaderboardUpdated is published when an open changes either leaderboard
	EventTypeLeaderboardUpdated = "leaderboard.updated"

	// EventTypeTokensTransferred is published after a fee-bearing transfer commits
	EventTypeTokensTransferred = "token.transferred"

	// EventTypeTransferNotified is published when a transfer-with-notification is delivered
	EventTypeTransferNotified = "token.transfer_notified"

	// EventTypeTokensMinted is published for each mint at initialization
	EventTypeTokensMinted = "token.minted"

	// EventTypePayoutDispatched is published when a deferred transfer settles
	EventTypePayoutDispatched = "payout.dispatched"

	// EventTypePayoutFailed is published when a deferred transfer fails
	EventTypePayoutFailed = "payout.failed"

	// EventTypeStateErased is published after the owner wipes the transient state
	EventTypeStateErased = "state.erased"
)
