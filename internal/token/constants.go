package token

// Fee split: the recipient gets FeeNumerator/FeeDenominator of the amount, rounded down.
const (
	FeeNumerator   = 99
	FeeDenominator = 100
)

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx   = "failed to begin transaction"
	ErrContextFailedToCommit    = "failed to commit transaction"
	ErrContextFailedToSkimFee   = "failed to move transfer fee"
	ErrContextFailedToMove      = "failed to move tokens"
	ErrContextFailedToQueue     = "failed to queue transfer notification"
	ErrContextFailedToReadTotal = "failed to read total supply"
	ErrContextFailedToRead      = "failed to read balance"
	ErrContextFailedToRegister  = "failed to register account"
)

// Log messages
const (
	LogMsgTransferCompleted  = "Token transfer completed"
	LogMsgAccountRegistered  = "Token account registered"
	LogMsgNotificationQueued = "Transfer notification queued"
)
