package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Box operation error messages
	ErrMsgOpenBoxFailed         = "Failed to open box"
	ErrMsgGetRewardsFailed      = "Failed to retrieve rewards"
	ErrMsgGetStatsFailed        = "Failed to retrieve stats"
	ErrMsgGetParticipantsFailed = "Failed to retrieve participants"
	ErrMsgGetLeaderboardsFailed = "Failed to retrieve leaderboards"
	ErrMsgGetPremiumLeftFailed  = "Failed to retrieve premium boxes left"
	ErrMsgGrantPremiumFailed    = "Failed to grant premium boxes"
	ErrMsgEraseStateFailed      = "Failed to erase state"

	// Token operation error messages
	ErrMsgTransferFailed   = "Failed to transfer tokens"
	ErrMsgRegisterFailed   = "Failed to register account"
	ErrMsgGetBalanceFailed = "Failed to retrieve balance"
	ErrMsgGetSupplyFailed  = "Failed to retrieve total supply"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgStateErasedSuccess       = "Transient state erased successfully"
	MsgAccountRegisteredSuccess = "Account registered successfully"
	MsgAccountAlreadyRegistered = "Account is already registered"
)
