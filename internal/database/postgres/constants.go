package postgres

// Serialization lock
const (
	// LedgerLockKey is the pg_advisory_xact_lock key every mutating transaction takes
	LedgerLockKey int64 = 0x426f784c6564 // "BoxLed"

	// stateRowID is the primary key of the singleton box_state row
	stateRowID = 1
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToAcquireLedgerLock = "failed to acquire ledger lock"
)

// Error Messages - Box State
const (
	ErrMsgFailedToLoadState   = "failed to load box state"
	ErrMsgFailedToInsertState = "failed to insert box state"
	ErrMsgFailedToUpdateState = "failed to update box state"
	ErrMsgFailedToEncodeState = "failed to encode box state"
	ErrMsgFailedToDecodeState = "failed to decode box state"
)

// Error Messages - Account Records
const (
	ErrMsgFailedToLoadAccount   = "failed to load account record"
	ErrMsgFailedToLoadAccounts  = "failed to load account records"
	ErrMsgFailedToUpsertAccount = "failed to upsert account record"
)

// Error Messages - Token Balances
const (
	ErrMsgFailedToLoadBalance     = "failed to load token balance"
	ErrMsgFailedToRegisterAccount = "failed to register token account"
	ErrMsgFailedToUpdateBalance   = "failed to update token balance"
	ErrMsgFailedToSumSupply       = "failed to sum token supply"
)

// Error Messages - Outbox
const (
	ErrMsgFailedToEnqueueTransfer = "failed to enqueue transfer"
	ErrMsgFailedToClaimTransfer   = "failed to claim transfer"
	ErrMsgFailedToFinishTransfer  = "failed to finish transfer"
	ErrMsgFailedToParseAmount     = "failed to parse stored amount"
)
