package lootbox

import "time"

// ============================================================================
// Token Reward Ranges
// ============================================================================

// Token rewards are drawn in whole tokens as Base + InRange(0, Span).
const (
	// PremiumTokenBase is the smallest token reward of a premium box
	PremiumTokenBase = 100
	// PremiumTokenSpan yields premium rewards in [100, 1000)
	PremiumTokenSpan = 900

	// CommonTokenBase is the smallest token reward of a common box
	CommonTokenBase = 1000
	// CommonTokenSpan yields common rewards in [1000, 10000)
	CommonTokenSpan = 9000
)

// ============================================================================
// Pool Shortfall Policy
// ============================================================================

// ShortfallPolicy decides what happens to an account's token total when the
// reward pool cannot cover a draw.
type ShortfallPolicy string

const (
	// ShortfallPolicyCredit credits the drawn amount to the account total even
	// though no tokens move. This keeps totals compatible with the deployed contract.
	ShortfallPolicyCredit ShortfallPolicy = "credit"
	// ShortfallPolicySkip leaves the account total untouched when no tokens move
	ShortfallPolicySkip ShortfallPolicy = "skip"
)

// ============================================================================
// Reward Cache
// ============================================================================

const (
	// DefaultRewardCacheSize is the number of accounts kept in the reward read cache
	DefaultRewardCacheSize = 1024
	// DefaultRewardCacheTTL bounds how long a cached reward summary is served
	DefaultRewardCacheTTL = 30 * time.Second
)

// ============================================================================
// Error Messages
// ============================================================================

// Error context messages for wrapped errors
const (
	ErrContextFailedToBeginTx      = "failed to begin transaction"
	ErrContextFailedToCommit       = "failed to commit transaction"
	ErrContextFailedToLoadState    = "failed to load box state"
	ErrContextFailedToSaveState    = "failed to save box state"
	ErrContextFailedToLoadAccount  = "failed to load account record"
	ErrContextFailedToSaveAccount  = "failed to save account record"
	ErrContextFailedToDrawSeed     = "failed to draw random seed"
	ErrContextFailedToMoveTokens   = "failed to move reward tokens"
	ErrContextFailedToQueuePayout  = "failed to queue native payout"
	ErrContextFailedToRegister     = "failed to register token storage"
	ErrContextFailedToMint         = "failed to mint initial supply"
	ErrContextEmptyTier            = "drawn tier has no boxes left"
	ErrContextPremiumQuotaOverflow = "premium quota would overflow"
	ErrContextUnknownShortfall     = "unknown pool shortfall policy"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	// LogMsgRewardFormat is the per-open reward line: account, tier, token amount, native amount
	LogMsgRewardFormat = "Reward: %s, %d, %s, %s"

	LogMsgPoolShortfall     = "Token pool cannot cover reward"
	LogMsgStorageRegistered = "Registered token storage for first-time opener"
	LogMsgPremiumGranted    = "Additional premium quota granted"
	LogMsgStateErased       = "Transient box state erased"
	LogMsgInitialized       = "Box sale initialized"
	LogMsgDispatchEnqueue   = "Deferred transfer left for sweep"
	LogMsgUnauthorized      = "Owner-only call rejected"
)

// Log field keys for structured logging
const (
	LogFieldAccount = "account"
	LogFieldTier    = "tier"
	LogFieldAmount  = "amount"
	LogFieldPool    = "pool"
	LogFieldCaller  = "caller"
	LogFieldError   = "error"
	LogFieldPolicy  = "policy"
)
