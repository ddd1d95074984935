package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Purchase errors
	ErrMsgInsufficientPayment = "insufficient payment"
	ErrMsgSoldOut             = "no boxes remain"
	ErrMsgNotYetOpen          = "too early to open boxes"

	// Authorization errors
	ErrMsgUnauthorized = "only owner can call this method"

	// Leaderboard errors
	ErrMsgInvalidLeaderboardSelector = "invalid leaderboard selector"

	// Token errors
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgAccountNotRegistered = "account is not registered"
	ErrMsgInvalidAmount        = "invalid amount"
	ErrMsgSelfTransfer         = "sender and receiver should be different"
	ErrMsgAmountOverflow       = "amount overflow"

	// Lifecycle errors
	ErrMsgAlreadyInitialized = "already initialized"
	ErrMsgNotInitialized     = "not initialized"

	// Input errors
	ErrMsgInvalidAccountID = "invalid account id"

	// Outbox errors
	ErrMsgTransferNotFound = "transfer not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Purchase errors
	ErrInsufficientPayment = errors.New(ErrMsgInsufficientPayment)
	ErrSoldOut             = errors.New(ErrMsgSoldOut)
	ErrNotYetOpen          = errors.New(ErrMsgNotYetOpen)

	// Authorization errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// Leaderboard errors
	ErrInvalidLeaderboardSelector = errors.New(ErrMsgInvalidLeaderboardSelector)

	// Token errors
	ErrInsufficientBalance  = errors.New(ErrMsgInsufficientBalance)
	ErrAccountNotRegistered = errors.New(ErrMsgAccountNotRegistered)
	ErrInvalidAmount        = errors.New(ErrMsgInvalidAmount)
	ErrSelfTransfer         = errors.New(ErrMsgSelfTransfer)
	ErrAmountOverflow       = errors.New(ErrMsgAmountOverflow)

	// Lifecycle errors
	ErrAlreadyInitialized = errors.New(ErrMsgAlreadyInitialized)
	ErrNotInitialized     = errors.New(ErrMsgNotInitialized)

	// Input errors
	ErrInvalidAccountID = errors.New(ErrMsgInvalidAccountID)

	// Outbox errors
	ErrTransferNotFound = errors.New(ErrMsgTransferNotFound)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrTxClosed      = errors.New(ErrMsgTxClosed)
)
