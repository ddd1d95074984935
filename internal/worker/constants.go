package worker

import "time"

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultSweepBatch is the number of pending outbox rows one sweep claims
	DefaultSweepBatch = 100
	// DefaultDeliveryTimeout bounds the delivery of one outbox row
	DefaultDeliveryTimeout = 30 * time.Second
	// DefaultStaleClaimAfter is how long a row may stay dispatching before the sweep
	// treats its claimant as dead. It must exceed DefaultDeliveryTimeout.
	DefaultStaleClaimAfter = 10 * DefaultDeliveryTimeout
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Transfer Dispatcher
// ============================================================================

const (
	LogMsgDispatchDeferred    = "Dispatch queue full, transfer left for sweep"
	LogMsgTransferDelivered   = "Deferred transfer delivered"
	LogMsgTransferFailed      = "Deferred transfer failed"
	LogMsgMarkFailedFailed    = "Failed to record transfer outcome"
	LogMsgSweepClaimed        = "Outbox sweep claimed pending transfers"
	LogMsgStaleClaimFailed    = "Transfer stuck in dispatching, marked failed"
	LogMsgUnknownTransferKind = "unknown transfer kind"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrContextFailedToClaim   = "failed to claim transfer"
	ErrContextFailedToSweep   = "failed to sweep outbox"
	ErrContextFailedToDeliver = "failed to deliver transfer"

	// ErrMsgStaleClaim is recorded on rows whose dispatch was interrupted
	ErrMsgStaleClaim = "dispatch interrupted before an outcome was recorded"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
