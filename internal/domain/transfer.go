package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferKind identifies what a deferred transfer moves.
type TransferKind string

const (
	// TransferKindNative moves native currency to a box winner
	TransferKindNative TransferKind = "native"
	// TransferKindNotify delivers a transfer-with-notification message to the receiver
	TransferKindNotify TransferKind = "notify"
)

// TransferStatus is the lifecycle state of an outbox row.
type TransferStatus string

const (
	TransferStatusPending     TransferStatus = "pending"
	TransferStatusDispatching TransferStatus = "dispatching"
	TransferStatusDone        TransferStatus = "done"
	TransferStatusFailed      TransferStatus = "failed"
)

// PendingTransfer is a value movement queued in the outbox during a call and
// dispatched after the call commits.
type PendingTransfer struct {
	ID           string
	Kind         TransferKind
	FromAccount  string
	ToAccount    string
	Amount       Amount
	Memo         string
	Msg          string
	Status       TransferStatus
	Attempts     int
	LastError    string
	CreatedAt    time.Time
	ClaimedAt    *time.Time
	DispatchedAt *time.Time
}

// NewPendingTransfer builds a pending outbox row with a fresh id.
func NewPendingTransfer(kind TransferKind, from, to string, amount Amount, memo, msg string, now time.Time) *PendingTransfer {
	return &PendingTransfer{
		ID:          uuid.NewString(),
		Kind:        kind,
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Memo:        memo,
		Msg:         msg,
		Status:      TransferStatusPending,
		CreatedAt:   now,
	}
}

// TransferResult describes a committed fee-bearing transfer.
type TransferResult struct {
	From string
	To   string
	Net  Amount
	Fee  Amount
	Memo string

	// NotificationID is the outbox row of a transfer with notification
	NotificationID string
}
