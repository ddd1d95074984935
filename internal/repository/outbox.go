package repository

import (
	"context"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Outbox defines the interface for the deferred transfer queue
type Outbox interface {
	// ClaimByID moves a pending row to dispatching. It returns nil when the row
	// is missing or already claimed.
	ClaimByID(ctx context.Context, id string) (*domain.PendingTransfer, error)
	// ClaimPending claims up to limit pending rows, oldest first
	ClaimPending(ctx context.Context, limit int) ([]*domain.PendingTransfer, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	// FailStale marks rows still dispatching since before cutoff as failed and
	// returns them. Such rows were claimed by a process that never recorded an outcome.
	FailStale(ctx context.Context, cutoff time.Time, reason string) ([]*domain.PendingTransfer, error)
}
