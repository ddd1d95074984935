package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/bank"
	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/metrics"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

var (
	errUnknownKind = errors.New(LogMsgUnknownTransferKind)
	errStaleClaim  = errors.New(ErrMsgStaleClaim)
)

// TransferDispatcher delivers committed outbox rows. Native rows are paid through the
// bank; notify rows are delivered as events. A failed delivery is recorded on the row
// and never retried.
type TransferDispatcher struct {
	outbox     repository.Outbox
	pool       *Pool
	bank       bank.NativeBank
	publisher  event.Publisher
	staleAfter time.Duration
}

// NewTransferDispatcher creates a dispatcher feeding pool. publisher may be nil.
func NewTransferDispatcher(outbox repository.Outbox, pool *Pool, nativeBank bank.NativeBank, publisher event.Publisher) *TransferDispatcher {
	return &TransferDispatcher{
		outbox:     outbox,
		pool:       pool,
		bank:       nativeBank,
		publisher:  publisher,
		staleAfter: DefaultStaleClaimAfter,
	}
}

// Dispatch queues the row with id for delivery. When the queue is full the row stays
// pending and the sweep picks it up.
func (d *TransferDispatcher) Dispatch(ctx context.Context, transferID string) {
	if !d.pool.TryEnqueue(&dispatchJob{d: d, id: transferID}) {
		logger.FromContext(ctx).Warn(LogMsgDispatchDeferred, "transfer_id", transferID)
	}
}

// SweepJob returns a job that fails stale claims, then claims and delivers up to
// batch pending rows
func (d *TransferDispatcher) SweepJob(batch int) Job {
	if batch <= 0 {
		batch = DefaultSweepBatch
	}
	return &sweepJob{d: d, batch: batch}
}

type dispatchJob struct {
	d  *TransferDispatcher
	id string
}

func (j *dispatchJob) Process(ctx context.Context) error {
	pt, err := j.d.outbox.ClaimByID(ctx, j.id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToClaim, err)
	}
	if pt == nil {
		return nil
	}
	return j.d.deliver(ctx, pt)
}

type sweepJob struct {
	d     *TransferDispatcher
	batch int
}

func (j *sweepJob) Process(ctx context.Context) error {
	if err := j.d.failStale(ctx); err != nil {
		return err
	}

	rows, err := j.d.outbox.ClaimPending(ctx, j.batch)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSweep, err)
	}
	if len(rows) == 0 {
		return nil
	}

	logger.FromContext(ctx).Info(LogMsgSweepClaimed, "count", len(rows))
	metrics.OutboxSweepClaimed.Add(float64(len(rows)))

	var errs []error
	for _, pt := range rows {
		if err := j.d.deliver(ctx, pt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// failStale records rows whose claimant died between claim and outcome. The payout
// may or may not have reached the bank, so the row is failed for manual review.
func (d *TransferDispatcher) failStale(ctx context.Context) error {
	rows, err := d.outbox.FailStale(ctx, time.Now().UTC().Add(-d.staleAfter), ErrMsgStaleClaim)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSweep, err)
	}
	log := logger.FromContext(ctx)
	for _, pt := range rows {
		log.Error(LogMsgStaleClaimFailed, "transfer_id", pt.ID, "kind", pt.Kind, "to", pt.ToAccount)
		d.publish(ctx, event.NewPayoutFailedEvent(pt, errStaleClaim))
	}
	return nil
}

// deliver performs one claimed row and records the outcome
func (d *TransferDispatcher) deliver(ctx context.Context, pt *domain.PendingTransfer) error {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, DefaultDeliveryTimeout)
	defer cancel()

	var err error
	switch pt.Kind {
	case domain.TransferKindNative:
		err = d.bank.Pay(ctx, pt.ToAccount, pt.Amount, pt.ID)
	case domain.TransferKindNotify:
		d.publish(ctx, event.NewTransferNotifiedEvent(pt))
	default:
		err = fmt.Errorf("%w: %q", errUnknownKind, pt.Kind)
	}

	if err != nil {
		log.Error(LogMsgTransferFailed, "transfer_id", pt.ID, "kind", pt.Kind, "error", err)
		if markErr := d.outbox.MarkFailed(ctx, pt.ID, err.Error()); markErr != nil {
			log.Error(LogMsgMarkFailedFailed, "transfer_id", pt.ID, "error", markErr)
		}
		d.publish(ctx, event.NewPayoutFailedEvent(pt, err))
		return fmt.Errorf("%s %s: %w", ErrContextFailedToDeliver, pt.ID, err)
	}

	if err := d.outbox.MarkDone(ctx, pt.ID); err != nil {
		log.Error(LogMsgMarkFailedFailed, "transfer_id", pt.ID, "error", err)
	}
	log.Info(LogMsgTransferDelivered, "transfer_id", pt.ID, "kind", pt.Kind, "to", pt.ToAccount)
	d.publish(ctx, event.NewPayoutDispatchedEvent(pt))
	return nil
}

func (d *TransferDispatcher) publish(ctx context.Context, evt event.Event) {
	if d.publisher != nil {
		d.publisher.PublishWithRetry(ctx, evt)
	}
}
