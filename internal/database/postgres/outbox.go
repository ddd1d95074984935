package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

const outboxColumns = `id, kind, from_account, to_account, amount::text, memo, msg, status,
       attempts, last_error, created_at, claimed_at, dispatched_at`

// EnqueueTransfer inserts a pending outbox row
func (t *Tx) EnqueueTransfer(ctx context.Context, pt *domain.PendingTransfer) error {
	id, err := uuid.Parse(pt.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEnqueueTransfer, err)
	}
	_, err = t.tx.Exec(ctx, `
INSERT INTO transfer_outbox (id, kind, from_account, to_account, amount, memo, msg, status, created_at)
VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8, $9)`,
		id, string(pt.Kind), pt.FromAccount, pt.ToAccount, pt.Amount.String(),
		pt.Memo, pt.Msg, string(pt.Status), pt.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEnqueueTransfer, err)
	}
	return nil
}

// ClaimByID moves a pending row to dispatching. Missing or claimed rows return nil.
func (s *Store) ClaimByID(ctx context.Context, id string) (*domain.PendingTransfer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	row := s.db.QueryRow(ctx, `
UPDATE transfer_outbox SET status = $2, attempts = attempts + 1, claimed_at = now()
WHERE id = $1 AND status = $3
RETURNING `+outboxColumns,
		uid, string(domain.TransferStatusDispatching), string(domain.TransferStatusPending))

	pt, err := scanTransfer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pt, nil
}

// ClaimPending claims up to limit pending rows, oldest first. Rows locked by another
// sweeper are skipped.
func (s *Store) ClaimPending(ctx context.Context, limit int) ([]*domain.PendingTransfer, error) {
	rows, err := s.db.Query(ctx, `
UPDATE transfer_outbox SET status = $2, attempts = attempts + 1, claimed_at = now()
WHERE id IN (
    SELECT id FROM transfer_outbox WHERE status = $3
    ORDER BY created_at LIMIT $1
    FOR UPDATE SKIP LOCKED
)
RETURNING `+outboxColumns,
		limit, string(domain.TransferStatusDispatching), string(domain.TransferStatusPending))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToClaimTransfer, err)
	}
	defer rows.Close()

	var out []*domain.PendingTransfer
	for rows.Next() {
		pt, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToClaimTransfer, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// FailStale fails rows dispatching since before cutoff and returns them
func (s *Store) FailStale(ctx context.Context, cutoff time.Time, reason string) ([]*domain.PendingTransfer, error) {
	rows, err := s.db.Query(ctx, `
UPDATE transfer_outbox SET status = $3, last_error = $4, dispatched_at = now()
WHERE status = $2 AND claimed_at <= $1
RETURNING `+outboxColumns,
		cutoff, string(domain.TransferStatusDispatching), string(domain.TransferStatusFailed), reason)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFinishTransfer, err)
	}
	defer rows.Close()

	var out []*domain.PendingTransfer
	for rows.Next() {
		pt, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFinishTransfer, err)
	}
	return out, nil
}

// MarkDone records a completed dispatch
func (s *Store) MarkDone(ctx context.Context, id string) error {
	return s.finish(ctx, id, domain.TransferStatusDone, "")
}

// MarkFailed records a failed dispatch with its reason
func (s *Store) MarkFailed(ctx context.Context, id string, reason string) error {
	return s.finish(ctx, id, domain.TransferStatusFailed, reason)
}

func (s *Store) finish(ctx context.Context, id string, status domain.TransferStatus, reason string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrTransferNotFound
	}
	tag, err := s.db.Exec(ctx,
		"UPDATE transfer_outbox SET status = $2, last_error = $3, dispatched_at = now() WHERE id = $1",
		uid, string(status), reason)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToFinishTransfer, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}
	return nil
}

func scanTransfer(row pgx.Row) (*domain.PendingTransfer, error) {
	var (
		pt           domain.PendingTransfer
		id           uuid.UUID
		kind, status string
		amount       string
		createdAt    time.Time
		claimedAt    *time.Time
		dispatchedAt *time.Time
	)
	err := row.Scan(&id, &kind, &pt.FromAccount, &pt.ToAccount, &amount, &pt.Memo, &pt.Msg,
		&status, &pt.Attempts, &pt.LastError, &createdAt, &claimedAt, &dispatchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToClaimTransfer, err)
	}

	if pt.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	pt.ID = id.String()
	pt.Kind = domain.TransferKind(kind)
	pt.Status = domain.TransferStatus(status)
	pt.CreatedAt = createdAt.UTC()
	if claimedAt != nil {
		t := claimedAt.UTC()
		pt.ClaimedAt = &t
	}
	if dispatchedAt != nil {
		t := dispatchedAt.UTC()
		pt.DispatchedAt = &t
	}
	return &pt, nil
}
