package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

// Store implements repository.Box, repository.Token and repository.Outbox for PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

var (
	_ repository.Box    = (*Store)(nil)
	_ repository.Token  = (*Store)(nil)
	_ repository.Outbox = (*Store)(nil)
)

// Tx implements repository.BoxTx and repository.TokenTx
type Tx struct {
	tx pgx.Tx
}

// begin opens a transaction holding the ledger lock until it ends, so mutating
// calls run one at a time across every service instance
func (s *Store) begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", LedgerLockKey); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAcquireLedgerLock, err)
	}
	return &Tx{tx: tx}, nil
}

// BeginBoxTx starts a new transaction
func (s *Store) BeginBoxTx(ctx context.Context) (repository.BoxTx, error) {
	return s.begin(ctx)
}

// BeginTokenTx starts a new transaction
func (s *Store) BeginTokenTx(ctx context.Context) (repository.TokenTx, error) {
	return s.begin(ctx)
}

// Commit commits the transaction
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction. Rolling back a finished transaction
// reports domain.ErrTxClosed.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return err
	}
	return nil
}

// Ping checks the pool can reach the database
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
