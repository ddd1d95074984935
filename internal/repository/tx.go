package repository

import (
	"context"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TokenTx defines the token ledger operations available inside a transaction.
// Every transaction holds the store-wide serialization lock until it ends.
type TokenTx interface {
	Tx
	// GetBalance returns the balance and whether the account is registered
	GetBalance(ctx context.Context, account string) (domain.Amount, bool, error)
	// RegisterAccount creates a zero balance row; it reports false if the row already existed
	RegisterAccount(ctx context.Context, account string) (bool, error)
	SetBalance(ctx context.Context, account string, amount domain.Amount) error
	// EnqueueTransfer writes a deferred transfer to the outbox
	EnqueueTransfer(ctx context.Context, t *domain.PendingTransfer) error
}

// BoxTx extends TokenTx with the box sale aggregate and the per-account records.
type BoxTx interface {
	TokenTx
	// GetStateForUpdate returns domain.ErrNotInitialized when the sale has no state yet
	GetStateForUpdate(ctx context.Context) (*domain.BoxState, error)
	// CreateState returns domain.ErrAlreadyInitialized when state already exists
	CreateState(ctx context.Context, state *domain.BoxState) error
	SaveState(ctx context.Context, state *domain.BoxState) error
	// GetAccountForUpdate returns a zero record for unknown accounts
	GetAccountForUpdate(ctx context.Context, account string) (*domain.AccountRecord, error)
	SaveAccount(ctx context.Context, rec *domain.AccountRecord) error
}
