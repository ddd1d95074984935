package repository

import (
	"context"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Box defines the interface for box sale persistence
type Box interface {
	BeginBoxTx(ctx context.Context) (BoxTx, error)
	GetState(ctx context.Context) (*domain.BoxState, error)
	GetAccount(ctx context.Context, account string) (*domain.AccountRecord, error)
	// GetAccounts returns the records of the given accounts; unknown accounts are omitted
	GetAccounts(ctx context.Context, accounts []string) (map[string]*domain.AccountRecord, error)
}
