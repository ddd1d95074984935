package repository

import (
	"context"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Token defines the interface for token ledger persistence
type Token interface {
	BeginTokenTx(ctx context.Context) (TokenTx, error)
	GetBalance(ctx context.Context, account string) (domain.Amount, bool, error)
	GetTotalSupply(ctx context.Context) (domain.Amount, error)
}
