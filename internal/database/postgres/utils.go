package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the same row
// helpers serve reads inside and outside transactions
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NUMERIC(39,0) columns travel as text in both directions: selects cast with ::text
// and parameters are bound as $n::text::numeric.

func parseAmount(s string) (domain.Amount, error) {
	a, err := domain.ParseAmount(s)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("%s: %w", ErrMsgFailedToParseAmount, err)
	}
	return a, nil
}

func toUint32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
