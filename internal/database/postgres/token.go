package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// GetBalance returns the committed balance of account and whether it is registered
func (s *Store) GetBalance(ctx context.Context, account string) (domain.Amount, bool, error) {
	return getBalance(ctx, s.db, account, "")
}

// GetTotalSupply sums every committed balance
func (s *Store) GetTotalSupply(ctx context.Context) (domain.Amount, error) {
	var total string
	err := s.db.QueryRow(ctx, "SELECT COALESCE(SUM(balance), 0)::text FROM token_balances").Scan(&total)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("%s: %w", ErrMsgFailedToSumSupply, err)
	}
	return parseAmount(total)
}

// GetBalance locks and returns the balance of account
func (t *Tx) GetBalance(ctx context.Context, account string) (domain.Amount, bool, error) {
	return getBalance(ctx, t.tx, account, " FOR UPDATE")
}

// RegisterAccount inserts a zero balance when the account has none
func (t *Tx) RegisterAccount(ctx context.Context, account string) (bool, error) {
	tag, err := t.tx.Exec(ctx,
		"INSERT INTO token_balances (account_id) VALUES ($1) ON CONFLICT (account_id) DO NOTHING",
		account)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToRegisterAccount, err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetBalance overwrites the balance of a registered account
func (t *Tx) SetBalance(ctx context.Context, account string, amount domain.Amount) error {
	tag, err := t.tx.Exec(ctx,
		"UPDATE token_balances SET balance = $2::text::numeric WHERE account_id = $1",
		account, amount.String())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotRegistered, account)
	}
	return nil
}

func getBalance(ctx context.Context, q querier, account, suffix string) (domain.Amount, bool, error) {
	var balance string
	err := q.QueryRow(ctx, "SELECT balance::text FROM token_balances WHERE account_id = $1"+suffix, account).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ZeroAmount(), false, nil
		}
		return domain.ZeroAmount(), false, fmt.Errorf("%s: %w", ErrMsgFailedToLoadBalance, err)
	}
	amount, err := parseAmount(balance)
	if err != nil {
		return domain.ZeroAmount(), false, err
	}
	return amount, true, nil
}
