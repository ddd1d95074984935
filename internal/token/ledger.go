package token

import (
	"context"
	"fmt"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

// FeeFor splits amount into the burn fee and the net amount the recipient receives:
// net = amount*99/100 rounded down, fee = amount - net.
func FeeFor(amount domain.Amount) (fee, net domain.Amount) {
	q := amount.Div64(FeeDenominator)
	rem := amount.Sub(q.Mul64(FeeDenominator))
	fee = q
	if !rem.IsZero() {
		fee = fee.Add(domain.OneUnit())
	}
	return fee, amount.Sub(fee)
}

// Register creates a zero balance for account. It reports whether a new row was created.
func Register(ctx context.Context, tx repository.TokenTx, account string) (bool, error) {
	created, err := tx.RegisterAccount(ctx, account)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToRegister, err)
	}
	return created, nil
}

// Credit adds amount to a registered account.
func Credit(ctx context.Context, tx repository.TokenTx, account string, amount domain.Amount) error {
	balance, registered, err := tx.GetBalance(ctx, account)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRead, err)
	}
	if !registered {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotRegistered, account)
	}
	next, err := domain.SafeAdd(balance, amount)
	if err != nil {
		return err
	}
	return tx.SetBalance(ctx, account, next)
}

// Debit removes amount from a registered account.
func Debit(ctx context.Context, tx repository.TokenTx, account string, amount domain.Amount) error {
	balance, registered, err := tx.GetBalance(ctx, account)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRead, err)
	}
	if !registered {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotRegistered, account)
	}
	next, err := domain.SafeSub(balance, amount)
	if err != nil {
		return fmt.Errorf("%w (account %s)", err, account)
	}
	return tx.SetBalance(ctx, account, next)
}

// Move transfers amount between two registered accounts without a fee.
// The recipient is checked first so a failed move never debits the sender.
func Move(ctx context.Context, tx repository.TokenTx, from, to string, amount domain.Amount) error {
	if _, registered, err := tx.GetBalance(ctx, to); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRead, err)
	} else if !registered {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotRegistered, to)
	}
	if err := Debit(ctx, tx, from, amount); err != nil {
		return err
	}
	return Credit(ctx, tx, to, amount)
}

// Mint registers owner when needed and credits amount to it.
func Mint(ctx context.Context, tx repository.TokenTx, owner string, amount domain.Amount) error {
	if _, err := Register(ctx, tx, owner); err != nil {
		return err
	}
	return Credit(ctx, tx, owner, amount)
}
