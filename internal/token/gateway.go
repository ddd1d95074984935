package token

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/logger"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

// Dispatcher hands a committed outbox row to the transfer workers
type Dispatcher interface {
	Dispatch(ctx context.Context, transferID string)
}

// Gateway defines the fee-bearing token interface
type Gateway interface {
	Transfer(ctx context.Context, caller, recipient string, amount domain.Amount, memo string) (*domain.TransferResult, error)
	TransferWithNotification(ctx context.Context, caller, recipient string, amount domain.Amount, memo, msg string) (*domain.TransferResult, error)
	BalanceOf(ctx context.Context, account string) (domain.Amount, error)
	TotalSupply(ctx context.Context) (domain.Amount, error)
	Metadata() domain.TokenMetadata
	RegisterAccount(ctx context.Context, account string) (bool, error)
}

type gateway struct {
	repo       repository.Token
	contract   string
	publisher  event.Publisher
	dispatcher Dispatcher
	now        func() time.Time
}

// NewGateway creates a gateway for the token held in reserve by contract.
// publisher and dispatcher may be nil.
func NewGateway(repo repository.Token, contract string, publisher event.Publisher, dispatcher Dispatcher) Gateway {
	return &gateway{
		repo:       repo,
		contract:   contract,
		publisher:  publisher,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (g *gateway) burnAccount() string {
	return domain.BurnAccountPrefix + "." + g.contract
}

// Transfer moves amount minus the burn fee from caller to recipient
func (g *gateway) Transfer(ctx context.Context, caller, recipient string, amount domain.Amount, memo string) (*domain.TransferResult, error) {
	return g.transfer(ctx, caller, recipient, amount, memo, nil)
}

// TransferWithNotification transfers like Transfer and queues a notification carrying msg
// for the recipient
func (g *gateway) TransferWithNotification(ctx context.Context, caller, recipient string, amount domain.Amount, memo, msg string) (*domain.TransferResult, error) {
	return g.transfer(ctx, caller, recipient, amount, memo, &msg)
}

func (g *gateway) transfer(ctx context.Context, caller, recipient string, amount domain.Amount, memo string, msg *string) (*domain.TransferResult, error) {
	log := logger.FromContext(ctx)

	fee, net := FeeFor(amount)
	if net.IsZero() {
		return nil, fmt.Errorf("%w: the amount should be a positive number", domain.ErrInvalidAmount)
	}
	if caller == recipient {
		return nil, domain.ErrSelfTransfer
	}

	tx, err := g.repo.BeginTokenTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// The fee is paid out of the contract reserve, not by the caller.
	if err := Move(ctx, tx, g.contract, g.burnAccount(), fee); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSkimFee, err)
	}
	if err := Move(ctx, tx, caller, recipient, net); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToMove, err)
	}

	result := &domain.TransferResult{From: caller, To: recipient, Net: net, Fee: fee, Memo: memo}

	var notification *domain.PendingTransfer
	if msg != nil {
		notification = domain.NewPendingTransfer(domain.TransferKindNotify, caller, recipient, net, memo, *msg, g.now())
		if err := tx.EnqueueTransfer(ctx, notification); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToQueue, err)
		}
		result.NotificationID = notification.ID
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}

	log.Info(LogMsgTransferCompleted, "from", caller, "to", recipient, "net", net.String(), "fee", fee.String())

	if notification != nil && g.dispatcher != nil {
		log.Debug(LogMsgNotificationQueued, "transfer_id", notification.ID)
		g.dispatcher.Dispatch(ctx, notification.ID)
	}
	if g.publisher != nil {
		g.publisher.PublishWithRetry(ctx, event.NewTokensTransferredEvent(caller, recipient, net, fee, memo))
	}

	return result, nil
}

// BalanceOf returns the balance of account; unregistered accounts hold zero
func (g *gateway) BalanceOf(ctx context.Context, account string) (domain.Amount, error) {
	balance, _, err := g.repo.GetBalance(ctx, account)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("%s: %w", ErrContextFailedToRead, err)
	}
	return balance, nil
}

// TotalSupply returns the sum of all balances
func (g *gateway) TotalSupply(ctx context.Context) (domain.Amount, error) {
	total, err := g.repo.GetTotalSupply(ctx)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("%s: %w", ErrContextFailedToReadTotal, err)
	}
	return total, nil
}

// Metadata describes the token
func (g *gateway) Metadata() domain.TokenMetadata {
	return domain.TokenMetadata{
		Spec:     domain.TokenSpec,
		Name:     domain.TokenName,
		Symbol:   domain.TokenSymbol,
		Decimals: domain.TokenDecimals,
	}
}

// RegisterAccount creates a zero balance for account. Registering twice is not an error.
func (g *gateway) RegisterAccount(ctx context.Context, account string) (bool, error) {
	tx, err := g.repo.BeginTokenTx(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	created, err := Register(ctx, tx, account)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}
	if created {
		logger.FromContext(ctx).Info(LogMsgAccountRegistered, "account", account)
	}
	return created, nil
}
