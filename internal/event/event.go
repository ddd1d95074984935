package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types
const (
	BoxOpened          Type = Type(domain.EventTypeBoxOpened)
	LeaderboardUpdated Type = Type(domain.EventTypeLeaderboardUpdated)
	TokensTransferred  Type = Type(domain.EventTypeTokensTransferred)
	TransferNotified   Type = Type(domain.EventTypeTransferNotified)
	TokensMinted       Type = Type(domain.EventTypeTokensMinted)
	PayoutDispatched   Type = Type(domain.EventTypePayoutDispatched)
	PayoutFailed       Type = Type(domain.EventTypePayoutFailed)
	StateErased        Type = Type(domain.EventTypeStateErased)
)

// AllTypes lists every event type published by the service
var AllTypes = []Type{
	BoxOpened,
	LeaderboardUpdated,
	TokensTransferred,
	TransferNotified,
	TokensMinted,
	PayoutDispatched,
	PayoutFailed,
	StateErased,
}

// Typed event payloads. Amounts are decimal strings in the smallest unit.

// BoxOpenedPayloadV1 is the typed payload for box opened events
type BoxOpenedPayloadV1 struct {
	AccountID      string `json:"account_id"`
	Tier           int    `json:"tier"`
	TokenAmount    string `json:"token_amount"`
	NativeAmount   string `json:"native_amount"`
	PoolShortfall  bool   `json:"pool_shortfall,omitempty"`
	TotalRemaining uint32 `json:"total_remaining"`
	Timestamp      int64  `json:"timestamp"`
}

// LeaderboardEntryV1 is one ranked account in a leaderboard event
type LeaderboardEntryV1 struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

// LeaderboardUpdatedPayloadV1 is the typed payload for leaderboard events
type LeaderboardUpdatedPayloadV1 struct {
	Board   string               `json:"board"`
	Entries []LeaderboardEntryV1 `json:"entries"`
}

// TokensTransferredPayloadV1 is the typed payload for fee-bearing transfers
type TokensTransferredPayloadV1 struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Memo      string `json:"memo,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// TransferNotifiedPayloadV1 is delivered to the receiver of a transfer with notification
type TransferNotifiedPayloadV1 struct {
	TransferID string `json:"transfer_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     string `json:"amount"`
	Memo       string `json:"memo,omitempty"`
	Msg        string `json:"msg"`
}

// TokensMintedPayloadV1 is the typed payload for mint events
type TokensMintedPayloadV1 struct {
	Owner  string `json:"owner"`
	Amount string `json:"amount"`
	Memo   string `json:"memo"`
}

// PayoutPayloadV1 is the typed payload for deferred transfer outcomes
type PayoutPayloadV1 struct {
	TransferID string `json:"transfer_id"`
	Kind       string `json:"kind"`
	To         string `json:"to"`
	Amount     string `json:"amount"`
	Error      string `json:"error,omitempty"`
}

// StateErasedPayloadV1 is the typed payload for erase events
type StateErasedPayloadV1 struct {
	ErasedBy  string `json:"erased_by"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewBoxOpenedEvent creates a new box opened event
func NewBoxOpenedEvent(account string, result *domain.OpenBoxResult, totalRemaining uint32) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BoxOpened,
		Payload: BoxOpenedPayloadV1{
			AccountID:      account,
			Tier:           result.Tier,
			TokenAmount:    result.TokenAmount.String(),
			NativeAmount:   result.NativeAmount.String(),
			PoolShortfall:  result.PoolShortfall,
			TotalRemaining: totalRemaining,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"account_id": account,
		},
	}
}

// NewLeaderboardUpdatedEvent creates a new leaderboard event with a copy of the list
func NewLeaderboardUpdatedEvent(board string, list []domain.LeaderboardEntry) Event {
	entries := make([]LeaderboardEntryV1, 0, len(list))
	for _, e := range list {
		entries = append(entries, LeaderboardEntryV1{AccountID: e.AccountID, Amount: e.Amount.String()})
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    LeaderboardUpdated,
		Payload: LeaderboardUpdatedPayloadV1{
			Board:   board,
			Entries: entries,
		},
		Metadata: nil,
	}
}

// NewTokensTransferredEvent creates a new transfer event
func NewTokensTransferredEvent(from, to string, net, fee domain.Amount, memo string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TokensTransferred,
		Payload: TokensTransferredPayloadV1{
			From:      from,
			To:        to,
			Amount:    net.String(),
			Fee:       fee.String(),
			Memo:      memo,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTransferNotifiedEvent creates the notification event for a transfer with message
func NewTransferNotifiedEvent(t *domain.PendingTransfer) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TransferNotified,
		Payload: TransferNotifiedPayloadV1{
			TransferID: t.ID,
			From:       t.FromAccount,
			To:         t.ToAccount,
			Amount:     t.Amount.String(),
			Memo:       t.Memo,
			Msg:        t.Msg,
		},
		Metadata: map[string]interface{}{
			"receiver": t.ToAccount,
		},
	}
}

// NewTokensMintedEvent creates a new mint event
func NewTokensMintedEvent(owner string, amount domain.Amount, memo string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TokensMinted,
		Payload: TokensMintedPayloadV1{
			Owner:  owner,
			Amount: amount.String(),
			Memo:   memo,
		},
		Metadata: nil,
	}
}

// NewPayoutDispatchedEvent creates a new event for a completed deferred transfer
func NewPayoutDispatchedEvent(t *domain.PendingTransfer) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PayoutDispatched,
		Payload: PayoutPayloadV1{
			TransferID: t.ID,
			Kind:       string(t.Kind),
			To:         t.ToAccount,
			Amount:     t.Amount.String(),
		},
		Metadata: nil,
	}
}

// NewPayoutFailedEvent creates a new event for a failed deferred transfer
func NewPayoutFailedEvent(t *domain.PendingTransfer, cause error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PayoutFailed,
		Payload: PayoutPayloadV1{
			TransferID: t.ID,
			Kind:       string(t.Kind),
			To:         t.ToAccount,
			Amount:     t.Amount.String(),
			Error:      cause.Error(),
		},
		Metadata: nil,
	}
}

// NewStateErasedEvent creates a new erase event
func NewStateErasedEvent(erasedBy string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StateErased,
		Payload: StateErasedPayloadV1{
			ErasedBy:  erasedBy,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side of the bus used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously on the publishing goroutine.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe registers a handler for an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
