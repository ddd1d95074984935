package event

import (
	"context"
	"errors"
	"testing"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestNewBoxOpenedEvent_FormatsAmounts(t *testing.T) {
	result := &domain.OpenBoxResult{
		Tier:         domain.TierLegendary,
		TokenAmount:  domain.Tokens(150),
		NativeAmount: domain.Tokens(1000),
	}

	evt := NewBoxOpenedEvent("alice.testnet", result, 49999)

	payload, err := DecodePayload[BoxOpenedPayloadV1](evt.Payload)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if payload.TokenAmount != "150000000000000000000000000" {
		t.Errorf("unexpected token amount %s", payload.TokenAmount)
	}
	if payload.Tier != domain.TierLegendary || payload.TotalRemaining != 49999 {
		t.Errorf("unexpected payload %+v", payload)
	}
	if evt.GetMetadataValue("account_id") != "alice.testnet" {
		t.Errorf("missing account metadata")
	}
}

func TestNewLeaderboardUpdatedEvent_CopiesEntries(t *testing.T) {
	list := []domain.LeaderboardEntry{{AccountID: "a", Amount: domain.Tokens(2)}}
	evt := NewLeaderboardUpdatedEvent("token", list)
	list[0].AccountID = "changed"

	payload := evt.Payload.(LeaderboardUpdatedPayloadV1)
	if payload.Entries[0].AccountID != "a" {
		t.Errorf("event shares memory with the leaderboard")
	}
}
