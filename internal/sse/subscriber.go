package sse

import (
	"context"

	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// StreamedTypes are the bus events forwarded to SSE clients
var StreamedTypes = []event.Type{
	event.BoxOpened,
	event.LeaderboardUpdated,
	event.TokensTransferred,
	event.TransferNotified,
	event.StateErased,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(StreamedTypes))
	for _, t := range StreamedTypes {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	logger.FromContext(context.Background()).Info(LogMsgSubscribed, "types", names)
}

// forward relays the typed payload unchanged; it is already JSON friendly
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	delivered := s.hub.Broadcast(string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"clients", delivered)
	return nil
}
