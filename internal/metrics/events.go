package metrics

import (
	"context"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.BoxOpened:
		p, err := event.DecodePayload[event.BoxOpenedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		BoxesOpened.WithLabelValues(TierLabel(p.Tier)).Inc()
		BoxesRemaining.Set(float64(p.TotalRemaining))
		if p.PoolShortfall {
			PoolShortfalls.Inc()
		} else if amt, err := domain.ParseAmount(p.TokenAmount); err == nil {
			TokenRewarded.Add(WholeTokens(amt))
		}
		if amt, err := domain.ParseAmount(p.NativeAmount); err == nil {
			NativePaidOut.Add(WholeTokens(amt))
		}

	case event.TokensTransferred:
		p, err := event.DecodePayload[event.TokensTransferredPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		Transfers.Inc()
		if fee, err := domain.ParseAmount(p.Fee); err == nil {
			FeesBurned.Add(WholeTokens(fee))
		}

	case event.PayoutDispatched, event.PayoutFailed:
		p, err := event.DecodePayload[event.PayoutPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
			return nil
		}
		if evt.Type == event.PayoutDispatched {
			PayoutsDispatched.WithLabelValues(p.Kind).Inc()
		} else {
			PayoutsFailed.WithLabelValues(p.Kind).Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
