package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/BoxLedger_Go/internal/config"
	"github.com/osse101/BoxLedger_Go/internal/event"
	"github.com/osse101/BoxLedger_Go/internal/metrics"
	"github.com/osse101/BoxLedger_Go/internal/sse"
)

// InitializeEventSystem creates the event bus and the resilient publisher in front of it.
// The dead-letter directory is created so events exhausting their retries are kept.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher, err := event.NewResilientPublisher(eventBus, EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	SSEHub   *sse.Hub
	Config   *config.Config
}

// RegisterEventHandlers subscribes the metrics collector, the SSE bridge and,
// when brokers are configured, the Kafka sink. The sink is returned so it can be
// closed on shutdown; it is nil when Kafka export is off.
func RegisterEventHandlers(deps EventHandlerDependencies) (*event.KafkaSink, error) {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)

	if len(deps.Config.KafkaBrokers) == 0 {
		slog.Info(LogMsgKafkaSinkDisabled)
		return nil, nil
	}

	sink := event.NewKafkaSink(event.NewKafkaWriter(deps.Config.KafkaBrokers, deps.Config.KafkaTopic))
	sink.Register(deps.EventBus)
	slog.Info(LogMsgKafkaSinkRegistered, "brokers", deps.Config.KafkaBrokers, "topic", deps.Config.KafkaTopic)

	return sink, nil
}
