package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/osse101/BoxLedger_Go/internal/logger"
)

// MessageWriter is the subset of *kafka.Writer used by the sink
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink forwards bus events to a Kafka topic as JSON, keyed by account.
// Bus handlers only enqueue; a single goroutine drains the queue to the broker,
// so publishers never wait on Kafka.
type KafkaSink struct {
	writer  MessageWriter
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	queue   chan Event
	done    chan struct{}
	dropped atomic.Uint64
}

// NewKafkaWriter builds a writer for the given brokers and topic
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: KafkaBatchTimeout,
	}
}

// NewKafkaSink creates a sink over writer and starts its forwarding goroutine
func NewKafkaSink(writer MessageWriter) *KafkaSink {
	return newKafkaSink(writer, KafkaQueueSize)
}

func newKafkaSink(writer MessageWriter, queueSize int) *KafkaSink {
	s := &KafkaSink{
		writer:  writer,
		timeout: KafkaWriteTimeout,
		queue:   make(chan Event, queueSize),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Register subscribes the sink to every event type. Handlers never return an
// error, so a broker outage never replays events to the other handlers.
func (s *KafkaSink) Register(bus Bus) {
	for _, t := range AllTypes {
		bus.Subscribe(t, func(ctx context.Context, evt Event) error {
			s.enqueue(ctx, evt)
			return nil
		})
	}
}

// enqueue hands evt to the forwarding goroutine, dropping it when the queue is full
func (s *KafkaSink) enqueue(ctx context.Context, evt Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- evt:
	default:
		s.dropped.Add(1)
		logger.FromContext(ctx).Warn(LogMsgKafkaQueueFull, "event_type", evt.Type)
	}
}

func (s *KafkaSink) run() {
	defer close(s.done)
	for evt := range s.queue {
		_ = s.Forward(context.Background(), evt)
	}
}

// Dropped returns how many events were discarded because the queue was full
func (s *KafkaSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Forward writes one event to the topic and waits for the broker
func (s *KafkaSink) Forward(ctx context.Context, evt Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", evt.Type, err)
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(partitionKey(evt)),
		Value: value,
		Time:  time.Now(),
	}); err != nil {
		logger.FromContext(ctx).Warn(LogMsgKafkaWriteFailed, "event_type", evt.Type, "error", err)
		return err
	}
	return nil
}

// Close stops accepting events, drains the queue and closes the writer
func (s *KafkaSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	if n := s.dropped.Load(); n > 0 {
		slog.Warn(LogMsgKafkaDroppedTotal, "dropped", n)
	}
	return s.writer.Close()
}

// partitionKey keeps one account's events on one partition, in order.
// Events without an account fall back to a fixed per-type key.
func partitionKey(evt Event) string {
	var key string
	switch evt.Type {
	case BoxOpened:
		if p, err := DecodePayload[BoxOpenedPayloadV1](evt.Payload); err == nil {
			key = p.AccountID
		}
	case TokensTransferred:
		if p, err := DecodePayload[TokensTransferredPayloadV1](evt.Payload); err == nil {
			key = p.From
		}
	case TransferNotified:
		if p, err := DecodePayload[TransferNotifiedPayloadV1](evt.Payload); err == nil {
			key = p.From
		}
	case TokensMinted:
		if p, err := DecodePayload[TokensMintedPayloadV1](evt.Payload); err == nil {
			key = p.Owner
		}
	case PayoutDispatched, PayoutFailed:
		if p, err := DecodePayload[PayoutPayloadV1](evt.Payload); err == nil {
			key = p.To
		}
	case StateErased:
		if p, err := DecodePayload[StateErasedPayloadV1](evt.Payload); err == nil {
			key = p.ErasedBy
		}
	case LeaderboardUpdated:
		if p, err := DecodePayload[LeaderboardUpdatedPayloadV1](evt.Payload); err == nil {
			key = "leaderboard." + p.Board
		}
	}
	if key == "" {
		return string(evt.Type)
	}
	return key
}
