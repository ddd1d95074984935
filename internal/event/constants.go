package event

import "time"

// EventSchemaVersion is stamped on every event built by the constructors
const EventSchemaVersion = "1.0"

// Retry queue
const (
	RetryQueueBufferSize = 1000
)

// Dead letter file
const (
	DeadLetterFilePermissions = 0644

	// DeadLetterLineBuffer and DeadLetterMaxLine size the replay scanner.
	// Leaderboard events carry up to a hundred entries, so lines can exceed bufio's default.
	DeadLetterLineBuffer = 64 * 1024
	DeadLetterMaxLine    = 1024 * 1024
)

// Kafka sink
const (
	// KafkaWriteTimeout bounds a single write to the broker
	KafkaWriteTimeout = 5 * time.Second
	// KafkaBatchTimeout caps how long the writer holds a partial batch
	KafkaBatchTimeout = 10 * time.Millisecond
	// KafkaQueueSize is the number of events buffered between the bus and the broker
	KafkaQueueSize = 1024
)

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgKafkaWriteFailed      = "Failed to forward event to Kafka"
	LogMsgKafkaQueueFull        = "Kafka queue full, event dropped"
	LogMsgKafkaDroppedTotal     = "Kafka sink dropped events"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles baseDelay for every attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
