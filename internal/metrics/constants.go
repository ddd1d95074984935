package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameBoxesOpened        = "boxledger_boxes_opened_total"
	MetricNameNativePaidOut      = "boxledger_native_paid_out_tokens_total"
	MetricNameTokenRewarded      = "boxledger_token_rewarded_tokens_total"
	MetricNamePoolShortfalls     = "boxledger_token_pool_shortfalls_total"
	MetricNameTransfers          = "boxledger_token_transfers_total"
	MetricNameFeesBurned         = "boxledger_token_fees_burned_tokens_total"
	MetricNamePayoutsDispatched  = "boxledger_payouts_dispatched_total"
	MetricNamePayoutsFailed      = "boxledger_payouts_failed_total"
	MetricNameBoxesRemaining     = "boxledger_boxes_remaining"
	MetricNameOutboxSweepClaimed = "boxledger_outbox_sweep_claimed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextBoxesOpened        = "Total number of boxes opened by reward tier"
	HelpTextNativePaidOut      = "Native currency awarded from premium boxes, in whole coins"
	HelpTextTokenRewarded      = "Reward tokens moved out of the pool, in whole tokens"
	HelpTextPoolShortfalls     = "Token draws the reward pool could not cover"
	HelpTextTransfers          = "Total number of fee-bearing token transfers"
	HelpTextFeesBurned         = "Transfer fees moved to the burn account, in whole tokens"
	HelpTextPayoutsDispatched  = "Deferred transfers completed by kind"
	HelpTextPayoutsFailed      = "Deferred transfers that failed by kind"
	HelpTextBoxesRemaining     = "Boxes left after the latest open"
	HelpTextOutboxSweepClaimed = "Pending outbox rows picked up by the periodic sweep"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelTier   = "tier"
	LabelKind   = "kind"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
