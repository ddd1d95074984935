package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	BoxesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBoxesOpened,
			Help: HelpTextBoxesOpened,
		},
		[]string{LabelTier},
	)

	NativePaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNativePaidOut,
			Help: HelpTextNativePaidOut,
		},
	)

	TokenRewarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokenRewarded,
			Help: HelpTextTokenRewarded,
		},
	)

	PoolShortfalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePoolShortfalls,
			Help: HelpTextPoolShortfalls,
		},
	)

	Transfers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTransfers,
			Help: HelpTextTransfers,
		},
	)

	FeesBurned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFeesBurned,
			Help: HelpTextFeesBurned,
		},
	)

	PayoutsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutsDispatched,
			Help: HelpTextPayoutsDispatched,
		},
		[]string{LabelKind},
	)

	PayoutsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutsFailed,
			Help: HelpTextPayoutsFailed,
		},
		[]string{LabelKind},
	)

	BoxesRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBoxesRemaining,
			Help: HelpTextBoxesRemaining,
		},
	)

	OutboxSweepClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOutboxSweepClaimed,
			Help: HelpTextOutboxSweepClaimed,
		},
	)
)

// TierLabel renders a tier index as a label value
func TierLabel(tier int) string {
	return strconv.Itoa(tier)
}

// WholeTokens converts an amount into a float for counters
func WholeTokens(a domain.Amount) float64 {
	return domain.ToWholeTokens(a).InexactFloat64()
}
