package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/BoxLedger_Go/internal/metrics"
	"github.com/osse101/BoxLedger_Go/internal/sse"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Business BusinessMetrics `json:"business"`
	SSE      SSEMetrics      `json:"sse"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type BusinessMetrics struct {
	BoxesOpenedByTier       map[string]float64 `json:"boxes_opened_by_tier"`
	BoxesRemaining          float64            `json:"boxes_remaining"`
	NativePaidOut           float64            `json:"native_paid_out"`
	TokenRewarded           float64            `json:"token_rewarded"`
	PoolShortfalls          float64            `json:"pool_shortfalls"`
	Transfers               float64            `json:"transfers"`
	FeesBurned              float64            `json:"fees_burned"`
	PayoutsDispatchedByKind map[string]float64 `json:"payouts_dispatched_by_kind"`
	PayoutsFailedByKind     map[string]float64 `json:"payouts_failed_by_kind"`
}

type SSEMetrics struct {
	ClientCount int    `json:"client_count"`
	Dropped     uint64 `json:"dropped"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
	sseHub   *sse.Hub
}

// NewAdminMetricsHandler creates a new admin metrics handler. A nil gatherer reads
// the default registry; a nil hub reports no SSE clients.
func NewAdminMetricsHandler(gatherer prometheus.Gatherer, sseHub *sse.Hub) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer, sseHub: sseHub}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// @Summary Admin metrics
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/metrics [get]
// @Security ApiKeyAuth
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		respondServiceError(w, r, "Gather metrics", err)
		return
	}

	if h.sseHub != nil {
		resp.SSE.ClientCount = h.sseHub.ClientCount()
		resp.SSE.Dropped = h.sseHub.Dropped()
	}

	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Business: BusinessMetrics{
			BoxesOpenedByTier:       make(map[string]float64),
			PayoutsDispatchedByKind: make(map[string]float64),
			PayoutsFailedByKind:     make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			merged := &dto.Histogram{}
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist == nil {
					continue
				}
				count += hist.GetSampleCount()
				sum += hist.GetSampleSum()
				merged.Bucket = mergeBuckets(merged.Bucket, hist.GetBucket())
			}
			if count > 0 {
				resp.HTTP.AvgLatencyMs = sum / float64(count) * 1000
				merged.SampleCount = &count
				resp.HTTP.P95LatencyMs = estimateQuantile(merged, 0.95) * 1000
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			resp.HTTP.InFlight = sumAll(mf)
		case metrics.MetricNameEventsPublished:
			sumByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameBoxesOpened:
			sumByLabel(mf, metrics.LabelTier, resp.Business.BoxesOpenedByTier)
		case metrics.MetricNameBoxesRemaining:
			resp.Business.BoxesRemaining = sumAll(mf)
		case metrics.MetricNameNativePaidOut:
			resp.Business.NativePaidOut = sumAll(mf)
		case metrics.MetricNameTokenRewarded:
			resp.Business.TokenRewarded = sumAll(mf)
		case metrics.MetricNamePoolShortfalls:
			resp.Business.PoolShortfalls = sumAll(mf)
		case metrics.MetricNameTransfers:
			resp.Business.Transfers = sumAll(mf)
		case metrics.MetricNameFeesBurned:
			resp.Business.FeesBurned = sumAll(mf)
		case metrics.MetricNamePayoutsDispatched:
			sumByLabel(mf, metrics.LabelKind, resp.Business.PayoutsDispatchedByKind)
		case metrics.MetricNamePayoutsFailed:
			sumByLabel(mf, metrics.LabelKind, resp.Business.PayoutsFailedByKind)
		}
	}

	return resp, nil
}

// metricValue reads a counter or gauge sample
func metricValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	return m.GetGauge().GetValue()
}

func sumAll(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += metricValue(m)
	}
	return total
}

func sumByLabel(mf *dto.MetricFamily, labelName string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if value := getLabelValue(m, labelName); value != "" {
			into[value] += metricValue(m)
		}
	}
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// mergeBuckets adds the cumulative counts of b into a. Both share the same bounds.
func mergeBuckets(a, b []*dto.Bucket) []*dto.Bucket {
	if len(a) == 0 {
		out := make([]*dto.Bucket, len(b))
		for i, bucket := range b {
			count := bucket.GetCumulativeCount()
			bound := bucket.GetUpperBound()
			out[i] = &dto.Bucket{CumulativeCount: &count, UpperBound: &bound}
		}
		return out
	}
	for i := range a {
		if i >= len(b) {
			break
		}
		count := a[i].GetCumulativeCount() + b[i].GetCumulativeCount()
		a[i].CumulativeCount = &count
	}
	return a
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile

	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
