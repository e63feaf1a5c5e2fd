package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec

	upstreamCallsTotal   *prometheus.CounterVec
	upstreamCallDuration *prometheus.HistogramVec

	priceSourceAttempts *prometheus.CounterVec
	priceFallbackTotal  prometheus.Counter

	enrichmentFailures *prometheus.CounterVec
	tokensEnriched     prometheus.Histogram
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"handler", "method", "status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by handler, method and status class",
			},
			[]string{"handler", "method", "status"},
		),
		upstreamCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_calls_total",
				Help: "Total number of outbound calls to third-party APIs by service, operation and status",
			},
			[]string{"service", "operation", "status"},
		),
		upstreamCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_call_duration_seconds",
				Help:    "Duration of outbound calls to third-party APIs in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"service", "operation"},
		),
		priceSourceAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "native_price_source_attempts_total",
				Help: "Native price cascade attempts by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		priceFallbackTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "native_price_fallback_total",
				Help: "Number of times every price source failed and the constant fallback was served",
			},
		),
		enrichmentFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_enrichment_failures_total",
				Help: "Per-token enrichment sub-call failures by part",
			},
			[]string{"part"},
		),
		tokensEnriched: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wallet_snapshot_tokens",
				Help:    "Number of tokens enriched per wallet snapshot",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request with duration.
func (m *Metrics) RecordHTTPRequest(handler, method string, statusCode int, duration float64) {
	if m == nil {
		return
	}
	status := statusCodeToString(statusCode)
	m.httpRequestDuration.WithLabelValues(handler, method, status).Observe(duration)
	m.httpRequestsTotal.WithLabelValues(handler, method, status).Inc()
}

// RecordUpstreamCall records an outbound API call with duration.
func (m *Metrics) RecordUpstreamCall(service, operation string, err error, duration float64) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.upstreamCallsTotal.WithLabelValues(service, operation, status).Inc()
	m.upstreamCallDuration.WithLabelValues(service, operation).Observe(duration)
}

// RecordPriceSource records one cascade step. Outcome is success, cached, failure or skipped.
func (m *Metrics) RecordPriceSource(source, outcome string) {
	if m == nil {
		return
	}
	m.priceSourceAttempts.WithLabelValues(source, outcome).Inc()
}

// RecordPriceFallback records that the constant fallback price was served.
func (m *Metrics) RecordPriceFallback() {
	if m == nil {
		return
	}
	m.priceFallbackTotal.Inc()
}

// RecordEnrichmentFailure records a failed price or metadata sub-call.
func (m *Metrics) RecordEnrichmentFailure(part string) {
	if m == nil {
		return
	}
	m.enrichmentFailures.WithLabelValues(part).Inc()
}

// RecordTokensEnriched records how many tokens one snapshot enriched.
func (m *Metrics) RecordTokensEnriched(count int) {
	if m == nil {
		return
	}
	m.tokensEnriched.Observe(float64(count))
}

func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "unknown"
	}
}
