// Package observability provides Prometheus metrics, OpenTelemetry spans
// and HTTP middleware for monitoring hfbridge.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// Interceptor outcomes used as the "outcome" label.
const (
	OutcomeRedirected  = "redirected"
	OutcomeFallback    = "fallback"
	OutcomePassthrough = "passthrough"
)

var (
	// RequestsTotal counts HTTP requests served by the local proxy by
	// method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hfbridge_requests_total",
			Help: "Total proxy requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records proxy request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hfbridge_request_duration_seconds",
			Help:    "Proxy request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method"},
	)

	// ProxyInFlight tracks proxy requests currently being served,
	// including open SSE streams.
	ProxyInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hfbridge_proxy_requests_in_flight",
			Help: "Proxy requests being served",
		},
	)

	// StreamsActive tracks the number of in-flight streaming generations.
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hfbridge_streams_active",
			Help: "Active streaming generations",
		},
	)

	// ProviderRequestsTotal counts calls to the inference endpoint by
	// mode (unary/stream) and status (ok/error).
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hfbridge_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "mode", "status"},
	)

	// ProviderLatency records inference endpoint latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hfbridge_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model", "mode"},
	)

	// ProviderTokensTotal counts tokens processed by direction (input/output).
	ProviderTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hfbridge_provider_tokens_total",
			Help: "Token count",
		},
		[]string{"provider", "model", "direction"},
	)

	// InterceptorRequestsTotal counts requests seen by the transport
	// interceptor by outcome.
	InterceptorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hfbridge_interceptor_requests_total",
			Help: "Interceptor requests",
		},
		[]string{"outcome"},
	)

	// InterceptorInstalled is 1 while the redirecting transport is installed.
	InterceptorInstalled = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hfbridge_interceptor_installed",
			Help: "Whether the transport interceptor is installed",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		ProxyInFlight,
		StreamsActive,
		ProviderRequestsTotal,
		ProviderLatency,
		ProviderTokensTotal,
		InterceptorRequestsTotal,
		InterceptorInstalled,
	)
}

// RecordProviderCall records the outcome, latency and token usage of one
// provider call. inputTokens and outputTokens are ignored when err is set.
func RecordProviderCall(provider, model, mode string, seconds float64, inputTokens, outputTokens int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ProviderRequestsTotal.WithLabelValues(provider, model, mode, status).Inc()
	ProviderLatency.WithLabelValues(provider, model, mode).Observe(seconds)
	if err != nil {
		return
	}
	ProviderTokensTotal.WithLabelValues(provider, model, "input").Add(float64(inputTokens))
	ProviderTokensTotal.WithLabelValues(provider, model, "output").Add(float64(outputTokens))
}
