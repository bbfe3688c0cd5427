package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client's Prometheus collectors. Each instance owns its
// registry, so several clients can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Outbound request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec
	Retries         *prometheus.CounterVec

	// Header metrics
	HeaderLines *prometheus.CounterVec

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for quick inspection without a scrape.
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64 // sum of all request durations in seconds
	HeaderLines   int64
}

// NewMetrics creates a collector set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpdata_client_requests_total",
				Help: "Total number of outbound HTTP requests",
			},
			[]string{"method", "host", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "httpdata_client_request_duration_seconds",
				Help:    "Outbound HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "host"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "httpdata_client_response_size_bytes",
				Help:    "Decoded response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "host"},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpdata_client_request_errors_total",
				Help: "Outbound requests that failed before a response was read",
			},
			[]string{"method", "host", "error_type"},
		),
		Retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpdata_client_retries_total",
				Help: "Total number of retried outbound requests",
			},
			[]string{"method", "host"},
		),

		HeaderLines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpdata_header_lines_total",
				Help: "Header lines serialized or parsed",
			},
			[]string{"direction"},
		),

		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpdata_tool_calls_total",
				Help: "Total number of provider tool calls",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "httpdata_tool_duration_seconds",
				Help:    "Provider tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"tool"},
		),
	}
}

// Registry exposes the registry for scraping or gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest records a completed outbound request.
func (m *Metrics) RecordRequest(method, host string, status int, duration time.Duration, respSize int64) {
	code := strconv.Itoa(status)
	m.RequestsTotal.WithLabelValues(method, host, code).Inc()
	m.RequestDuration.WithLabelValues(method, host).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, host).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordError records a request that produced no response.
func (m *Metrics) RecordError(method, host, errorType string) {
	m.RequestErrors.WithLabelValues(method, host, errorType).Inc()

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalErrors++
	m.mu.Unlock()
}

// RecordRetry records one retry attempt.
func (m *Metrics) RecordRetry(method, host string) {
	m.Retries.WithLabelValues(method, host).Inc()
}

// RecordHeaderLines counts header lines; direction is "out" or "in".
func (m *Metrics) RecordHeaderLines(direction string, n int) {
	if n <= 0 {
		return
	}
	m.HeaderLines.WithLabelValues(direction).Add(float64(n))

	m.mu.Lock()
	m.snapshot.HeaderLines += int64(n)
	m.mu.Unlock()
}

// RecordToolCall records a provider tool call.
func (m *Metrics) RecordToolCall(tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// Snapshot returns the running totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Timer measures operation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	tool    string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, tool string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		tool:    tool,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(status string) {
	t.metrics.RecordToolCall(t.tool, status, time.Since(t.start))
}
