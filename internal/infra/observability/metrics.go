package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics of the desk client.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	apiDuration *prometheus.HistogramVec
	apiErrors   *prometheus.CounterVec
	loads       *prometheus.CounterVec
	renders     *prometheus.CounterVec
	mutations   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		apiDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ardesk_api_request_duration_seconds",
				Help:    "Duration of receivables API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		apiErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardesk_api_errors_total",
				Help: "Failed receivables API calls by operation and error kind.",
			},
			[]string{"operation", "kind"},
		),
		loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardesk_page_loads_total",
				Help: "Page load cycles by page and result.",
			},
			[]string{"page", "result"},
		),
		renders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardesk_renders_total",
				Help: "View renders by view.",
			},
			[]string{"view"},
		),
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ardesk_mutations_total",
				Help: "Create, delete and settle actions by action and result.",
			},
			[]string{"action", "result"},
		),
	}
}

// RecordAPIDuration records the duration of an API call.
func (m *Metrics) RecordAPIDuration(operation string, d time.Duration) {
	m.apiDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrAPIError increments the API error counter.
func (m *Metrics) IncrAPIError(operation, kind string) {
	m.apiErrors.WithLabelValues(operation, kind).Inc()
}

// IncrLoad counts a load cycle; result is "success" or "error".
func (m *Metrics) IncrLoad(page, result string) {
	m.loads.WithLabelValues(page, result).Inc()
}

// IncrRender counts a render of the given view.
func (m *Metrics) IncrRender(view string) {
	m.renders.WithLabelValues(view).Inc()
}

// IncrMutation counts a mutation; result is "success", "error" or "cancelled".
func (m *Metrics) IncrMutation(action, result string) {
	m.mutations.WithLabelValues(action, result).Inc()
}

// LoadCount returns how many load cycles ended with result on page.
func (m *Metrics) LoadCount(page, result string) float64 {
	return getCounterValue(m.loads, page, result)
}

// RenderCount returns how many times view was rendered.
func (m *Metrics) RenderCount(view string) float64 {
	return getCounterValue(m.renders, view)
}

// MutationCount returns how many mutations of action ended with result.
func (m *Metrics) MutationCount(action, result string) float64 {
	return getCounterValue(m.mutations, action, result)
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
