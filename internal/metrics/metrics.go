// file: internal/metrics/metrics.go

package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// Decision outcomes and reasons used as metric labels. Reasons are coarse by
// design: they name the failing gateway check, never anything about the
// request contents.
const (
	OutcomeAccept = "accept"
	OutcomeDeny   = "deny"

	ReasonVerified         = "verified"
	ReasonUnknownPath      = "unknown_path"
	ReasonMissingURI       = "missing_original_uri"
	ReasonBadBody          = "bad_body"
	ReasonMissingSignature = "missing_signature"
	ReasonBadSignature     = "bad_signature"
)

// Metrics provides centralized metrics collection for the auth sidecar
type Metrics struct {
	registry *prometheus.Registry

	// Verification decision metrics
	authRequestsTotal    *prometheus.CounterVec
	verificationDuration prometheus.Histogram
	requestDuration      prometheus.Histogram

	// System metrics
	goroutines  prometheus.Gauge
	memoryBytes prometheus.Gauge
}

// NewMetrics creates a new metrics instance with all collectors registered
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,

		authRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_requests_total",
				Help: "Total number of authorization decisions by outcome and reason",
			},
			[]string{"outcome", "reason"},
		),
		verificationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "signature_verification_duration_seconds",
				Help:    "Duration of the Ed25519 verification step",
				Buckets: prometheus.DefBuckets,
			},
		),
		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "auth_request_duration_seconds",
				Help:    "End-to-end duration of authorization requests",
				Buckets: prometheus.DefBuckets,
			},
		),

		goroutines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "goroutines",
				Help: "Number of running goroutines",
			},
		),
		memoryBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "memory_bytes",
				Help: "Current heap memory usage in bytes",
			},
		),
	}

	// Register all collectors
	collectors := []prometheus.Collector{
		m.authRequestsTotal,
		m.verificationDuration,
		m.requestDuration,
		m.goroutines,
		m.memoryBytes,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// GetRegistry returns the Prometheus registry (needed for HTTP handler)
func (m *Metrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Decision metrics
func (m *Metrics) IncAuthRequests(outcome, reason string) {
	m.authRequestsTotal.WithLabelValues(outcome, reason).Inc()
}

func (m *Metrics) ObserveVerificationDuration(seconds float64) {
	m.verificationDuration.Observe(seconds)
}

func (m *Metrics) ObserveRequestDuration(seconds float64) {
	m.requestDuration.Observe(seconds)
}

// System metrics
func (m *Metrics) UpdateSystemMetrics() {
	m.goroutines.Set(float64(runtime.NumGoroutine()))

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	m.memoryBytes.Set(float64(memStats.Alloc))
}
