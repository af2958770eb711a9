package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream request outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
)

// Metrics holds the collectors exported by coinfeed.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	UpstreamRequests  *prometheus.CounterVec
	UpstreamDuration  *prometheus.HistogramVec
	SnapshotsRecorded prometheus.Counter
	SnapshotFailures  prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coinfeed",
				Name:      "upstream_requests_total",
				Help:      "Upstream HTTP requests by service and outcome.",
			},
			[]string{"service", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "coinfeed",
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),
		SnapshotsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coinfeed",
			Name:      "snapshots_recorded_total",
			Help:      "Top-coin snapshots handed to the snapshot handler.",
		}),
		SnapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coinfeed",
			Name:      "snapshot_failures_total",
			Help:      "Top-coin snapshots the handler failed to store.",
		}),
	}

	reg.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.SnapshotsRecorded,
		m.SnapshotFailures,
	)

	return m
}

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream request.
func (m *Metrics) ObserveUpstream(service, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(service, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(service).Observe(d.Seconds())
}

// SnapshotRecorded counts a stored snapshot.
func (m *Metrics) SnapshotRecorded() {
	if m == nil {
		return
	}
	m.SnapshotsRecorded.Inc()
}

// SnapshotFailed counts a snapshot the handler rejected.
func (m *Metrics) SnapshotFailed() {
	if m == nil {
		return
	}
	m.SnapshotFailures.Inc()
}
