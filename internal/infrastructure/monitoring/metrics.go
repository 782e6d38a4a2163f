package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rendezvous outcome labels
const (
	OutcomeResolved        = "resolved"
	OutcomeSuperseded      = "superseded"
	OutcomeCanceled        = "canceled"
	OutcomeUnmatchedReturn = "unmatched_return"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Stack metrics
	StackDepth         prometheus.Gauge
	StackMutations     *prometheus.CounterVec
	SnapshotsDelivered prometheus.Counter
	Subscribers        prometheus.Gauge

	// Rendezvous metrics
	RendezvousOutcomes *prometheus.CounterVec
	RendezvousPending  prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navd_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "navd_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),

		StackDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navd_stack_depth",
				Help: "Current depth of the page stack",
			},
		),
		StackMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navd_stack_mutations_total",
				Help: "Total number of stack mutations",
			},
			[]string{"op"},
		),
		SnapshotsDelivered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "navd_snapshots_delivered_total",
				Help: "Total number of snapshots delivered to subscribers",
			},
		),
		Subscribers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navd_stack_subscribers",
				Help: "Number of active stack subscribers",
			},
		),

		RendezvousOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navd_rendezvous_total",
				Help: "Total number of rendezvous outcomes",
			},
			[]string{"outcome"},
		),
		RendezvousPending: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navd_rendezvous_pending",
				Help: "Whether a rendezvous waiter is pending (0 or 1)",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navd_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navd_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "navd_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordMutation records a stack mutation and the resulting depth
func (m *Metrics) RecordMutation(op string, depth int) {
	m.StackMutations.WithLabelValues(op).Inc()
	m.StackDepth.Set(float64(depth))
}

// RecordSnapshot records a snapshot delivery to one subscriber
func (m *Metrics) RecordSnapshot() {
	m.SnapshotsDelivered.Inc()
}

// SetSubscribers sets the active subscriber count
func (m *Metrics) SetSubscribers(count int) {
	m.Subscribers.Set(float64(count))
}

// RecordRendezvous records a rendezvous outcome
func (m *Metrics) RecordRendezvous(outcome string) {
	m.RendezvousOutcomes.WithLabelValues(outcome).Inc()
}

// SetRendezvousPending sets the pending slot gauge
func (m *Metrics) SetRendezvousPending(pending bool) {
	if pending {
		m.RendezvousPending.Set(1)
	} else {
		m.RendezvousPending.Set(0)
	}
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
