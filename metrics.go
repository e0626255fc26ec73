package rbac

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded by Metrics.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"
)

// Metrics collects coordinator request metrics, namespaced "rbac_admin":
//
//   - requests_total (counter, labels action, outcome)
//   - request_duration_ms (histogram, label action), measured around the
//     service call including the simulated latency
//   - users (gauge), size of the coordinator list after each mutation
//
// Use a dedicated registry per session to keep instances isolated.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	users    prometheus.Gauge
}

// NewMetrics registers the collectors with registry. A nil registry gets a
// private one of its own, so nothing is exported but repeated calls are safe.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rbac_admin",
			Name:      "requests_total",
			Help:      "Coordinator request actions by outcome",
		}, []string{"action", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rbac_admin",
			Name:      "request_duration_ms",
			Help:      "Service call duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 250, 500, 750, 1000, 2500},
		}, []string{"action"}),
		users: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "rbac_admin",
			Name:      "users",
			Help:      "Number of user records in the coordinator list",
		}),
	}
}

func (m *Metrics) recordRequest(action Action, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(string(action), outcome).Inc()
}

func (m *Metrics) recordDuration(action Action, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(string(action)).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) recordUsers(count int) {
	if m == nil {
		return
	}
	m.users.Set(float64(count))
}
