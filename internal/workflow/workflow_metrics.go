package workflow

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the intake lanes.
type Metrics struct {
	LanesTotal     *prometheus.CounterVec
	LaneDuration   *prometheus.HistogramVec
	RefreshesTotal *prometheus.CounterVec
}

// NewMetrics registers and returns lane metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LanesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_lanes_total",
			Help: "Total lane runs by lane and outcome.",
		}, []string{"lane", "outcome"}),
		LaneDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_lane_duration_seconds",
			Help:    "Duration of lane runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms .. ~25s
		}, []string{"lane"}),
		RefreshesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_dashboard_refreshes_total",
			Help: "Background dashboard refreshes by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.LanesTotal,
		m.LaneDuration,
		m.RefreshesTotal,
	)

	return m
}

// Hooks returns orchestrator hooks that increment the corresponding metrics.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnLane: func(lane, outcome string, duration float64) {
			m.LanesTotal.WithLabelValues(lane, outcome).Inc()
			m.LaneDuration.WithLabelValues(lane).Observe(duration)
		},
		OnRefreshDone: func(err error) {
			outcome := OutcomeSuccess
			if err != nil {
				outcome = OutcomeError
			}
			m.RefreshesTotal.WithLabelValues(outcome).Inc()
		},
	}
}
