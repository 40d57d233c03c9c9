package dashboard

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the dashboard subsystem.
type Metrics struct {
	ImportsTotal        *prometheus.CounterVec
	ImportedCases       prometheus.Histogram
	FilterOpsTotal      *prometheus.CounterVec
	NotificationsRaised prometheus.Counter
	SessionsActive      prometheus.Gauge
}

// NewMetrics registers and returns dashboard metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ImportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_imports_total",
			Help: "Total sheet imports by outcome.",
		}, []string{"outcome"}),
		ImportedCases: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "docket_import_cases",
			Help:    "Parsed cases per sheet import.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 .. ~2048
		}),
		FilterOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_filter_ops_total",
			Help: "Total feed filter operations by intent.",
		}, []string{"intent"}),
		NotificationsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docket_notifications_raised_total",
			Help: "Total triage notifications raised across imports.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "docket_sessions_active",
			Help: "Dashboard sessions currently held in memory.",
		}),
	}

	reg.MustRegister(
		m.ImportsTotal,
		m.ImportedCases,
		m.FilterOpsTotal,
		m.NotificationsRaised,
		m.SessionsActive,
	)

	return m
}
