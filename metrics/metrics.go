package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts searches and provider failures per leg. It satisfies the
// orchestrator's metrics interface and is exposed through /metrics.
type Metrics struct {
	searchesStarted prometheus.Counter
	providerErrors  *prometheus.CounterVec
	legDuration     *prometheus.HistogramVec
}

func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		searchesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "searches_started_total",
			Help:      "Number of trip searches started.",
		}),
		providerErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "provider_errors_total",
			Help:      "Number of provider failures per search leg.",
		}, []string{"leg"}),
		legDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tripplanner",
			Name:      "search_leg_duration_seconds",
			Help:      "Duration of a single search leg, including filtering.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"leg"}),
	}
}

func (m *Metrics) IncSearches() {
	m.searchesStarted.Inc()
}

func (m *Metrics) IncProviderErrors(leg string) {
	m.providerErrors.WithLabelValues(leg).Inc()
}

func (m *Metrics) ObserveLegDuration(leg string, d time.Duration) {
	m.legDuration.WithLabelValues(leg).Observe(d.Seconds())
}
