package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "impactviz"

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	// Simulation metrics.
	Simulations    *prometheus.CounterVec // labels: outcome={success,invalid}
	ImpactEnergyMt prometheus.Histogram

	// NEO catalog metrics.
	CatalogRequests    *prometheus.CounterVec // labels: outcome={success,error,dropped}
	CatalogCache       *prometheus.CounterVec // labels: result={hit,miss}
	CatalogAPIDuration prometheus.Histogram

	// Event publishing metrics.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error,dropped}
}

func newMetrics() *Metrics {
	return &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Impact simulations by outcome.",
		}, []string{"outcome"}),
		ImpactEnergyMt: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "impact_energy_megatons",
			Help:      "Kinetic energy of simulated impacts in megatons of TNT.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 10, 12),
		}),
		CatalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "NEO catalog fetches by outcome.",
		}, []string{"outcome"}),
		CatalogCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "NEO catalog cache lookups by result.",
		}, []string{"result"}),
		CatalogAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_api_duration_seconds",
			Help:      "NeoWs API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Simulation events published to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Simulations,
		m.ImpactEnergyMt,
		m.CatalogRequests,
		m.CatalogCache,
		m.CatalogAPIDuration,
		m.EventsPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
