package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion feed, the meteo poller, and the HTTP serving layer.
type Metrics struct {
	ReadingsConsumed prometheus.Counter
	ReadingsAppended prometheus.Counter
	ParseErrors      prometheus.Counter
	FeedRunning      prometheus.Gauge
	StoreSize        prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Meteo source metrics.
	MeteoRequests    *prometheus.CounterVec   // labels: endpoint={marine,weather}, outcome={success,error}
	MeteoCache       *prometheus.CounterVec   // labels: result={hit,miss}
	MeteoAPIDuration *prometheus.HistogramVec // labels: endpoint={marine,weather}
	PollerEnabled    prometheus.Gauge

	// Serving metrics.
	Evaluations         *prometheus.CounterVec   // labels: kind={stats,trend,suitability,sustainability,alerts,risk}
	HTTPRequestDuration *prometheus.HistogramVec // labels: route, status
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReadingsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seastate",
			Name:      "readings_consumed_total",
			Help:      "Total raw readings read from the live feed.",
		}),
		ReadingsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seastate",
			Name:      "readings_appended_total",
			Help:      "Total observations appended to the snapshot store.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seastate",
			Name:      "parse_errors_total",
			Help:      "Total raw readings skipped due to parse failures.",
		}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seastate",
			Name:      "feed_running",
			Help:      "1 when the live feed is active, 0 when shut down.",
		}),
		StoreSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seastate",
			Name:      "store_observations",
			Help:      "Observations currently held in the snapshot store.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seastate",
			Name:      "batch_size",
			Help:      "Number of readings per batch extracted from the feed.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seastate",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete extract-parse-append cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		MeteoRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seastate",
			Name:      "meteo_requests_total",
			Help:      "Meteo API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		MeteoCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seastate",
			Name:      "meteo_cache_total",
			Help:      "Meteo response cache lookups by result.",
		}, []string{"result"}),
		MeteoAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seastate",
			Name:      "meteo_api_duration_seconds",
			Help:      "Meteo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		PollerEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seastate",
			Name:      "poller_enabled",
			Help:      "1 when the meteo poller is enabled, 0 otherwise.",
		}),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seastate",
			Name:      "evaluations_total",
			Help:      "Engine evaluations served, by kind.",
		}, []string{"kind"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "seastate",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}

	prometheus.MustRegister(
		m.ReadingsConsumed,
		m.ReadingsAppended,
		m.ParseErrors,
		m.FeedRunning,
		m.StoreSize,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.MeteoRequests,
		m.MeteoCache,
		m.MeteoAPIDuration,
		m.PollerEnabled,
		m.Evaluations,
		m.HTTPRequestDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReadingsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seastate", Name: "readings_consumed_total"}),
		ReadingsAppended:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seastate", Name: "readings_appended_total"}),
		ParseErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seastate", Name: "parse_errors_total"}),
		FeedRunning:             prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seastate", Name: "feed_running"}),
		StoreSize:               prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seastate", Name: "store_observations"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seastate", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seastate", Name: "batch_processing_duration_seconds"}),
		MeteoRequests:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seastate", Name: "meteo_requests_total"}, []string{"endpoint", "outcome"}),
		MeteoCache:              prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seastate", Name: "meteo_cache_total"}, []string{"result"}),
		MeteoAPIDuration:        prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "seastate", Name: "meteo_api_duration_seconds"}, []string{"endpoint"}),
		PollerEnabled:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seastate", Name: "poller_enabled"}),
		Evaluations:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seastate", Name: "evaluations_total"}, []string{"kind"}),
		HTTPRequestDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "seastate", Name: "http_request_duration_seconds"}, []string{"route", "status"}),
	}
}
