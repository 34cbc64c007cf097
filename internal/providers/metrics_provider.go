package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hnblocks/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveUpstreamDuration(outcome string, duration time.Duration)
	AddRejectedStories(count int)
	ObservePersistenceDuration(duration time.Duration)
	SetLastRefresh(t time.Time)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	upstreamDuration    *prometheus.HistogramVec
	rejectedStories     prometheus.Counter
	persistenceDuration prometheus.Histogram
	lastRefresh         prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveUpstreamDuration(outcome string, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *MetricsProvider) AddRejectedStories(count int) {
	m.rejectedStories.Add(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetLastRefresh(t time.Time) {
	m.lastRefresh.Set(float64(t.Unix()))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hnblocks_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hnblocks_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hnblocks_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hnblocks_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hnblocks_upstream_duration_seconds",
			Help:    "Duration of upstream search requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),

		rejectedStories: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hnblocks_upstream_rejected_stories_total",
			Help: "Upstream records dropped by schema validation",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hnblocks_settings_persistence_duration_seconds",
			Help:    "Duration of settings persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		lastRefresh: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "hnblocks_last_refresh_timestamp_seconds",
			Help: "Unix time of the last recent-blocks refresh",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) AddRejectedStories(_ int)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (n *noopMetrics) SetLastRefresh(_ time.Time)                        {}
