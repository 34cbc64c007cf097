package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnblocks/internal/structures"
)

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

// metricValue sums counters and gauges, or sample counts for histograms.
func metricValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				total += g.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				total += float64(h.GetSampleCount())
			}
		}
		return total
	}
	return 0
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveUpstreamDuration("ok", time.Millisecond)
	m.AddRejectedStories(3)
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetLastRefresh(time.Now())
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_RecordsValues(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)

	m.IncRequestsTotal("/api/stories", 200)
	m.IncRequestsTotal("/api/stories", 201)
	m.IncRequestsTotal("/api/stories", 502)
	m.ObserveRequestDuration("/api/stories", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.ObserveUpstreamDuration("error", 100*time.Millisecond)
	m.AddRejectedStories(4)
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetLastRefresh(time.Unix(1704690000, 0))

	assert.Equal(t, 6.0, metricValue(t, reg, "hnblocks_requests_total"))
	assert.Equal(t, 1.0, metricValue(t, reg, "hnblocks_cache_hits_total"))
	assert.Equal(t, 2.0, metricValue(t, reg, "hnblocks_cache_misses_total"))
	assert.Equal(t, 4.0, metricValue(t, reg, "hnblocks_upstream_rejected_stories_total"))
	assert.Equal(t, 1704690000.0, metricValue(t, reg, "hnblocks_last_refresh_timestamp_seconds"))
	assert.Equal(t, 1.0, metricValue(t, reg, "hnblocks_upstream_duration_seconds"))
	assert.Equal(t, 1.0, metricValue(t, reg, "hnblocks_settings_persistence_duration_seconds"))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
