package providers

import (
	"sync"
	"time"
)

// local mock logger to avoid import cycle with testutil
type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (m *testLogger) add(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, level)
}

func (m *testLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) { m.add("error") }
func (m *testLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  { m.add("warn") }
func (m *testLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) { m.add("debug") }
func (m *testLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  { m.add("info") }
func (m *testLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) { m.add("fatal") }
func (m *testLogger) Close()                                        {}

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration)  { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                     { m.hits++ }
func (m *mockMetrics) IncCacheMisses()                                   { m.misses++ }
func (m *mockMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (m *mockMetrics) AddRejectedStories(_ int)                          {}
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (m *mockMetrics) SetLastRefresh(_ time.Time)                        {}
