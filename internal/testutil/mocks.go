package testutil

import (
	"context"
	"sync"
	"time"

	"hnblocks/internal/models"
	"hnblocks/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface with a plain map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	TTLs map[string]time.Duration
	Gets int
	Sets int
	// SetErr is returned by Set without storing the value.
	SetErr error
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte), TTLs: make(map[string]time.Duration)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	m.TTLs[key] = ttl
	return nil
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	delete(m.TTLs, key)
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                  sync.Mutex
	Requests            int
	CacheHits           int
	CacheMisses         int
	UpstreamOutcomes    []string
	Rejected            int
	PersistenceObserved int
	LastRefresh         time.Time
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObserveUpstreamDuration(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpstreamOutcomes = append(m.UpstreamOutcomes, outcome)
}
func (m *MockMetrics) AddRejectedStories(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected += count
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObserved++
}
func (m *MockMetrics) SetLastRefresh(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRefresh = t
}

// MockSource implements upstream.SourceInterface.
type MockSource struct {
	mu       sync.Mutex
	Response *models.StoriesResponse
	Err      error
	Calls    [][2]int64
}

func (m *MockSource) Search(_ context.Context, start, end int64) (*models.StoriesResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, [2]int64{start, end})
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response == nil {
		return &models.StoriesResponse{Hits: []models.Story{}, NbPages: 1}, nil
	}
	resp := *m.Response
	resp.Hits = append([]models.Story(nil), m.Response.Hits...)
	return &resp, nil
}

func (m *MockSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockStoryService implements services.StoryServiceInterface.
type MockStoryService struct {
	mu           sync.Mutex
	Stories      *models.StoriesResponse
	ViewResult   *models.StoryView
	Err          error
	RefreshErr   map[int64]error
	Refreshed    []int64
	ViewSettings []models.SettingsConfig
}

func (m *MockStoryService) ListStories(_ context.Context, _, _ int64) (*models.StoriesResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stories, nil
}

func (m *MockStoryService) View(_ context.Context, _, _ int64, settings models.SettingsConfig) (*models.StoryView, error) {
	m.mu.Lock()
	m.ViewSettings = append(m.ViewSettings, settings)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ViewResult, nil
}

func (m *MockStoryService) Refresh(_ context.Context, start, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.RefreshErr[start]; err != nil {
		return err
	}
	m.Refreshed = append(m.Refreshed, start)
	return nil
}

// MockSettingsService implements services.SettingsServiceInterface in memory.
type MockSettingsService struct {
	mu        sync.Mutex
	Current   models.SettingsConfig
	UpdateErr error
	LoadErr   error
	Updates   int
	Loads     int
}

func NewMockSettingsService() *MockSettingsService {
	return &MockSettingsService{Current: models.DefaultSettings()}
}

func (m *MockSettingsService) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	return m.LoadErr
}

func (m *MockSettingsService) Get() models.SettingsConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Current
}

func (m *MockSettingsService) Update(settings models.SettingsConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Current = settings
	return nil
}

func (m *MockSettingsService) Reset() error {
	return m.Update(models.DefaultSettings())
}
