package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnblocks/internal/controllers"
	"hnblocks/internal/models"
	"hnblocks/internal/providers"
	"hnblocks/internal/structures"
	"hnblocks/internal/testutil"
)

type routeTestScheduler struct{}

func (s *routeTestScheduler) Init()                               {}
func (s *routeTestScheduler) Stop()                               {}
func (s *routeTestScheduler) RefreshRecent(_ context.Context) int { return 0 }
func (s *routeTestScheduler) LastRefresh() time.Time              { return time.Time{} }

func newTestHandler(t *testing.T) (http.Handler, *testutil.MockMetrics, *testutil.MockSettingsService) {
	t.Helper()
	conf := &structures.Config{}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	settings := testutil.NewMockSettingsService()
	stories := &testutil.MockStoryService{
		Stories:    &models.StoriesResponse{Hits: []models.Story{}, NbPages: 1},
		ViewResult: &models.StoryView{Stories: []models.RankedStory{}, State: models.ViewStateEmpty},
	}
	api := controllers.NewApiController(logger, stories, settings, testutil.NewMockCache())
	router := InitRoutes(api, conf)
	health := controllers.NewHealthController(&routeTestScheduler{})
	return NewHandler(health, conf, logger, router, metrics), metrics, settings
}

func TestInitRoutes_RegistersApiRoutes(t *testing.T) {
	api := controllers.NewApiController(&testutil.MockLogger{}, &testutil.MockStoryService{}, testutil.NewMockSettingsService(), testutil.NewMockCache())
	routes := InitRoutes(api, &structures.Config{}).GetRoutes()

	urls := make([]string, 0, len(routes))
	for _, r := range routes {
		urls = append(urls, r.Url)
	}
	assert.ElementsMatch(t, []string{"/api/time-blocks", "/api/stories", "/api/view", "/api/settings"}, urls)
}

func TestHandler_ServesEndpoints(t *testing.T) {
	handler, metrics, _ := newTestHandler(t)

	for _, path := range []string{
		"/api/time-blocks",
		"/api/stories?start=1704672000&end=1704693600",
		"/api/view",
		"/api/settings",
		"/health",
	} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), path)
	}
	// health is not instrumented
	assert.Equal(t, 4, metrics.Requests)
}

func TestHandler_PutSettings(t *testing.T) {
	handler, _, settings := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(`{"minRanking":5,"minPoints":0,"showRecentBlocks":true}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, settings.Get().MinRanking)
}

func TestHandler_MethodEnforcement(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/time-blocks"},
		{http.MethodPut, "/api/stories"},
		{http.MethodDelete, "/api/settings"},
		{http.MethodPost, "/health"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, tt.method+" "+tt.path)
	}
}

func TestHandler_UnknownPath(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_MetricsEndpointFollowsConfig(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}
	enabled := NewHandler(controllers.NewHealthController(&routeTestScheduler{}), conf, &testutil.MockLogger{}, providers.NewRouterProvider(), &testutil.MockMetrics{})
	rr = httptest.NewRecorder()
	enabled.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewServer_AddressAndTimeouts(t *testing.T) {
	conf := &structures.Config{
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8080},
		Upstream:  structures.UpstreamConfig{Timeout: 3 * time.Second},
	}
	srv := newServer(http.NotFoundHandler(), conf)

	assert.Equal(t, "127.0.0.1:8080", srv.Addr)
	assert.Equal(t, 13*time.Second, srv.WriteTimeout)
}
