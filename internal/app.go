package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hnblocks/internal/controllers"
	"hnblocks/internal/providers"
	"hnblocks/internal/refresh"
	"hnblocks/internal/services"
	"hnblocks/internal/structures"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server
}

// NewHandler mounts the API behind the metrics and access log middleware.
// /health and /metrics are not instrumented.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	api := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		api.Handle(route.Url, route.Handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(metrics, providers.AccessLogMiddleware(logger, api)))
	return mux
}

func newServer(handler http.Handler, conf *structures.Config) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(conf.WebServer.Host, strconv.Itoa(conf.WebServer.Port)),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + conf.Upstream.Timeout,
		IdleTimeout:  60 * time.Second,
	}
}

// NewApp restores the settings, starts the refresh job and serves HTTP until
// SIGINT or SIGTERM.
func NewApp(healthController *controllers.HealthController, scheduler refresh.SchedulerInterface, settings services.SettingsServiceInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	defer logger.Close()

	if err := settings.Load(); err != nil {
		logger.Errorf(providers.TypeApp, "Settings restore error, using defaults: %s", err)
	}

	app := &App{WebServer: newServer(NewHandler(healthController, conf, logger, router, metrics), conf)}

	scheduler.Init()
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.WebServer.Shutdown(shutdownCtx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
