package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func wrapStatus(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := wrapStatus(w)

		next.ServeHTTP(sw, r)

		metrics.IncRequestsTotal(r.URL.Path, sw.status)
		metrics.ObserveRequestDuration(r.URL.Path, time.Since(start))
	})
}

// AccessLogMiddleware writes one line per request to the log of its method type.
func AccessLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := wrapStatus(w)

		next.ServeHTTP(sw, r)

		t := GetLogTypeByRequestType(r.Method)
		if sw.status >= http.StatusInternalServerError {
			logger.Warnf(t, "%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), sw.status, time.Since(start))
			return
		}
		logger.Debugf(t, "%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), sw.status, time.Since(start))
	})
}
