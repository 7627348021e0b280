package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// MetricsMiddleware records HTTP metrics for each request
// Requests are labelled by chi route pattern so that path parameters such
// as the looked-up IP do not create one series per address
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			endpoint := routePattern(r)
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			if requestSize := float64(r.ContentLength); requestSize > 0 {
				m.HTTPRequestSize.WithLabelValues(r.Method, endpoint).Observe(requestSize)
			}

			m.HTTPRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, endpoint, status).Observe(duration)
			m.HTTPResponseSize.WithLabelValues(r.Method, endpoint, status).Observe(float64(rw.size))
		})
	}
}

// routePattern returns the matched chi pattern, or "unmatched" for requests
// that hit no route. It must run after the router has routed r.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
