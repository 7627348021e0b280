package router

import (
	"net/http"

	_ "github.com/evyataryagoni/ipgeo/docs" // Swagger docs
	"github.com/evyataryagoni/ipgeo/internal/handler"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	custommiddleware "github.com/evyataryagoni/ipgeo/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Options holds the router dependencies
type Options struct {
	GeoHandler     *handler.GeoHandler
	Metrics        *metrics.Metrics
	Logger         *logger.Logger
	AllowedOrigins []string // CORS allow-list, "*" allows any origin

	// Gatherer serves /metrics; nil means the default Prometheus registry
	Gatherer prometheus.Gatherer
}

// SetupRouter creates and configures the Chi router with all middleware and routes
//
// Middleware order: RequestID first so every log line carries it, then
// logging, panic recovery, CORS (preflights never reach a route) and metrics.
func SetupRouter(opts Options) chi.Router {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(custommiddleware.LoggingMiddleware(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.CORSMiddleware(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(custommiddleware.MetricsMiddleware(opts.Metrics))
	}

	// Errors from the router itself use the same envelope as the API
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	registerGeoRoutes(r, opts.GeoHandler)

	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", healthCheckHandler)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger UI: /swagger/index.html, document at /swagger/doc.json
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// healthCheckHandler returns 200 OK while the process is serving
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	handler.RespondDetail(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	handler.RespondDetail(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
