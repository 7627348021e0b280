package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/config"
	"github.com/evyataryagoni/ipgeo/internal/handler"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/evyataryagoni/ipgeo/internal/router"
	"github.com/evyataryagoni/ipgeo/internal/service"
	"github.com/evyataryagoni/ipgeo/internal/upstream"
)

// @title           IP Geolocation API
// @version         1.0
// @description     Resolves an IP address to geolocation metadata through the ip-api.com provider

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
func main() {
	// Load configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appLogger)
	geoClient := setupUpstream(appConfig, metricsCollector, appLogger)

	// Build application layers
	geoService := service.NewGeoService(geoClient, metricsCollector, appLogger)
	defer geoService.Close()

	geoHandler := handler.NewGeoHandler(geoService, appConfig.ForwardedHeader)
	appRouter := router.SetupRouter(router.Options{
		GeoHandler:     geoHandler,
		Metrics:        metricsCollector,
		Logger:         appLogger,
		AllowedOrigins: appConfig.CORSAllowedOrigins,
	})

	// Start server
	if err := startServer(appConfig, appRouter, appLogger); err != nil {
		appLogger.Error().Err(err).Msg("Server failed")
		geoService.Close()
		os.Exit(1)
	}
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:      appConfig.LogLevel,
		Pretty:     appConfig.LogPretty,
		OutputFile: appConfig.LogFile,
	})

	appLogger.Info().Msg("Starting IP Geolocation Server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("upstream_base_url", appConfig.UpstreamBaseURL).
		Dur("upstream_timeout", appConfig.UpstreamTimeout).
		Str("forwarded_header", appConfig.ForwardedHeader).
		Strs("cors_allowed_origins", appConfig.CORSAllowedOrigins).
		Msg("Configuration loaded")

	return appLogger
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New()
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// setupUpstream initializes the geolocation provider client
func setupUpstream(appConfig *config.Config, m *metrics.Metrics, log *logger.Logger) upstream.Client {
	client := upstream.NewIPAPIClient(appConfig.UpstreamBaseURL,
		upstream.WithTimeout(appConfig.UpstreamTimeout),
		upstream.WithMetrics(m),
	)

	log.Info().
		Str("url_template", client.URL("{ip}")).
		Msg("Upstream client initialized")

	return client
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight requests
// for at most ShutdownTimeout seconds
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) error {
	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/get_location_by_ip/<ip>").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Str("swagger", "http://localhost:"+appConfig.Port+"/swagger/index.html").
		Msg("Server is running")

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(appConfig.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
