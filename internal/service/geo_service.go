package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
	"github.com/evyataryagoni/ipgeo/internal/clientip"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/upstream"
	"github.com/evyataryagoni/ipgeo/internal/validate"
)

// GeoService handles business logic for IP geolocation lookups
// It sits between the HTTP handlers and the upstream provider client
//
// Responsibilities:
//   - Resolve the caller's IP when none is given
//   - Validate input (IP format)
//   - Call the provider once (no retries, no caching)
//   - Shape the provider payload into the response model
type GeoService struct {
	client  upstream.Client  // Provider client (HTTP or mock)
	metrics *metrics.Metrics // Metrics collector, may be nil
	logger  *logger.Logger
}

// NewGeoService creates a new geolocation service
//
// Parameters:
//   - client: any implementation of the upstream.Client interface
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewGeoService(client upstream.Client, m *metrics.Metrics, log *logger.Logger) *GeoService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &GeoService{
		client:  client,
		metrics: m,
		logger:  log.WithComponent("GeoService"),
	}
}

// LookupIP returns geolocation data for ip
//
// Flow:
//  1. Validate IP format
//  2. Fetch the provider payload
//  3. Check every field is present and build the response model
func (s *GeoService) LookupIP(ctx context.Context, ip string) (*models.GeoLocation, error) {
	log := s.logger.WithIP(ip)

	if err := validate.IP(ip); err != nil {
		log.Warn().Msg("Invalid IP address format")
		s.countError("validation")
		return nil, err
	}

	log.Debug().Msg("Fetching geolocation from provider")
	payload, err := s.client.Fetch(ctx, ip)
	if err != nil {
		s.recordFetchError(log, err)
		return nil, fmt.Errorf("lookup %s: %w", ip, err)
	}

	location, err := payload.ToGeoLocation()
	if err != nil {
		log.Error().Err(err).Msg("Provider payload failed validation")
		s.countError("incomplete_response")
		return nil, fmt.Errorf("lookup %s: %w", ip, err)
	}

	log.Info().
		Str("country", location.Country).
		Str("city", location.City).
		Msg("IP lookup successful")
	if s.metrics != nil {
		s.metrics.IPLookupsTotal.WithLabelValues("success").Inc()
	}

	return location, nil
}

// LookupClientIP resolves the caller's IP from a forwarding header value or
// the peer address, then looks it up like LookupIP
func (s *GeoService) LookupClientIP(ctx context.Context, forwarded, peerAddr string) (*models.GeoLocation, error) {
	ip, err := clientip.Resolve(forwarded, peerAddr)
	if err != nil {
		s.logger.Warn().
			Str("peer_addr", peerAddr).
			Msg("Cannot determine client IP")
		s.countError("client_ip")
		return nil, err
	}

	s.logger.Debug().
		Str("ip", ip).
		Bool("forwarded", forwarded != "").
		Msg("Resolved client IP")

	return s.LookupIP(ctx, ip)
}

// recordFetchError logs a provider failure at a level matching its kind
func (s *GeoService) recordFetchError(log *logger.Logger, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		log.Debug().Err(err).Msg("Provider could not locate IP")
		if s.metrics != nil {
			s.metrics.IPLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return
	case errors.Is(err, apperror.ErrUpstreamUnavailable):
		log.Error().Err(err).Msg("Provider unreachable")
		s.countError("upstream_unavailable")
	case errors.Is(err, apperror.ErrUpstream):
		log.Error().Err(err).Msg("Provider returned an error status")
		s.countError("upstream_status")
	case errors.Is(err, apperror.ErrMalformedResponse):
		log.Error().Err(err).Msg("Provider returned malformed JSON")
		s.countError("malformed_response")
	default:
		log.Error().Err(err).Msg("Provider lookup failed")
		s.countError("unknown")
	}
}

func (s *GeoService) countError(errorType string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IPLookupsErrors.WithLabelValues(errorType).Inc()
	s.metrics.IPLookupsTotal.WithLabelValues("error").Inc()
}

// Close releases the provider client's resources
// Should be called when the service is no longer needed
func (s *GeoService) Close() error {
	return s.client.Close()
}
