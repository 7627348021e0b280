// Package upstream talks to the third-party geolocation provider (ip-api.com).
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
	"github.com/evyataryagoni/ipgeo/internal/metrics"
	"github.com/goccy/go-json"
)

const (
	// DefaultBaseURL is the provider's JSON endpoint; the IP is appended to it
	DefaultBaseURL = "http://ip-api.com/json/"

	// DefaultTimeout bounds the whole outbound request, body included
	DefaultTimeout = 5 * time.Second

	// maxBodySize caps how much of a response body is read
	maxBodySize = 1 << 20
)

// Client defines the interface for geolocation lookups against the provider
// Allows swapping the real HTTP client for a mock in tests
type Client interface {
	// Fetch returns the provider payload for ip. The payload's status is
	// already known to be "success"; its fields are not yet validated.
	Fetch(ctx context.Context, ip string) (*Payload, error)

	// Close releases pooled connections
	Close() error
}

// IPAPIClient implements Client over HTTP
// One client is shared by all requests; its transport pools connections
type IPAPIClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option configures an IPAPIClient
type Option func(*IPAPIClient)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *IPAPIClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the total timeout of each outbound request
func WithTimeout(timeout time.Duration) Option {
	return func(c *IPAPIClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithMetrics records upstream request counts and latency
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *IPAPIClient) {
		c.metrics = m
	}
}

// NewIPAPIClient creates a provider client
//
// Parameters:
//   - baseURL: provider endpoint, e.g. "http://ip-api.com/json/" (empty uses DefaultBaseURL)
//   - opts: optional settings (HTTP client, timeout, metrics)
func NewIPAPIClient(baseURL string, opts ...Option) *IPAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &IPAPIClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the provider URL queried for ip
func (c *IPAPIClient) URL(ip string) string {
	return c.baseURL + ip
}

// Fetch performs a single GET against the provider. There are no retries.
//
// Failure mapping:
//   - transport error (connection, DNS, timeout): UpstreamUnavailable
//   - non-2xx HTTP status: Upstream
//   - body is not JSON: MalformedResponse
//   - status field other than "success": NotFound with the provider message
func (c *IPAPIClient) Fetch(ctx context.Context, ip string) (*Payload, error) {
	start := time.Now()

	payload, outcome, err := c.fetch(ctx, ip)

	if c.metrics != nil {
		c.metrics.UpstreamRequestsTotal.WithLabelValues(outcome).Inc()
		c.metrics.UpstreamRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}

	return payload, err
}

func (c *IPAPIClient) fetch(ctx context.Context, ip string) (*Payload, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(ip), nil)
	if err != nil {
		return nil, "transport_error", apperror.UpstreamUnavailable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "transport_error", apperror.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, "http_error", apperror.Upstream(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		// A timeout while reading the body is still a transport failure
		return nil, "transport_error", apperror.UpstreamUnavailable(err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, "malformed", apperror.MalformedResponse(fmt.Errorf("decode provider response: %w", err))
	}

	if !payload.Succeeded() {
		return nil, "fail", apperror.NotFound(payload.FailureMessage())
	}

	return &payload, "success", nil
}

// Close releases idle pooled connections
func (c *IPAPIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
