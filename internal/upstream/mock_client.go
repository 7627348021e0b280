package upstream

import (
	"context"
	"sync"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
)

// MockClient is a test double for the Client interface
// It allows tests to control behavior and verify interactions
type MockClient struct {
	mu sync.Mutex

	// Payloads holds canned provider responses (IP address -> payload)
	Payloads map[string]*Payload

	// Track method calls for verification in tests
	FetchCalls  []string
	CloseCalled bool

	// Control behavior for error scenarios
	FetchError error
	CloseError error
}

// NewMockClient creates a mock client pre-populated with common test IPs
func NewMockClient() *MockClient {
	return &MockClient{
		Payloads: map[string]*Payload{
			"8.8.8.8":              SamplePayload("8.8.8.8"),
			"2001:4860:4860::8888": SamplePayload("2001:4860:4860::8888"),
			"1.1.1.1": {
				Status:      ptr("success"),
				Country:     ptr("Australia"),
				CountryCode: ptr("AU"),
				Region:      ptr("QLD"),
				RegionName:  ptr("Queensland"),
				City:        ptr("South Brisbane"),
				Zip:         ptr("4101"),
				Lat:         ptr(-27.4766),
				Lon:         ptr(153.0166),
				Timezone:    ptr("Australia/Brisbane"),
				ISP:         ptr("Cloudflare, Inc"),
				Org:         ptr("APNIC and Cloudflare DNS Resolver project"),
				AS:          ptr("AS13335 Cloudflare, Inc."),
				Query:       ptr("1.1.1.1"),
			},
		},
		FetchCalls: []string{},
	}
}

// SamplePayload returns a complete success payload for Google's resolver,
// echoing query as the looked-up address
func SamplePayload(query string) *Payload {
	return &Payload{
		Status:      ptr("success"),
		Country:     ptr("United States"),
		CountryCode: ptr("US"),
		Region:      ptr("CA"),
		RegionName:  ptr("California"),
		City:        ptr("Mountain View"),
		Zip:         ptr("94035"),
		Lat:         ptr(37.386),
		Lon:         ptr(-122.0838),
		Timezone:    ptr("America/Los_Angeles"),
		ISP:         ptr("Google LLC"),
		Org:         ptr("Google LLC"),
		AS:          ptr("AS15169 Google LLC"),
		Query:       ptr(query),
	}
}

// Fetch implements the Client interface
// Unknown IPs behave like the provider's "fail" answer for a private range
func (m *MockClient) Fetch(ctx context.Context, ip string) (*Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls = append(m.FetchCalls, ip)

	if m.FetchError != nil {
		return nil, m.FetchError
	}

	payload, exists := m.Payloads[ip]
	if !exists {
		return nil, apperror.NotFound("private range")
	}

	return payload, nil
}

// Close implements the Client interface
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalled = true
	return m.CloseError
}

// Calls returns a copy of the IPs Fetch was called with
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.FetchCalls...)
}

func ptr[T any](v T) *T {
	return &v
}
