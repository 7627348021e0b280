package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
	"github.com/evyataryagoni/ipgeo/internal/logger"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/service"
	"github.com/evyataryagoni/ipgeo/internal/upstream"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

var expectedData = map[string]interface{}{
	"status":      "success",
	"country":     "United States",
	"countryCode": "US",
	"region":      "CA",
	"regionName":  "California",
	"city":        "Mountain View",
	"zip":         "94035",
	"lat":         37.386,
	"lon":         -122.0838,
	"timezone":    "America/Los_Angeles",
	"isp":         "Google LLC",
	"org":         "Google LLC",
	"as":          "AS15169 Google LLC",
	"query":       "8.8.8.8",
}

// newTestRouter wires a handler backed by client into a bare chi router
func newTestRouter(client upstream.Client, forwardedHeader string) http.Handler {
	svc := service.NewGeoService(client, nil, logger.Nop())
	h := NewGeoHandler(svc, forwardedHeader)

	r := chi.NewRouter()
	r.Get("/get_location_by_ip/{ip}", h.GetLocationByIP)
	r.Get("/get_my_location_by_ip", h.GetMyLocationByIP)
	return r
}

// newProvider starts a fake geolocation provider returning body for every IP
func newProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error response: %v (%s)", err, rec.Body.String())
	}
	if len(body) != 1 {
		t.Errorf("expected single-field envelope, got %v", body)
	}
	detail, _ := body["detail"].(string)
	return detail
}

// TestGeoHandler_Success tests both endpoints return the provider payload verbatim
func TestGeoHandler_Success(t *testing.T) {
	for _, url := range []string{"/get_location_by_ip/8.8.8.8", "/get_my_location_by_ip"} {
		t.Run(url, func(t *testing.T) {
			router := newTestRouter(upstream.NewMockClient(), "")

			req := httptest.NewRequest(http.MethodGet, url, nil)
			req.RemoteAddr = "8.8.8.8:40000"
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}

			var data map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(data) != len(expectedData) {
				t.Errorf("expected %d fields, got %d", len(expectedData), len(data))
			}
			for k, v := range data {
				if expectedData[k] != v {
					t.Errorf("field %s: expected %v, got %v", k, expectedData[k], v)
				}
			}
		})
	}
}

// TestGeoHandler_IncompletePayload tests that a payload without status is an error, not partial data
func TestGeoHandler_IncompletePayload(t *testing.T) {
	for _, url := range []string{"/get_location_by_ip/8.8.8.8", "/get_my_location_by_ip"} {
		t.Run(url, func(t *testing.T) {
			mockClient := upstream.NewMockClient()
			mockClient.Payloads["8.8.8.8"].Status = nil
			router := newTestRouter(mockClient, "")

			req := httptest.NewRequest(http.MethodGet, url, nil)
			req.RemoteAddr = "8.8.8.8:40000"
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected status 500, got %d", rec.Code)
			}
			if detail := decodeDetail(t, rec); !strings.Contains(detail, "status") {
				t.Errorf("expected detail to name the missing field, got %q", detail)
			}
		})
	}
}

// TestGeoHandler_InvalidIP tests invalid path parameters
func TestGeoHandler_InvalidIP(t *testing.T) {
	tests := []string{"not_an_ip", "192.168.1", "300.300.300.300", "abc.def.ghi.jkl"}

	for _, ip := range tests {
		t.Run(ip, func(t *testing.T) {
			mockClient := upstream.NewMockClient()
			router := newTestRouter(mockClient, "")

			req := httptest.NewRequest(http.MethodGet, "/get_location_by_ip/"+ip, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
			if detail := decodeDetail(t, rec); detail != "Invalid IP address format" {
				t.Errorf("unexpected detail: %s", detail)
			}
			if len(mockClient.Calls()) != 0 {
				t.Error("provider must not be called for an invalid IP")
			}
		})
	}
}

// TestGeoHandler_ValidIPv6 tests IPv6 path parameters reach the provider
func TestGeoHandler_ValidIPv6(t *testing.T) {
	mockClient := upstream.NewMockClient()
	router := newTestRouter(mockClient, "")

	req := httptest.NewRequest(http.MethodGet, "/get_location_by_ip/2001:4860:4860::8888", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls := mockClient.Calls(); len(calls) != 1 || calls[0] != "2001:4860:4860::8888" {
		t.Errorf("unexpected provider calls: %v", calls)
	}
}

// TestGeoHandler_ForwardedFor tests that the first X-Forwarded-For entry is looked up
func TestGeoHandler_ForwardedFor(t *testing.T) {
	mockClient := upstream.NewMockClient()
	mockClient.Payloads["1.2.3.4"] = upstream.SamplePayload("1.2.3.4")
	router := newTestRouter(mockClient, "")

	req := httptest.NewRequest(http.MethodGet, "/get_my_location_by_ip", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls := mockClient.Calls(); len(calls) != 1 || calls[0] != "1.2.3.4" {
		t.Errorf("expected provider called with 1.2.3.4, got %v", calls)
	}
}

// TestGeoHandler_CustomForwardedHeader tests a configured forwarding header
func TestGeoHandler_CustomForwardedHeader(t *testing.T) {
	mockClient := upstream.NewMockClient()
	router := newTestRouter(mockClient, "X-Real-IP")

	req := httptest.NewRequest(http.MethodGet, "/get_my_location_by_ip", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Real-IP", "1.1.1.1")
	req.Header.Set("X-Forwarded-For", "8.8.8.8")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if calls := mockClient.Calls(); len(calls) != 1 || calls[0] != "1.1.1.1" {
		t.Errorf("expected provider called with 1.1.1.1, got %v", calls)
	}
}

// TestGeoHandler_CannotDetermineIP tests a request without any addressing information
func TestGeoHandler_CannotDetermineIP(t *testing.T) {
	router := newTestRouter(upstream.NewMockClient(), "")

	req := httptest.NewRequest(http.MethodGet, "/get_my_location_by_ip", nil)
	req.RemoteAddr = ""
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "Cannot determine client IP" {
		t.Errorf("unexpected detail: %s", detail)
	}
}

// TestGeoHandler_ProviderOutcomes tests status mapping against a real HTTP provider
func TestGeoHandler_ProviderOutcomes(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "provider fail",
			status:         http.StatusOK,
			body:           `{"status":"fail","message":"invalid query","query":"8.8.8.8"}`,
			expectedStatus: http.StatusNotFound,
			expectedDetail: "invalid query",
		},
		{
			name:           "status missing",
			status:         http.StatusOK,
			body:           `{"country":"United States"}`,
			expectedStatus: http.StatusNotFound,
			expectedDetail: "Not Found",
		},
		{
			name:           "not json",
			status:         http.StatusOK,
			body:           `<html></html>`,
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Failed to parse JSON response",
		},
		{
			name:           "provider 503",
			status:         http.StatusServiceUnavailable,
			body:           ``,
			expectedStatus: http.StatusServiceUnavailable,
			expectedDetail: "Upstream returned status 503 Service Unavailable",
		},
		{
			name:           "provider 429",
			status:         http.StatusTooManyRequests,
			body:           ``,
			expectedStatus: http.StatusBadGateway,
			expectedDetail: "Upstream returned status 429 Too Many Requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newProvider(t, tt.status, tt.body)
			router := newTestRouter(upstream.NewIPAPIClient(provider.URL+"/json/"), "")

			req := httptest.NewRequest(http.MethodGet, "/get_location_by_ip/8.8.8.8", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if detail := decodeDetail(t, rec); detail != tt.expectedDetail {
				t.Errorf("expected detail %q, got %q", tt.expectedDetail, detail)
			}
		})
	}
}

// TestGeoHandler_TransportError tests that transport failures become 503 with the error text
func TestGeoHandler_TransportError(t *testing.T) {
	mockClient := upstream.NewMockClient()
	mockClient.FetchError = apperror.UpstreamUnavailable(errors.New("dial tcp 208.95.112.1:80: connect: connection refused"))
	router := newTestRouter(mockClient, "")

	req := httptest.NewRequest(http.MethodGet, "/get_location_by_ip/8.8.8.8", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
	if detail := decodeDetail(t, rec); !strings.Contains(detail, "connection refused") {
		t.Errorf("expected transport error text in detail, got %q", detail)
	}
}

// TestGeoHandler_UnclassifiedError tests that unknown errors do not leak internals
func TestGeoHandler_UnclassifiedError(t *testing.T) {
	mockClient := upstream.NewMockClient()
	mockClient.FetchError = errors.New("secret internal state")
	router := newTestRouter(mockClient, "")

	req := httptest.NewRequest(http.MethodGet, "/get_location_by_ip/8.8.8.8", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "Internal server error" {
		t.Errorf("expected generic detail, got %q", detail)
	}
}

// TestRespondDetail tests the error envelope helper
func TestRespondDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondDetail(rec, http.StatusBadRequest, "Test error message")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Detail != "Test error message" {
		t.Errorf("expected 'Test error message', got '%s'", errResp.Detail)
	}
}

// TestRespondJSON_EncodeFailure tests that an unencodable value yields a 500 envelope
func TestRespondJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if detail := decodeDetail(t, rec); detail != "Failed to encode response" {
		t.Errorf("unexpected detail: %s", detail)
	}
}
