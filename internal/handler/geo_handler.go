package handler

import (
	"net/http"

	"github.com/evyataryagoni/ipgeo/internal/apperror"
	"github.com/evyataryagoni/ipgeo/internal/clientip"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// GeoHandler handles HTTP requests for geolocation lookups
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Read the path parameter or the caller's addressing information
//   - Call service methods
//   - Render the result or the {"detail": ...} error envelope
type GeoHandler struct {
	service         *service.GeoService
	forwardedHeader string
}

// NewGeoHandler creates a new handler
// forwardedHeader names the header holding the original client IP
// (empty means X-Forwarded-For)
func NewGeoHandler(service *service.GeoService, forwardedHeader string) *GeoHandler {
	if forwardedHeader == "" {
		forwardedHeader = clientip.DefaultHeader
	}
	return &GeoHandler{
		service:         service,
		forwardedHeader: forwardedHeader,
	}
}

// GetLocationByIP handles GET /get_location_by_ip/{ip}
// @Summary      Get location by IP address
// @Description  Get geolocation info for a given IPv4 or IPv6 address
// @Tags         Geolocation
// @Produce      json
// @Param        ip   path      string  true  "IP address (IPv4 or IPv6)"  example(8.8.8.8)
// @Success      200  {object}  models.GeoLocation
// @Failure      400  {object}  models.ErrorResponse  "Invalid IP address format"
// @Failure      404  {object}  models.ErrorResponse  "Provider could not locate the IP"
// @Failure      500  {object}  models.ErrorResponse  "Malformed provider response"
// @Failure      502  {object}  models.ErrorResponse  "Provider returned an error status"
// @Failure      503  {object}  models.ErrorResponse  "Provider unreachable"
// @Router       /get_location_by_ip/{ip} [get]
func (h *GeoHandler) GetLocationByIP(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")

	location, err := h.service.LookupIP(r.Context(), ip)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, location)
}

// GetMyLocationByIP handles GET /get_my_location_by_ip
// @Summary      Get location of the caller
// @Description  Get geolocation info for the caller's IP, taken from the first X-Forwarded-For entry or the connection's peer address
// @Tags         Geolocation
// @Produce      json
// @Success      200  {object}  models.GeoLocation
// @Failure      400  {object}  models.ErrorResponse  "Cannot determine client IP or invalid IP address format"
// @Failure      404  {object}  models.ErrorResponse  "Provider could not locate the IP"
// @Failure      500  {object}  models.ErrorResponse  "Malformed provider response"
// @Failure      502  {object}  models.ErrorResponse  "Provider returned an error status"
// @Failure      503  {object}  models.ErrorResponse  "Provider unreachable"
// @Router       /get_my_location_by_ip [get]
func (h *GeoHandler) GetMyLocationByIP(w http.ResponseWriter, r *http.Request) {
	location, err := h.service.LookupClientIP(r.Context(), r.Header.Get(h.forwardedHeader), r.RemoteAddr)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, location)
}

// respondJSON writes a JSON response with the given status code
func (h *GeoHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	RespondJSON(w, statusCode, data)
}

// respondError maps err to its status code and detail
func (h *GeoHandler) respondError(w http.ResponseWriter, err error) {
	statusCode, detail := apperror.StatusAndDetail(err)
	RespondDetail(w, statusCode, detail)
}

// RespondJSON encodes data as the JSON body of a response
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		// Nothing has been written yet, so the status can still change
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"Failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

// RespondDetail writes the standard {"detail": ...} error envelope
func RespondDetail(w http.ResponseWriter, statusCode int, detail string) {
	RespondJSON(w, statusCode, models.ErrorResponse{Detail: detail})
}
