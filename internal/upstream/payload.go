package upstream

import (
	"github.com/evyataryagoni/ipgeo/internal/apperror"
	"github.com/evyataryagoni/ipgeo/internal/models"
	"github.com/evyataryagoni/ipgeo/internal/validate"
)

// StatusSuccess is the provider's status value for a resolved lookup
const StatusSuccess = "success"

// Payload is the raw JSON document returned by the geolocation provider
//
// Fields are pointers so a missing key can be told apart from a zero value
// (a latitude of 0 is valid, a missing latitude is not). Keeping the wire
// format here means a provider schema change only touches this file.
type Payload struct {
	Status      *string  `json:"status" validate:"required"`
	Message     *string  `json:"message,omitempty"`
	Country     *string  `json:"country" validate:"required"`
	CountryCode *string  `json:"countryCode" validate:"required"`
	Region      *string  `json:"region" validate:"required"`
	RegionName  *string  `json:"regionName" validate:"required"`
	City        *string  `json:"city" validate:"required"`
	Zip         *string  `json:"zip" validate:"required"`
	Lat         *float64 `json:"lat" validate:"required"`
	Lon         *float64 `json:"lon" validate:"required"`
	Timezone    *string  `json:"timezone" validate:"required"`
	ISP         *string  `json:"isp" validate:"required"`
	Org         *string  `json:"org" validate:"required"`
	AS          *string  `json:"as" validate:"required"`
	Query       *string  `json:"query" validate:"required"`
}

// Succeeded reports whether the provider resolved the query
func (p *Payload) Succeeded() bool {
	return p.Status != nil && *p.Status == StatusSuccess
}

// FailureMessage returns the provider's message, or "" when there is none
func (p *Payload) FailureMessage() string {
	if p.Message == nil {
		return ""
	}
	return *p.Message
}

// ToGeoLocation validates that every field is present and builds the
// response model. It never returns a partially populated location.
func (p *Payload) ToGeoLocation() (*models.GeoLocation, error) {
	missing, err := validate.Struct(p)
	if err != nil {
		return nil, apperror.IncompleteResponse(missing, err)
	}

	return &models.GeoLocation{
		Status:      *p.Status,
		Country:     *p.Country,
		CountryCode: *p.CountryCode,
		Region:      *p.Region,
		RegionName:  *p.RegionName,
		City:        *p.City,
		Zip:         *p.Zip,
		Lat:         *p.Lat,
		Lon:         *p.Lon,
		Timezone:    *p.Timezone,
		ISP:         *p.ISP,
		Org:         *p.Org,
		AS:          *p.AS,
		Query:       *p.Query,
	}, nil
}
