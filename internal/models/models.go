package models

// GeoLocation is the geolocation record returned for an IP address
// Field names and JSON keys mirror the upstream provider's schema
type GeoLocation struct {
	Status      string  `json:"status" example:"success"`
	Country     string  `json:"country" example:"United States"`
	CountryCode string  `json:"countryCode" example:"US"`
	Region      string  `json:"region" example:"CA"`
	RegionName  string  `json:"regionName" example:"California"`
	City        string  `json:"city" example:"Mountain View"`
	Zip         string  `json:"zip" example:"94035"`
	Lat         float64 `json:"lat" example:"37.386"`
	Lon         float64 `json:"lon" example:"-122.0838"`
	Timezone    string  `json:"timezone" example:"America/Los_Angeles"`
	ISP         string  `json:"isp" example:"Google LLC"`
	Org         string  `json:"org" example:"Google LLC"`
	AS          string  `json:"as" example:"AS15169 Google LLC"` // Autonomous system, wire key "as"
	Query       string  `json:"query" example:"8.8.8.8"`
}

// ErrorResponse is the standard error response format
// Every non-2xx response carries exactly this shape
type ErrorResponse struct {
	Detail string `json:"detail" example:"Invalid IP address format"`
}
