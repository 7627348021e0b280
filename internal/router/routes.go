package router

import (
	"github.com/evyataryagoni/ipgeo/internal/handler"
	"github.com/go-chi/chi/v5"
)

// registerGeoRoutes mounts the geolocation endpoints at the root
//
//	GET /get_location_by_ip/{ip}
//	GET /get_my_location_by_ip
func registerGeoRoutes(r chi.Router, geoHandler *handler.GeoHandler) {
	r.Get("/get_location_by_ip/{ip}", geoHandler.GetLocationByIP)
	r.Get("/get_my_location_by_ip", geoHandler.GetMyLocationByIP)
}
