package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware answers preflight requests and sets CORS headers
// allowedOrigins may contain "*" to allow any origin; methods and request
// headers are not restricted
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler
}
