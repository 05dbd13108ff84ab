// Package middleware holds the net/http middleware wrapped around the query
// routes: CORS, request body limits, access logging and request metrics.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsPreflightMaxAge is how long, in seconds, browsers may cache a preflight.
// Every query route shares the same rules, so one preflight covers them all.
const corsPreflightMaxAge = 600

// NewCORSHandler returns a middleware granting the origins in allowedOrigins
// access to the query routes. Entries are full origins (scheme and host, no
// trailing slash); "*" allows any origin. Queries are GET with parameters or
// POST with a JSON body, so those are the only methods and Content-Type the
// only request header granted.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         corsPreflightMaxAge,
	})
	return c.Handler
}
