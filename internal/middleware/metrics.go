package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestCounter records one finished HTTP request. *metrics.Store satisfies it.
type RequestCounter interface {
	IncHTTPRequest(route string, status int)
}

// NewMetricsHandler returns a middleware that counts requests by chi route
// pattern and response status. Using the pattern instead of the raw path
// keeps label cardinality bounded. Unmatched requests are labelled "unmatched".
func NewMetricsHandler(counter RequestCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			counter.IncHTTPRequest(route, status)
		})
	}
}
