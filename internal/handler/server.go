// Package handler implements the HTTP handlers for the bikeshare statistics API.
// All handlers are methods on Server. Methods are split into files by concern
// (health.go, stats.go, raw.go) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// StatsServicer defines the pipeline operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the row source or the service layer.
type StatsServicer interface {
	TimeStats(ctx context.Context, q domain.Query) (domain.TimeStats, error)
	StationStats(ctx context.Context, q domain.Query) (domain.StationStats, error)
	TripDurationStats(ctx context.Context, q domain.Query) (domain.TripDurationStats, error)
	UserStats(ctx context.Context, q domain.Query) (domain.UserStats, error)
	AllStats(ctx context.Context, q domain.Query) (domain.AllStats, error)
	RawData(ctx context.Context, q domain.Query, startIndex int) (domain.Page, error)
}

// Server serves every API endpoint.
type Server struct {
	stats StatsServicer
	log   *slog.Logger
}

// NewServer constructs the Server with all its dependencies. log may be nil.
func NewServer(stats StatsServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{stats: stats, log: log}
}

// Routes registers every endpoint on r. Each query endpoint accepts a JSON
// body on POST and query parameters on GET.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	query := map[string]http.HandlerFunc{
		"/get/time/stats":          statsHandler(s, s.stats.TimeStats),
		"/get/station/stats":       statsHandler(s, s.stats.StationStats),
		"/get/trip/duration/stats": statsHandler(s, s.stats.TripDurationStats),
		"/get/user/stats":          statsHandler(s, s.stats.UserStats),
		"/get/all/stats":           statsHandler(s, s.stats.AllStats),
		"/get/raw/data":            s.RawData,
	}
	for pattern, h := range query {
		r.Post(pattern, h)
		r.Get(pattern, h)
	}
}

// Handler returns a chi router with every endpoint registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
