package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

// Envelope is the body of every successful query: the normalized request
// echoed back next to its result.
type Envelope[T any] struct {
	Request  any `json:"request"`
	Response T   `json:"response"`
}

// statsHandler adapts one aggregation of the StatsServicer to an HTTP handler.
// The request is decoded, validated and answered with an Envelope.
func statsHandler[T any](s *Server, compute func(context.Context, domain.Query) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeRequest(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		q, err := service.Validate(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		out, err := compute(r.Context(), q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Envelope[T]{Request: q, Response: out})
	}
}
