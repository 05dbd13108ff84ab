package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// errBodyTooLarge is returned by decodeRequest when the body exceeds the
// limit set by the MaxBodySize middleware.
var errBodyTooLarge = errors.New("request body too large")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorKinds maps each domain sentinel to its HTTP status, in match order.
var errorKinds = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidRequest, http.StatusBadRequest},
	{domain.ErrEmptyResultSet, http.StatusNotFound},
	{domain.ErrOutOfRange, http.StatusRequestedRangeNotSatisfiable},
	{domain.ErrMalformedRecord, http.StatusUnprocessableEntity},
	{domain.ErrDataSourceUnavailable, http.StatusServiceUnavailable},
	{errBodyTooLarge, http.StatusRequestEntityTooLarge},
}

// writeError writes err as an ErrorResponse with the status of its kind.
// Errors outside the known kinds are logged and reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			writeJSON(w, k.status, ErrorResponse{Error: unwrapMessage(err, k.err)})
			return
		}
	}
	s.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.StatsService.TimeStats: empty result set: no trips match the query" → "no trips match the query"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
