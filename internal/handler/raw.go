package handler

import (
	"net/http"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

// rawDataRequest is the request echo of /get/raw/data.
type rawDataRequest struct {
	domain.Query
	StartIndex int `json:"start_index"`
}

// RawData handles /get/raw/data: one page of the filtered rows.
func (s *Server) RawData(w http.ResponseWriter, r *http.Request) {
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
	start, err := service.ParseStartIndex(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.stats.RawData(r.Context(), q, start)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope[domain.Page]{
		Request:  rawDataRequest{Query: q, StartIndex: start},
		Response: page,
	})
}
