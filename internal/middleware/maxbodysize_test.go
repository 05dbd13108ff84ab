package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/bikeshare-stats/internal/middleware"
)

// bodyReadingHandler reads the whole body the way the query handlers do and
// answers 413 when the read hits the limit.
var bodyReadingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, err := io.ReadAll(r.Body)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 100

	tests := []struct {
		name          string
		size          int
		contentLength int64 // -1: unknown, streamed
		want          int
	}{
		{"small body passes", 50, 50, http.StatusOK},
		{"body at the limit passes", limit, limit, http.StatusOK},
		// Rejected before the handler reads a byte.
		{"declared length over limit", 200, 200, http.StatusRequestEntityTooLarge},
		// No Content-Length: the read inside the handler fails at the limit.
		{"streamed body over limit", 200, -1, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.NewMaxBodySizeHandler(limit)(bodyReadingHandler)

			req := httptest.NewRequest(http.MethodPost, "/get/raw/data", strings.NewReader(strings.Repeat("x", tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
