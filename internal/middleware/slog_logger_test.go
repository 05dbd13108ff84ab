package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare-stats/internal/middleware"
)

// serveLogged runs one request through a chi router wrapped in the SlogLogger
// and returns the decoded log line.
func serveLogged(t *testing.T, path string, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.NewSlogLogger(logger))
	r.Post("/get/{kind}/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"x"}`))
	})

	req := httptest.NewRequest(http.MethodPost, path, nil)
	// Simulate chimiddleware.RequestID with a known ID.
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id"))
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestSlogLogger_logsRequestFields verifies the fields of a successful request.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	entry := serveLogged(t, "/get/time/stats", http.StatusOK)

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/get/time/stats", entry["path"])
	assert.Equal(t, "/get/{kind}/stats", entry["route"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, len(`{"error":"x"}`), entry["bytes"])
	assert.Equal(t, "test-req-id", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
}

func TestSlogLogger_levelByStatus(t *testing.T) {
	assert.Equal(t, "WARN", serveLogged(t, "/get/user/stats", http.StatusNotFound)["level"])
	assert.Equal(t, "ERROR", serveLogged(t, "/get/user/stats", http.StatusServiceUnavailable)["level"])
}
