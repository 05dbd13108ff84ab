package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare-stats/internal/metrics"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

var (
	_ service.Recorder = (*metrics.Store)(nil)
)

func TestStore_ObservePipeline(t *testing.T) {
	s := metrics.NewStore()

	s.ObservePipeline("time_stats", "chicago", "ok", 20*time.Millisecond)
	s.ObservePipeline("time_stats", "chicago", "ok", 30*time.Millisecond)
	s.ObservePipeline("time_stats", "chicago", "empty_result_set", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.PipelineRuns.WithLabelValues("time_stats", "chicago", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.PipelineRuns.WithLabelValues("time_stats", "chicago", "empty_result_set")))
	assert.Equal(t, 1, testutil.CollectAndCount(s.PipelineTime))
}

func TestStore_SetRowsLoaded(t *testing.T) {
	s := metrics.NewStore()

	s.SetRowsLoaded("washington", 300000)
	s.SetRowsLoaded("washington", 1200)

	assert.Equal(t, 1200.0, testutil.ToFloat64(s.RowsLoaded.WithLabelValues("washington")))
}

func TestStore_Handler(t *testing.T) {
	s := metrics.NewStore()
	s.IncHTTPRequest("/get/user/stats", http.StatusNotFound)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bikeshare_http_requests_total{route="/get/user/stats",status="404"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
