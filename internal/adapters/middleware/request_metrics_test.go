package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSample struct {
	serviceName string
	endpoint    string
	success     bool
}

type captureRecorder struct {
	mu      sync.Mutex
	samples []recordedSample
}

func (c *captureRecorder) Record(serviceName, endpoint string, _ time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.samples = append(c.samples, recordedSample{
		serviceName: serviceName,
		endpoint:    endpoint,
		success:     success,
	})
}

func newTestRequestMetrics(recorder *captureRecorder) *RequestMetrics {
	return NewRequestMetrics(
		"svc-admin-monitor",
		time.Second,
		recorder,
		infrastructure.NewNoOpMetrics(),
		infrastructure.Logger{},
	)
}

func TestRequestMetrics_RecordsSuccess(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}

	handler := newTestRequestMetrics(recorder).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/monitoring/alerts", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, recorder.samples, 1)
	assert.Equal(t, "svc-admin-monitor", recorder.samples[0].serviceName)
	assert.Equal(t, "/v1/monitoring/alerts", recorder.samples[0].endpoint)
	assert.True(t, recorder.samples[0].success)
}

func TestRequestMetrics_ServerErrorIsFailure(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}

	handler := newTestRequestMetrics(recorder).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/monitoring/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, recorder.samples, 1)
	assert.False(t, recorder.samples[0].success)
}

func TestRequestMetrics_ClientErrorIsFailure(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}

	handler := newTestRequestMetrics(recorder).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/monitoring/metrics", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// 4xx counts against the error rate like any other non-2xx/3xx outcome.
	require.Len(t, recorder.samples, 1)
	assert.False(t, recorder.samples[0].success)
}

func TestRequestMetrics_SuccessCutoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		statusCode  int
		wantSuccess bool
	}{
		{name: "ok", statusCode: http.StatusOK, wantSuccess: true},
		{name: "redirect", statusCode: http.StatusTemporaryRedirect, wantSuccess: true},
		{name: "not found", statusCode: http.StatusNotFound, wantSuccess: false},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, wantSuccess: false},
		{name: "bad gateway", statusCode: http.StatusBadGateway, wantSuccess: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recorder := &captureRecorder{}

			handler := newTestRequestMetrics(recorder).Middleware(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tc.statusCode)
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/v1/monitoring/alerts", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			require.Len(t, recorder.samples, 1)
			assert.Equal(t, tc.wantSuccess, recorder.samples[0].success)
		})
	}
}

func TestRequestMetrics_ExcludesProbeEndpoints(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}

	handler := newTestRequestMetrics(recorder).Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	for _, path := range []string{"/health", "/status", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Empty(t, recorder.samples)
}

func TestRequestMetrics_PanickingHandlerStillRecorded(t *testing.T) {
	t.Parallel()

	recorder := &captureRecorder{}

	handler := newTestRequestMetrics(recorder).Middleware(
		http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			panic("handler exploded")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/monitoring/health", nil)

	assert.PanicsWithValue(t, "handler exploded", func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})

	require.Len(t, recorder.samples, 1)
	assert.False(t, recorder.samples[0].success)
}
