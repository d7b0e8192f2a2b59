package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/usecases"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type stubMonitoringService struct {
	check  *domain.SystemHealthCheck
	report *domain.MetricsReport
	alerts []domain.Alert
	err    error

	lastPeriod time.Duration
}

func (s *stubMonitoringService) FetchSystemHealth(_ context.Context) (*domain.SystemHealthCheck, error) {
	return s.check, s.err
}

func (s *stubMonitoringService) FetchMetricsReport(_ context.Context, period time.Duration) (*domain.MetricsReport, error) {
	s.lastPeriod = period

	return s.report, s.err
}

func (s *stubMonitoringService) FetchAlerts(_ context.Context, period time.Duration) ([]domain.Alert, error) {
	s.lastPeriod = period

	return s.alerts, s.err
}

func newTestRouter(t *testing.T, svc *stubMonitoringService) chi.Router {
	t.Helper()

	logger := infrastructure.Logger{}
	app := usecases.NewWebApplication(
		svc,
		logger,
		noop.NewTracerProvider(),
		NewMetricsAdapter(infrastructure.NewNoOpMetrics()),
	)

	handler := NewRequestHandler(app, config.AppConfig{
		ServiceName: "svc-admin-monitor",
		APIVersion:  "v1",
	}, logger)

	router := chi.NewRouter()
	handler.Routes(router)

	return router
}

func doRequest(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestRequestHandler_GetLiveness(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubMonitoringService{})

	recorder := doRequest(t, router, "/health")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "svc-admin-monitor", body["service"])
}

func TestRequestHandler_GetSystemHealth(t *testing.T) {
	t.Parallel()

	svc := &stubMonitoringService{
		check: &domain.SystemHealthCheck{
			OverallStatus: domain.OverallStatusDegraded,
			Services: []domain.ServiceHealth{
				{ServiceName: "users", Status: domain.HealthStatusDegraded},
			},
		},
	}

	router := newTestRouter(t, svc)

	recorder := doRequest(t, router, "/v1/monitoring/health")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body domain.SystemHealthCheck
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, domain.OverallStatusDegraded, body.OverallStatus)
	require.Len(t, body.Services, 1)
}

func TestRequestHandler_GetMetricsReport_PeriodParam(t *testing.T) {
	t.Parallel()

	svc := &stubMonitoringService{report: &domain.MetricsReport{Period: 5 * time.Minute}}

	router := newTestRouter(t, svc)

	recorder := doRequest(t, router, "/v1/monitoring/metrics?period=5m")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 5*time.Minute, svc.lastPeriod)
}

func TestRequestHandler_GetMetricsReport_InvalidPeriod(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		period string
	}{
		{"not a duration", "yesterday"},
		{"negative", "-5m"},
		{"zero", "0s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(t, &stubMonitoringService{report: &domain.MetricsReport{}})

			recorder := doRequest(t, router, "/v1/monitoring/metrics?period="+tc.period)

			require.Equal(t, http.StatusBadRequest, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "INVALID_PERIOD", body["error"])
		})
	}
}

func TestRequestHandler_GetAlerts(t *testing.T) {
	t.Parallel()

	svc := &stubMonitoringService{
		alerts: []domain.Alert{
			{Type: domain.AlertTypeServiceDown, Severity: domain.AlertSeverityCritical, Title: "Service users is down"},
		},
	}

	router := newTestRouter(t, svc)

	recorder := doRequest(t, router, "/v1/monitoring/alerts")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Alerts []domain.Alert `json:"alerts"`
		Total  int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, domain.AlertTypeServiceDown, body.Alerts[0].Type)
}

func TestRequestHandler_InternalErrorShape(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubMonitoringService{err: errors.New("aggregator exploded")})

	recorder := doRequest(t, router, "/v1/monitoring/health")

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["error"])
}
