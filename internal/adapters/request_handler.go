package adapters

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/config"
	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/internal/infrastructure"
	"github.com/architeacher/svc-admin-monitor/internal/usecases"
	"github.com/architeacher/svc-admin-monitor/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

type (
	RequestHandler struct {
		app    *usecases.WebApplication
		cfg    config.AppConfig
		logger infrastructure.Logger
	}

	errorResponse struct {
		Error      string         `json:"error"`
		Message    string         `json:"message"`
		Details    map[string]any `json:"details,omitempty"`
		StatusCode int            `json:"status_code"`
		Timestamp  time.Time      `json:"timestamp"`
	}

	serviceInfoResponse struct {
		Service   string    `json:"service"`
		Version   string    `json:"version"`
		CommitSHA string    `json:"commit_sha"`
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
)

func NewRequestHandler(
	app *usecases.WebApplication,
	cfg config.AppConfig,
	logger infrastructure.Logger,
) *RequestHandler {
	return &RequestHandler{
		app:    app,
		cfg:    cfg,
		logger: logger.Component("request_handler"),
	}
}

// Routes mounts the monitoring API on the given router.
func (h *RequestHandler) Routes(router chi.Router) {
	router.Get("/health", h.GetLiveness)

	router.Route("/"+h.cfg.APIVersion+"/monitoring", func(r chi.Router) {
		r.Get("/health", h.GetSystemHealth)
		r.Get("/metrics", h.GetMetricsReport)
		r.Get("/alerts", h.GetAlerts)
	})
}

// GetLiveness answers the monitor's own liveness probe. It reports on this
// process only; the monitored fleet is behind /monitoring/health.
func (h *RequestHandler) GetLiveness(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, serviceInfoResponse{
		Service:   h.cfg.ServiceName,
		Version:   h.cfg.ServiceVersion,
		CommitSHA: h.cfg.CommitSHA,
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

func (h *RequestHandler) GetSystemHealth(w http.ResponseWriter, r *http.Request) {
	check, err := h.app.Queries.FetchSystemHealthQueryHandler.Execute(
		r.Context(),
		queries.FetchSystemHealthQuery{},
	)
	if err != nil {
		h.writeError(w, domain.NewInternalServerError("Failed to check system health", err))

		return
	}

	h.writeJSON(w, http.StatusOK, check)
}

func (h *RequestHandler) GetMetricsReport(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		h.writeError(w, err)

		return
	}

	report, execErr := h.app.Queries.FetchMetricsReportQueryHandler.Execute(
		r.Context(),
		queries.FetchMetricsReportQuery{Period: period},
	)
	if execErr != nil {
		h.writeError(w, domain.NewInternalServerError("Failed to build metrics report", execErr))

		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

func (h *RequestHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		h.writeError(w, err)

		return
	}

	alerts, execErr := h.app.Queries.FetchAlertsQueryHandler.Execute(
		r.Context(),
		queries.FetchAlertsQuery{Period: period},
	)
	if execErr != nil {
		h.writeError(w, domain.NewInternalServerError("Failed to evaluate alerts", execErr))

		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"alerts":       alerts,
		"total":        len(alerts),
		"generated_at": time.Now(),
	})
}

// parsePeriod reads the optional period query parameter as a Go duration.
// An absent parameter yields zero, which the service maps to its default.
func parsePeriod(r *http.Request) (time.Duration, error) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return 0, nil
	}

	period, err := time.ParseDuration(raw)
	if err != nil || period <= 0 {
		return 0, domain.NewInvalidPeriodError(raw, err)
	}

	return period, nil
}

func (h *RequestHandler) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *RequestHandler) writeError(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewInternalServerError("Unexpected error", err)
	}

	h.writeJSON(w, domainErr.StatusCode, errorResponse{
		Error:      domainErr.Code,
		Message:    domainErr.Message,
		Details:    domainErr.Details,
		StatusCode: domainErr.StatusCode,
		Timestamp:  time.Now(),
	})
}
