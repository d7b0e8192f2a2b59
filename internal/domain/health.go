package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusUnknown   HealthStatus = "unknown"
)

const (
	OverallStatusHealthy   OverallStatus = "healthy"
	OverallStatusDegraded  OverallStatus = "degraded"
	OverallStatusUnhealthy OverallStatus = "unhealthy"
	OverallStatusCritical  OverallStatus = "critical"
)

const (
	DependencyKindDatabase      DependencyKind = "database"
	DependencyKindMessageBroker DependencyKind = "message_broker"
	DependencyKindCache         DependencyKind = "cache"
	DependencyKindFileStorage   DependencyKind = "file_storage"
)

type (
	// HealthStatus is the classification of a single probe result.
	HealthStatus string

	// OverallStatus is the escalated system-wide status derived from the
	// union of service and dependency statuses.
	OverallStatus string

	DependencyKind string

	// ServiceHealth is the outcome of probing one monitored service.
	// It is recomputed on every check and never persisted.
	ServiceHealth struct {
		ServiceName    string       `json:"service_name"`
		BaseURL        string       `json:"base_url"`
		Status         HealthStatus `json:"status"`
		ResponseTimeMs int64        `json:"response_time_ms"`
		ErrorMessage   string       `json:"error_message,omitempty"`
		LastIncidentAt *time.Time   `json:"last_incident_at,omitempty"`
		CheckedAt      time.Time    `json:"checked_at"`
	}

	// DependencyHealth is the outcome of probing one infrastructure
	// dependency. Kind-specific extras (disk usage, broker endpoint)
	// travel in AdditionalInfo.
	DependencyHealth struct {
		Name           string         `json:"name"`
		Kind           DependencyKind `json:"kind"`
		Status         HealthStatus   `json:"status"`
		ResponseTimeMs int64          `json:"response_time_ms"`
		ErrorMessage   string         `json:"error_message,omitempty"`
		AdditionalInfo map[string]any `json:"additional_info,omitempty"`
		CheckedAt      time.Time      `json:"checked_at"`
	}

	// SystemHealthCheck is the snapshot a single aggregation run produces.
	SystemHealthCheck struct {
		CheckID             uuid.UUID          `json:"check_id"`
		CheckedAt           time.Time          `json:"checked_at"`
		Services            []ServiceHealth    `json:"services"`
		Dependencies        []DependencyHealth `json:"dependencies"`
		OverallStatus       OverallStatus      `json:"overall_status"`
		TotalResponseTimeMs int64              `json:"total_response_time_ms"`
	}
)

// CalculateOverallStatus escalates individual statuses into one system-wide
// status: two or more unhealthy targets are critical, exactly one is
// unhealthy, any degraded target degrades the whole, otherwise healthy.
// Unknown statuses count as neither unhealthy nor degraded.
func CalculateOverallStatus(statuses []HealthStatus) OverallStatus {
	var unhealthyCount, degradedCount int

	for _, status := range statuses {
		switch status {
		case HealthStatusUnhealthy:
			unhealthyCount++
		case HealthStatusDegraded:
			degradedCount++
		}
	}

	switch {
	case unhealthyCount >= 2:
		return OverallStatusCritical
	case unhealthyCount == 1:
		return OverallStatusUnhealthy
	case degradedCount > 0:
		return OverallStatusDegraded
	default:
		return OverallStatusHealthy
	}
}

// Statuses returns the union of service and dependency statuses for
// overall status escalation.
func (c *SystemHealthCheck) Statuses() []HealthStatus {
	statuses := make([]HealthStatus, 0, len(c.Services)+len(c.Dependencies))

	for i := range c.Services {
		statuses = append(statuses, c.Services[i].Status)
	}

	for i := range c.Dependencies {
		statuses = append(statuses, c.Dependencies[i].Status)
	}

	return statuses
}
