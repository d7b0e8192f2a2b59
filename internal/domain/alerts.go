package domain

import (
	"time"
)

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

const (
	AlertTypeServiceDown     AlertType = "service_down"
	AlertTypeServiceDegraded AlertType = "service_degraded"
	AlertTypeDependencyDown  AlertType = "dependency_down"
	AlertTypePerformance     AlertType = "performance"
	AlertTypeResource        AlertType = "resource"
	AlertTypeDatabase        AlertType = "database"
)

type (
	AlertSeverity string

	AlertType string

	// Alert is transient: regenerated fresh on every evaluation, with no
	// identity or deduplication across calls.
	Alert struct {
		Type      AlertType     `json:"type"`
		Title     string        `json:"title"`
		Message   string        `json:"message"`
		Severity  AlertSeverity `json:"severity"`
		CreatedAt time.Time     `json:"created_at"`
		IsRead    bool          `json:"is_read"`
	}

	// Thresholds are the trigger levels an evaluation runs against. They
	// are passed into every evaluate call so operators can retune them
	// without a restart.
	Thresholds struct {
		ErrorRatePct   float64 `json:"error_rate_pct"`
		ResponseTimeMs int64   `json:"response_time_ms"`
		DiskUsagePct   float64 `json:"disk_usage_pct"`
	}
)

// DefaultThresholds returns the trigger levels used when no overrides are
// configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ErrorRatePct:   5.0,
		ResponseTimeMs: 2000,
		DiskUsagePct:   90.0,
	}
}

// Rank orders severities for alert sorting, highest first.
func (s AlertSeverity) Rank() int {
	switch s {
	case AlertSeverityCritical:
		return 3
	case AlertSeverityWarning:
		return 2
	case AlertSeverityInfo:
		return 1
	default:
		return 0
	}
}
