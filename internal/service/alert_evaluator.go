package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/domain"
)

const (
	cpuWarningPct     = 80.0
	cpuCriticalPct    = 90.0
	memoryWarningPct  = 80.0
	memoryCriticalPct = 90.0
	diskCriticalPct   = 95.0

	slowQueriesTrigger = 10
)

// evaluateAlerts derives the current alert set from a health snapshot and
// metrics report. Alerts carry no identity; every call produces a fresh
// list ordered by severity, then recency.
func evaluateAlerts(
	check *domain.SystemHealthCheck,
	report *domain.MetricsReport,
	thresholds domain.Thresholds,
	now time.Time,
) []domain.Alert {
	alerts := []domain.Alert{}

	if check != nil {
		alerts = append(alerts, healthAlerts(check, now)...)
	}

	if report != nil {
		alerts = append(alerts, performanceAlerts(report.Services, thresholds, now)...)
		alerts = append(alerts, resourceAlerts(report.Resources, thresholds, now)...)
		alerts = append(alerts, databaseAlerts(report.Database, now)...)
	}

	SortAlerts(alerts)

	return alerts
}

// SortAlerts orders alerts by severity, critical first, breaking ties by
// newest creation time.
func SortAlerts(alerts []domain.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity.Rank() > alerts[j].Severity.Rank()
		}

		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}

func healthAlerts(check *domain.SystemHealthCheck, now time.Time) []domain.Alert {
	var alerts []domain.Alert

	for _, svc := range check.Services {
		switch svc.Status {
		case domain.HealthStatusUnhealthy:
			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertTypeServiceDown,
				Title:     fmt.Sprintf("Service %s is down", svc.ServiceName),
				Message:   serviceFailureMessage(svc),
				Severity:  domain.AlertSeverityCritical,
				CreatedAt: now,
			})
		case domain.HealthStatusDegraded:
			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertTypeServiceDegraded,
				Title:     fmt.Sprintf("Service %s is degraded", svc.ServiceName),
				Message:   fmt.Sprintf("%s responded in %dms", svc.ServiceName, svc.ResponseTimeMs),
				Severity:  domain.AlertSeverityWarning,
				CreatedAt: now,
			})
		}
	}

	for _, dep := range check.Dependencies {
		if dep.Status != domain.HealthStatusUnhealthy {
			continue
		}

		message := fmt.Sprintf("Dependency %s is unreachable", dep.Name)
		if dep.ErrorMessage != "" {
			message = dep.ErrorMessage
		}

		alerts = append(alerts, domain.Alert{
			Type:      domain.AlertTypeDependencyDown,
			Title:     fmt.Sprintf("Dependency %s is down", dep.Name),
			Message:   message,
			Severity:  domain.AlertSeverityCritical,
			CreatedAt: now,
		})
	}

	return alerts
}

func performanceAlerts(services []domain.ServiceMetricsSummary, thresholds domain.Thresholds, now time.Time) []domain.Alert {
	var alerts []domain.Alert

	for _, svc := range services {
		if svc.RequestCount == 0 {
			continue
		}

		if svc.ErrorRatePct > thresholds.ErrorRatePct {
			severity := domain.AlertSeverityWarning
			if svc.ErrorRatePct > thresholds.ErrorRatePct*2 {
				severity = domain.AlertSeverityCritical
			}

			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertTypePerformance,
				Title:     fmt.Sprintf("High error rate on %s", svc.ServiceName),
				Message:   fmt.Sprintf("%s error rate is %.1f%% over the last %s (threshold %.1f%%)", svc.ServiceName, svc.ErrorRatePct, svc.Period, thresholds.ErrorRatePct),
				Severity:  severity,
				CreatedAt: now,
			})
		}

		if svc.AvgResponseTimeMs > float64(thresholds.ResponseTimeMs) {
			severity := domain.AlertSeverityWarning
			if svc.AvgResponseTimeMs > float64(thresholds.ResponseTimeMs)*2 {
				severity = domain.AlertSeverityCritical
			}

			alerts = append(alerts, domain.Alert{
				Type:      domain.AlertTypePerformance,
				Title:     fmt.Sprintf("Slow responses from %s", svc.ServiceName),
				Message:   fmt.Sprintf("%s is averaging %.0fms per request (threshold %dms)", svc.ServiceName, svc.AvgResponseTimeMs, thresholds.ResponseTimeMs),
				Severity:  severity,
				CreatedAt: now,
			})
		}
	}

	return alerts
}

func resourceAlerts(resources *domain.SystemResourceMetrics, thresholds domain.Thresholds, now time.Time) []domain.Alert {
	if resources == nil {
		return nil
	}

	var alerts []domain.Alert

	if alert := usageAlert("CPU", resources.CPUUsagePercent, cpuWarningPct, cpuCriticalPct, now); alert != nil {
		alerts = append(alerts, *alert)
	}

	if alert := usageAlert("Memory", resources.MemoryUsagePercent, memoryWarningPct, memoryCriticalPct, now); alert != nil {
		alerts = append(alerts, *alert)
	}

	if resources.DiskUsagePercent >= thresholds.DiskUsagePct {
		severity := domain.AlertSeverityWarning
		if resources.DiskUsagePercent >= diskCriticalPct {
			severity = domain.AlertSeverityCritical
		}

		alerts = append(alerts, domain.Alert{
			Type:      domain.AlertTypeResource,
			Title:     "Disk space is running out",
			Message:   fmt.Sprintf("Disk usage is at %.1f%% (threshold %.1f%%)", resources.DiskUsagePercent, thresholds.DiskUsagePct),
			Severity:  severity,
			CreatedAt: now,
		})
	}

	return alerts
}

// usageAlert fires strictly above the trigger levels: usage at exactly the
// warning or critical mark stays quiet or stays a warning.
func usageAlert(resource string, usagePct, warningPct, criticalPct float64, now time.Time) *domain.Alert {
	if usagePct <= warningPct {
		return nil
	}

	severity := domain.AlertSeverityWarning
	if usagePct > criticalPct {
		severity = domain.AlertSeverityCritical
	}

	return &domain.Alert{
		Type:      domain.AlertTypeResource,
		Title:     fmt.Sprintf("%s usage is high", resource),
		Message:   fmt.Sprintf("%s usage is at %.1f%%", resource, usagePct),
		Severity:  severity,
		CreatedAt: now,
	}
}

func databaseAlerts(database *domain.DatabaseMetrics, now time.Time) []domain.Alert {
	if database == nil || database.SlowQueries <= slowQueriesTrigger {
		return nil
	}

	return []domain.Alert{{
		Type:      domain.AlertTypeDatabase,
		Title:     "Database has slow queries",
		Message:   fmt.Sprintf("%d queries are running longer than expected", database.SlowQueries),
		Severity:  domain.AlertSeverityWarning,
		CreatedAt: now,
	}}
}

func serviceFailureMessage(svc domain.ServiceHealth) string {
	if svc.ErrorMessage != "" {
		return svc.ErrorMessage
	}

	return fmt.Sprintf("%s failed its health probe", svc.ServiceName)
}
