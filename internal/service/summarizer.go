package service

import (
	"math"
	"sort"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/domain"
)

// summarizeService computes a service's trailing-window summary from raw
// samples. Samples older than the period are ignored; an empty window
// yields a zeroed summary with a 0% error rate.
func summarizeService(serviceName string, samples []domain.MetricSample, period time.Duration, now time.Time) domain.ServiceMetricsSummary {
	summary := domain.ServiceMetricsSummary{
		ServiceName: serviceName,
		Period:      period,
		Endpoints:   []domain.EndpointMetrics{},
	}

	cutoff := now.Add(-period)

	var (
		inWindow      []domain.MetricSample
		totalLatency  int64
		endpointIndex = make(map[string]*endpointAccumulator)
	)

	for _, sample := range samples {
		if sample.Timestamp.Before(cutoff) {
			continue
		}

		inWindow = append(inWindow, sample)
		totalLatency += sample.ResponseTimeMs

		if sample.Success {
			summary.SuccessCount++
		} else {
			summary.ErrorCount++
		}

		acc, ok := endpointIndex[sample.Endpoint]
		if !ok {
			acc = &endpointAccumulator{}
			endpointIndex[sample.Endpoint] = acc
		}

		acc.count++
		acc.totalLatency += sample.ResponseTimeMs

		if !sample.Success {
			acc.errors++
		}
	}

	summary.RequestCount = len(inWindow)

	if summary.RequestCount == 0 {
		return summary
	}

	summary.ErrorRatePct = float64(summary.ErrorCount) / float64(summary.RequestCount) * 100
	summary.AvgResponseTimeMs = float64(totalLatency) / float64(summary.RequestCount)

	latencies := make([]int64, len(inWindow))
	for i, sample := range inWindow {
		latencies[i] = sample.ResponseTimeMs
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	summary.P95ResponseTimeMs = percentile(latencies, 95)
	summary.P99ResponseTimeMs = percentile(latencies, 99)
	summary.Endpoints = endpointBreakdown(endpointIndex)

	return summary
}

type endpointAccumulator struct {
	count        int
	errors       int
	totalLatency int64
}

// percentile uses the nearest-rank method over sorted latencies. Small
// sample counts round up, so a single sample is both P95 and P99.
func percentile(sorted []int64, pct float64) int64 {
	if len(sorted) == 0 {
		return 0
	}

	rank := int(math.Ceil(pct / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}

	return sorted[rank-1]
}

func endpointBreakdown(index map[string]*endpointAccumulator) []domain.EndpointMetrics {
	endpoints := make([]domain.EndpointMetrics, 0, len(index))

	for endpoint, acc := range index {
		endpoints = append(endpoints, domain.EndpointMetrics{
			Endpoint:          endpoint,
			RequestCount:      acc.count,
			AvgResponseTimeMs: float64(acc.totalLatency) / float64(acc.count),
			ErrorRatePct:      float64(acc.errors) / float64(acc.count) * 100,
		})
	}

	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].Endpoint < endpoints[j].Endpoint
	})

	return endpoints
}
