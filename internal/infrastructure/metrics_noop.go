package infrastructure

import (
	"context"
	"net/http"
	"time"
)

type (
	NoOpMetrics struct{}
)

func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (n *NoOpMetrics) RecordHTTPRequest(_ context.Context, _, _ string, _ int, _ time.Duration, _, _ int64) {
}

func (n *NoOpMetrics) RecordProbe(_ context.Context, _, _, _ string, _ time.Duration) {
}

func (n *NoOpMetrics) RecordHealthCheck(_ context.Context, _ string, _ time.Duration) {
}

func (n *NoOpMetrics) RecordAlertEvaluation(_ context.Context, _ int, _ time.Duration) {
}

func (n *NoOpMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (n *NoOpMetrics) Shutdown(_ context.Context) error {
	return nil
}

func (n *NoOpMetrics) RecordQuery(_ context.Context, _ string, _ bool, _ time.Duration) {
}
