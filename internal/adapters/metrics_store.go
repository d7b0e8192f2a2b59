package adapters

import (
	"sort"
	"sync"
	"time"

	"github.com/architeacher/svc-admin-monitor/internal/domain"
	"github.com/architeacher/svc-admin-monitor/pkg/window"
)

// InMemoryMetricsStore keeps a bounded sample window per service. Writers
// never block on readers beyond the per-window lock, and a full window
// evicts its oldest sample.
type InMemoryMetricsStore struct {
	capacity int

	mu      sync.RWMutex
	windows map[string]*window.Window[domain.MetricSample]
}

func NewInMemoryMetricsStore(capacity int) *InMemoryMetricsStore {
	if capacity <= 0 {
		capacity = window.DefaultCapacity
	}

	return &InMemoryMetricsStore{
		capacity: capacity,
		windows:  make(map[string]*window.Window[domain.MetricSample]),
	}
}

func (s *InMemoryMetricsStore) Record(serviceName, endpoint string, responseTime time.Duration, success bool) {
	sample := domain.MetricSample{
		ServiceName:    serviceName,
		Endpoint:       endpoint,
		ResponseTimeMs: responseTime.Milliseconds(),
		Success:        success,
		Timestamp:      time.Now(),
	}

	s.windowFor(serviceName).Append(sample)
}

// Samples returns a copy of the service's window in insertion order. An
// unknown service yields nil.
func (s *InMemoryMetricsStore) Samples(serviceName string) []domain.MetricSample {
	s.mu.RLock()
	w, ok := s.windows[serviceName]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	return w.Snapshot()
}

func (s *InMemoryMetricsStore) ServiceNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.windows))
	for name := range s.windows {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (s *InMemoryMetricsStore) windowFor(serviceName string) *window.Window[domain.MetricSample] {
	s.mu.RLock()
	w, ok := s.windows[serviceName]
	s.mu.RUnlock()

	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok = s.windows[serviceName]; ok {
		return w
	}

	w = window.New[domain.MetricSample](window.WithCapacity(s.capacity))
	s.windows[serviceName] = w

	return w
}
