package adapters

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryMetricsStore_RecordAndSamples(t *testing.T) {
	t.Parallel()

	store := NewInMemoryMetricsStore(100)

	store.Record("users", "/v1/users", 120*time.Millisecond, true)
	store.Record("users", "/v1/users/42", 340*time.Millisecond, false)
	store.Record("bookings", "/v1/bookings", 90*time.Millisecond, true)

	users := store.Samples("users")
	require.Len(t, users, 2)
	assert.Equal(t, "/v1/users", users[0].Endpoint)
	assert.Equal(t, int64(120), users[0].ResponseTimeMs)
	assert.True(t, users[0].Success)
	assert.False(t, users[1].Success)

	assert.Len(t, store.Samples("bookings"), 1)
	assert.Nil(t, store.Samples("payments"))
}

func TestInMemoryMetricsStore_ServiceNamesSorted(t *testing.T) {
	t.Parallel()

	store := NewInMemoryMetricsStore(10)

	store.Record("vehicles", "/", time.Millisecond, true)
	store.Record("bookings", "/", time.Millisecond, true)
	store.Record("users", "/", time.Millisecond, true)

	assert.Equal(t, []string{"bookings", "users", "vehicles"}, store.ServiceNames())
}

func TestInMemoryMetricsStore_EvictsOldestPerService(t *testing.T) {
	t.Parallel()

	store := NewInMemoryMetricsStore(3)

	for i := 0; i < 5; i++ {
		store.Record("users", fmt.Sprintf("/e%d", i), time.Millisecond, true)
	}

	// Another service's window is unaffected by users overflowing.
	store.Record("payments", "/pay", time.Millisecond, true)

	users := store.Samples("users")
	require.Len(t, users, 3)
	assert.Equal(t, "/e2", users[0].Endpoint)
	assert.Equal(t, "/e4", users[2].Endpoint)

	assert.Len(t, store.Samples("payments"), 1)
}

func TestInMemoryMetricsStore_ConcurrentRecords(t *testing.T) {
	t.Parallel()

	store := NewInMemoryMetricsStore(1000)

	var wg sync.WaitGroup

	for worker := 0; worker < 8; worker++ {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			service := fmt.Sprintf("svc-%d", worker%2)

			for i := 0; i < 100; i++ {
				store.Record(service, "/load", time.Millisecond, true)
				_ = store.Samples(service)
				_ = store.ServiceNames()
			}
		}(worker)
	}

	wg.Wait()

	total := len(store.Samples("svc-0")) + len(store.Samples("svc-1"))
	assert.Equal(t, 800, total)
}
