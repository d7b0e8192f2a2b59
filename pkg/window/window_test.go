package window

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_AppendBelowCapacity(t *testing.T) {
	t.Parallel()

	w := New[int](WithCapacity(5))

	w.Append(1)
	w.Append(2)
	w.Append(3)

	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []int{1, 2, 3}, w.Snapshot())
}

func TestWindow_EvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()

	w := New[int](WithCapacity(3))

	for i := 1; i <= 4; i++ {
		w.Append(i)
	}

	assert.Equal(t, 3, w.Len(), "count stays at capacity")
	assert.Equal(t, []int{2, 3, 4}, w.Snapshot(), "exactly the oldest value is evicted")
}

func TestWindow_NeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	const capacity = 16

	w := New[int](WithCapacity(capacity))

	for i := 0; i < capacity*10; i++ {
		w.Append(i)
	}

	assert.Equal(t, capacity, w.Len())

	snapshot := w.Snapshot()
	require.Len(t, snapshot, capacity)
	assert.Equal(t, capacity*10-capacity, snapshot[0], "oldest surviving value")
	assert.Equal(t, capacity*10-1, snapshot[capacity-1], "newest value")
}

func TestWindow_DefaultCapacity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCapacity, New[int]().Cap())
	assert.Equal(t, DefaultCapacity, New[int](WithCapacity(0)).Cap(), "non-positive capacity falls back to the default")
}

func TestWindow_ConcurrentAppendsAndSnapshots(t *testing.T) {
	t.Parallel()

	const (
		writers          = 8
		appendsPerWriter = 500
		capacity         = 100
	)

	w := New[int](WithCapacity(capacity))

	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)

		go func(base int) {
			defer wg.Done()

			for j := 0; j < appendsPerWriter; j++ {
				w.Append(base + j)

				if j%50 == 0 {
					snapshot := w.Snapshot()
					assert.LessOrEqual(t, len(snapshot), capacity)
				}
			}
		}(i * appendsPerWriter)
	}

	wg.Wait()

	assert.Equal(t, capacity, w.Len())
}
