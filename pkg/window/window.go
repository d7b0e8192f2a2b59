package window

import (
	"sync"
)

// Window is a bounded ring buffer of values with FIFO eviction on overflow.
// The zero value is not usable; construct with New.
type Window[T any] struct {
	mu   sync.RWMutex
	buf  []T
	head int
	size int
}

// New creates a bounded window.
func New[T any](opts ...Option) *Window[T] {
	options := defaultOptions()

	for _, opt := range opts {
		opt(&options)
	}

	return &Window[T]{
		buf: make([]T, options.capacity),
	}
}

// Append adds a value to the window. When the window is full the oldest
// value is evicted. Append never fails and never blocks beyond the
// window's own lock.
func (w *Window[T]) Append(value T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size < len(w.buf) {
		w.buf[(w.head+w.size)%len(w.buf)] = value
		w.size++

		return
	}

	w.buf[w.head] = value
	w.head = (w.head + 1) % len(w.buf)
}

// Snapshot copies the current contents in insertion order, oldest first.
// The returned slice is owned by the caller.
func (w *Window[T]) Snapshot() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]T, w.size)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}

	return out
}

// Len reports how many values the window currently holds.
func (w *Window[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.size
}

// Cap reports the fixed capacity of the window.
func (w *Window[T]) Cap() int {
	return len(w.buf)
}
