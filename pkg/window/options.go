package window

const (
	// DefaultCapacity bounds a window when no explicit capacity is given.
	DefaultCapacity = 10_000
)

type windowOptions struct {
	capacity int
}

// Option configures a Window at construction time.
type Option func(*windowOptions)

// WithCapacity returns an Option which bounds the window to the given number
// of values. Non-positive capacities fall back to DefaultCapacity.
func WithCapacity(capacity int) Option {
	return func(o *windowOptions) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

func defaultOptions() windowOptions {
	return windowOptions{
		capacity: DefaultCapacity,
	}
}
