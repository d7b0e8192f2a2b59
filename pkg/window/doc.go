// Package window provides a fixed-capacity, concurrently writable sample
// window with FIFO eviction.
//
// # Overview
//
// A Window holds the most recent N values appended to it. Once the capacity
// is reached, every append silently evicts the oldest value. Eviction is
// count-based, not time-based: a value is dropped because newer values
// displaced it, never because it aged out.
//
// # Basic Usage
//
// Creating a window and appending values:
//
//	w := window.New[int](window.WithCapacity(1000))
//	w.Append(42)
//
// Reading a point-in-time snapshot:
//
//	values := w.Snapshot()
//
// Snapshot returns a copy in insertion order. It never exposes the internal
// buffer, so callers may retain or mutate the returned slice freely.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Appends take a short exclusive
// lock scoped to a single window; reads take a shared lock and copy out.
// A snapshot taken concurrently with appends may miss values still being
// written, but never observes a torn value.
package window
