package repository

// Unsubscribe releases a live query. It is safe to call more than once.
type Unsubscribe func()

// SnapshotFunc receives the full result set of a live query each time it
// changes. A non-nil err ends the stream; no further calls follow it.
type SnapshotFunc[T any] func(items []*T, err error)
