// Package optional provides a typed container for a value that may
// be legitimately unset, distinguishing "unset" from the type's own
// zero value.
package optional

// Val holds an optional value of type T.
type Val[T any] struct {
	val T
	set bool
}

// New returns a set Val wrapping v.
func New[T any](v T) Val[T] {
	return Val[T]{val: v, set: true}
}

// Set reports whether the value is present.
func (v Val[T]) Set() bool {
	return v.set
}

// Get returns the wrapped value and whether it was set.
func (v Val[T]) Get() (T, bool) {
	return v.val, v.set
}

// GetOr returns the wrapped value, or def if unset.
func (v Val[T]) GetOr(def T) T {
	if v.set {
		return v.val
	}
	return def
}
