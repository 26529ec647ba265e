package model

// Answer is one decoded answer. The zero value is the missing marker.
type Answer[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value
func Some[T any](v T) Answer[T] {
	return Answer[T]{Value: v, Valid: true}
}

// Get returns the value and whether it is present
func (a Answer[T]) Get() (T, bool) {
	return a.Value, a.Valid
}

// Missing reports whether the answer is the missing marker
func (a Answer[T]) Missing() bool {
	return !a.Valid
}
