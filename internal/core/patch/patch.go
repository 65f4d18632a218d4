// Package patch provides a field wrapper for partial updates that keeps
// "key absent from the payload" distinguishable from "key explicitly set
// to null". Absent fields leave the stored value untouched; explicit null
// clears a nullable field.
package patch

import "encoding/json"

// Field wraps a single updatable field in a PATCH body. The zero value
// means the key was absent.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a Field carrying an explicit value.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a Field carrying an explicit JSON null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// Present reports whether the key appeared in the payload at all.
func (f Field[T]) Present() bool {
	return f.set
}

// IsNull reports whether the key was explicitly null.
func (f Field[T]) IsNull() bool {
	return f.set && f.null
}

// Value returns the carried value and whether one is present (set and
// not null).
func (f Field[T]) Value() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if string(data) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
