package values

import (
	"fmt"

	"github.com/xraph/scimcore/internal/errs"
)

// Primaried is implemented by every element type that can appear inside a
// MultiValued collection, so the collection can enforce the "at most one
// primary" invariant generically and rebuild elements with a new primary
// flag via WithPrimary.
type Primaried[T any] interface {
	IsPrimary() bool
	WithPrimary(bool) T
}

// MultiValued is a non-empty ordered sequence with the SCIM multi-valued
// attribute invariant: at most one element has primary=true.
type MultiValued[T Primaried[T]] struct {
	elements []T
}

// NewMultiValued validates the primary-uniqueness invariant and wraps a
// non-empty slice of elements.
func NewMultiValued[T Primaried[T]](attribute string, elements []T) (MultiValued[T], error) {
	if len(elements) == 0 {
		return MultiValued[T]{}, errs.RequiredField(attribute)
	}

	primaryCount := 0
	for _, e := range elements {
		if e.IsPrimary() {
			primaryCount++
		}
	}

	if primaryCount > 1 {
		return MultiValued[T]{}, errs.MultiplePrimaryValues(attribute)
	}

	return MultiValued[T]{elements: append([]T(nil), elements...)}, nil
}

// Elements returns a copy of the underlying slice.
func (m MultiValued[T]) Elements() []T {
	return append([]T(nil), m.elements...)
}

// Len returns the number of elements.
func (m MultiValued[T]) Len() int {
	return len(m.elements)
}

// PrimaryIndex returns the index of the primary element, or -1 if none is
// marked primary.
func (m MultiValued[T]) PrimaryIndex() int {
	for i, e := range m.elements {
		if e.IsPrimary() {
			return i
		}
	}

	return -1
}

// WithPrimary returns a new collection in which the element at index is the
// sole primary: every other element has its primary flag cleared. index
// must address an existing element.
func (m MultiValued[T]) WithPrimary(index int) (MultiValued[T], error) {
	if index < 0 || index >= len(m.elements) {
		return MultiValued[T]{}, errs.InvalidInput("index", fmt.Sprintf("%d is out of bounds for %d element(s)", index, len(m.elements)))
	}

	elements := make([]T, len(m.elements))
	for i, e := range m.elements {
		elements[i] = e.WithPrimary(i == index)
	}

	return MultiValued[T]{elements: elements}, nil
}

// Find returns the first element matching predicate and true, or the zero
// value and false.
func (m MultiValued[T]) Find(predicate func(T) bool) (T, bool) {
	for _, e := range m.elements {
		if predicate(e) {
			return e, true
		}
	}

	var zero T
	return zero, false
}

// Filter returns every element matching predicate, preserving order.
func (m MultiValued[T]) Filter(predicate func(T) bool) []T {
	var out []T
	for _, e := range m.elements {
		if predicate(e) {
			out = append(out, e)
		}
	}

	return out
}

// MarshalJSON renders the underlying slice directly, so a MultiValued[T]
// round-trips as a plain JSON array.
func (m MultiValued[T]) MarshalJSON() ([]byte, error) {
	return jsonMarshal(m.elements)
}
