// Package seq provides Dyna, the generic growable owned-value sequence used
// pervasively by the object model in place of bare slices, per the design
// note on dynamic arrays: one grow/clone discipline shared by every
// aggregate (branch commit lists, commit change lists, diff line lists).
package seq

// Dyna is an ordered, owned sequence of T. The zero value is an empty,
// usable sequence.
type Dyna[T any] struct {
	items []T
}

// Of builds a Dyna from existing items, taking ownership of the slice.
func Of[T any](items ...T) *Dyna[T] {
	return &Dyna[T]{items: items}
}

// Append adds v to the end of the sequence.
func (d *Dyna[T]) Append(v T) {
	d.items = append(d.items, v)
}

// Len returns the number of elements.
func (d *Dyna[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// At returns the element at index i. Panics if out of range, matching slice
// semantics.
func (d *Dyna[T]) At(i int) T {
	return d.items[i]
}

// Set replaces the element at index i.
func (d *Dyna[T]) Set(i int, v T) {
	d.items[i] = v
}

// Slice returns the backing slice. Callers must not mutate its length; it is
// returned for read-only iteration and serialization.
func (d *Dyna[T]) Slice() []T {
	if d == nil {
		return nil
	}
	return d.items
}

// Clone returns a Dyna with a copy of the current items, independent of the
// receiver's backing array.
func (d *Dyna[T]) Clone() *Dyna[T] {
	out := make([]T, d.Len())
	copy(out, d.items)
	return &Dyna[T]{items: out}
}

// Truncate drops every element from index n onward.
func (d *Dyna[T]) Truncate(n int) {
	d.items = d.items[:n]
}

// RemoveAt deletes the element at index i, shifting subsequent elements down.
func (d *Dyna[T]) RemoveAt(i int) {
	d.items = append(d.items[:i], d.items[i+1:]...)
}

// Find returns the index of the first element for which match returns true,
// or -1 if none matches.
func (d *Dyna[T]) Find(match func(T) bool) int {
	for i, v := range d.items {
		if match(v) {
			return i
		}
	}
	return -1
}
