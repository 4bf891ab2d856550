// Package flatbuf implements the growable contiguous buffer backing the
// segmented containers.
//
// Buffer is a thin wrapper around a Go slice. It exists so that the
// containers in the root package only deal in segment indexes and storage
// offsets; all raw element movement (append, overlapping copy, drain)
// lives here. Buffer is not safe for concurrent use.
package flatbuf

import (
	"fmt"
	"slices"
)

// Buffer is an amortized-growth contiguous buffer of elements.
//
// Slices returned by Slice and All alias the backing array and are
// invalidated by any call that may grow or shrink the buffer.
type Buffer[T any] struct {
	data []T
}

// New creates an empty Buffer with the given capacity in elements.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{
		data: make([]T, 0, capacity),
	}
}

// FromSlice creates a Buffer that takes ownership of data.
// The caller must not use data afterwards.
func FromSlice[T any](data []T) *Buffer[T] {
	return &Buffer[T]{
		data: data,
	}
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Cap returns the capacity of the buffer in elements.
func (b *Buffer[T]) Cap() int {
	return cap(b.data)
}

// Slice returns the live subslice [lo, hi) of the buffer.
func (b *Buffer[T]) Slice(lo, hi int) []T {
	return b.data[lo:hi]
}

// All returns the live slice of every element in the buffer.
func (b *Buffer[T]) All() []T {
	return b.data
}

// Extend appends the given elements, growing the buffer as needed.
func (b *Buffer[T]) Extend(data []T) {
	b.data = append(b.data, data...)
}

// ExtendWithin appends a copy of the existing range [lo, hi) to the end
// of the buffer. Self-aliasing is safe: the source range lies below the
// current length and the destination starts at it.
func (b *Buffer[T]) ExtendWithin(lo, hi int) {
	b.data = append(b.data, b.data[lo:hi]...)
}

// CopyWithin copies the range [srcLo, srcHi) onto the range starting at
// dst. Source and destination may overlap; copy has memmove semantics.
func (b *Buffer[T]) CopyWithin(srcLo, srcHi, dst int) {
	copy(b.data[dst:], b.data[srcLo:srcHi])
}

// Swap exchanges the elements at i and j.
func (b *Buffer[T]) Swap(i, j int) {
	b.data[i], b.data[j] = b.data[j], b.data[i]
}

// Truncate shrinks the buffer to n elements. It is a no-op if the buffer
// already holds n or fewer. Truncated elements are zeroed so the garbage
// collector can reclaim anything they reference.
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 || n >= len(b.data) {
		return
	}
	clear(b.data[n:])
	b.data = b.data[:n]
}

// DrainTail removes the last n elements and returns them as a freshly
// allocated slice, preserving order.
func (b *Buffer[T]) DrainTail(n int) []T {
	if n < 0 || n > len(b.data) {
		panic(fmt.Sprintf("flatbuf: drain of %d elements from buffer of length %d", n, len(b.data)))
	}
	lo := len(b.data) - n
	out := make([]T, n)
	copy(out, b.data[lo:])
	clear(b.data[lo:])
	b.data = b.data[:lo]
	return out
}

// TakeAll moves the backing storage out of the buffer, leaving it empty.
// The returned slice is owned by the caller.
func (b *Buffer[T]) TakeAll() []T {
	out := b.data
	b.data = nil
	return out
}

// Reset empties the buffer without releasing its capacity.
func (b *Buffer[T]) Reset() {
	clear(b.data)
	b.data = b.data[:0]
}

// Grow ensures capacity for at least n additional elements.
func (b *Buffer[T]) Grow(n int) {
	b.data = slices.Grow(b.data, n)
}

// ShrinkToFit reallocates the buffer so capacity matches length.
// It is a no-op when the buffer is already tight.
func (b *Buffer[T]) ShrinkToFit() {
	if cap(b.data) == len(b.data) {
		return
	}
	b.data = slices.Clone(b.data)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return &Buffer[T]{
		data: slices.Clone(b.data),
	}
}
