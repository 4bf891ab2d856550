package sliced

import (
	"iter"

	"github.com/hupe1980/sliced/internal/flatbuf"
)

// VarSlicedVec stores variable-length segments in a single contiguous
// buffer, with a monotonic extents array marking segment boundaries
// (compressed sparse row layout). Segment i occupies storage
// [extents[i], extents[i+1]); a segment may be empty.
//
// The extents array always holds at least the sentinel 0, starts at 0
// and ends at the storage length, and is non-decreasing. Every mutator
// re-establishes this before returning.
//
// Slices returned by Get, At, First, Last, All and Enumerate alias the
// backing storage and are invalidated by any mutating call.
type VarSlicedVec[T any] struct {
	storage *flatbuf.Buffer[T]
	extents []int
}

// NewVarSlicedVec creates an empty VarSlicedVec.
func NewVarSlicedVec[T any]() *VarSlicedVec[T] {
	return &VarSlicedVec[T]{
		storage: flatbuf.New[T](0),
		extents: []int{0},
	}
}

// NewVarSlicedVecWithCapacity creates an empty VarSlicedVec with
// storage capacity for n elements.
func NewVarSlicedVecWithCapacity[T any](n int) *VarSlicedVec[T] {
	return &VarSlicedVec[T]{
		storage: flatbuf.New[T](n),
		extents: []int{0},
	}
}

// VarSlicedVecFromSegments creates a VarSlicedVec holding copies of the
// given segments in order.
func VarSlicedVecFromSegments[T any](segments ...[]T) *VarSlicedVec[T] {
	total := 0
	for _, segment := range segments {
		total += len(segment)
	}
	v := NewVarSlicedVecWithCapacity[T](total)
	for _, segment := range segments {
		v.Push(segment)
	}
	return v
}

// Len returns the number of segments.
func (v *VarSlicedVec[T]) Len() int {
	return len(v.extents) - 1
}

// IsEmpty reports whether the vector holds no segments.
func (v *VarSlicedVec[T]) IsEmpty() bool {
	return v.Len() == 0
}

// StorageLen returns the length of the underlying storage in elements.
func (v *VarSlicedVec[T]) StorageLen() int {
	return v.storage.Len()
}

// StorageCap returns the capacity of the underlying storage in
// elements.
func (v *VarSlicedVec[T]) StorageCap() int {
	return v.storage.Cap()
}

// Push appends segment to the end of the vector. Zero-length segments
// are allowed. Amortized O(len(segment)).
func (v *VarSlicedVec[T]) Push(segment []T) {
	v.extents = append(v.extents, v.lastExtent()+len(segment))
	v.storage.Extend(segment)
}

// Pop removes and returns the last segment. It returns nil, false when
// the vector is empty. The returned slice is owned by the caller.
func (v *VarSlicedVec[T]) Pop() ([]T, bool) {
	if v.IsEmpty() {
		return nil, false
	}
	n := v.lastExtent() - v.extents[v.Len()-1]
	v.extents = v.extents[:len(v.extents)-1]
	return v.storage.DrainTail(n), true
}

// Get returns the segment at index, or nil, false when index is out of
// range. The returned slice aliases the backing storage.
func (v *VarSlicedVec[T]) Get(index int) ([]T, bool) {
	if index < 0 || index >= v.Len() {
		return nil, false
	}
	return v.storage.Slice(v.extents[index], v.extents[index+1]), true
}

// At returns the segment at index, panicking when index is out of
// range. The returned slice aliases the backing storage.
func (v *VarSlicedVec[T]) At(index int) []T {
	v.checkIndex("VarSlicedVec.At", index)
	return v.storage.Slice(v.extents[index], v.extents[index+1])
}

// First returns the first segment, or nil, false when empty.
func (v *VarSlicedVec[T]) First() ([]T, bool) {
	return v.Get(0)
}

// Last returns the last segment, or nil, false when empty.
func (v *VarSlicedVec[T]) Last() ([]T, bool) {
	return v.Get(v.Len() - 1)
}

// SegmentLen returns the length of the segment at index, or 0 when
// index is out of range. An out-of-range index is therefore
// indistinguishable from a present but empty segment; use SegmentLenOK
// to separate the two.
func (v *VarSlicedVec[T]) SegmentLen(index int) int {
	n, _ := v.SegmentLenOK(index)
	return n
}

// SegmentLenOK returns the length of the segment at index and whether
// index is in range.
func (v *VarSlicedVec[T]) SegmentLenOK(index int) (int, bool) {
	if index < 0 || index >= v.Len() {
		return 0, false
	}
	return v.extents[index+1] - v.extents[index], true
}

// Lengths returns every segment length as a freshly allocated slice.
func (v *VarSlicedVec[T]) Lengths() []int {
	lengths := make([]int, v.Len())
	for i := range lengths {
		lengths[i] = v.extents[i+1] - v.extents[i]
	}
	return lengths
}

// SplitOff partitions the vector at segment index at: v retains
// segments [0, at) and the returned vector holds [at, Len). The tail's
// extents are renormalized to start at 0. O(StorageLen). It panics if
// at is negative or greater than Len.
func (v *VarSlicedVec[T]) SplitOff(at int) *VarSlicedVec[T] {
	if at < 0 || at > v.Len() {
		panic(badIndex("VarSlicedVec.SplitOff", at, v.Len()+1))
	}
	base := v.extents[at]
	tailExtents := make([]int, 0, len(v.extents)-at)
	for _, extent := range v.extents[at:] {
		tailExtents = append(tailExtents, extent-base)
	}
	tailData := v.storage.DrainTail(v.storage.Len() - base)
	v.extents = v.extents[:at+1]
	return &VarSlicedVec[T]{
		storage: flatbuf.FromSlice(tailData),
		extents: tailExtents,
	}
}

// Insert places segment at position at, shifting the segments at and
// after it one position to the right. O(StorageLen): every following
// offset moves. It panics if at is negative or greater than Len.
func (v *VarSlicedVec[T]) Insert(at int, segment []T) {
	tail := v.SplitOff(at)
	v.Push(segment)
	v.Append(tail)
}

// Remove deletes and returns the segment at index, preserving the order
// of the remaining segments. O(StorageLen). It panics if index is out
// of range. The returned slice is owned by the caller.
func (v *VarSlicedVec[T]) Remove(index int) []T {
	v.checkIndex("VarSlicedVec.Remove", index)
	if index == v.Len()-1 {
		out, _ := v.Pop()
		return out
	}
	tail := v.SplitOff(index + 1)
	out, _ := v.Pop()
	v.Append(tail)
	return out
}

// Append moves every segment of other to the end of v, re-basing its
// extents, and leaves other empty.
func (v *VarSlicedVec[T]) Append(other *VarSlicedVec[T]) {
	base := v.lastExtent()
	for _, extent := range other.extents[1:] {
		v.extents = append(v.extents, base+extent)
	}
	v.storage.Extend(other.storage.All())
	other.Clear()
}

// Clear removes all segments without releasing storage capacity.
func (v *VarSlicedVec[T]) Clear() {
	v.storage.Reset()
	v.extents = v.extents[:1]
	v.extents[0] = 0
}

// All returns an iterator over the segments in index order, computed
// freshly from the extents. The yielded slices alias the backing
// storage. The vector must not be mutated during iteration.
func (v *VarSlicedVec[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.storage.Slice(v.extents[i], v.extents[i+1])) {
				return
			}
		}
	}
}

// Enumerate returns an iterator over (index, segment) pairs in index
// order. The yielded slices alias the backing storage.
func (v *VarSlicedVec[T]) Enumerate() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.storage.Slice(v.extents[i], v.extents[i+1])) {
				return
			}
		}
	}
}

// lastExtent returns the storage offset where the next pushed segment
// begins. The extents slice is never empty.
func (v *VarSlicedVec[T]) lastExtent() int {
	return v.extents[len(v.extents)-1]
}

func (v *VarSlicedVec[T]) checkIndex(op string, index int) {
	if index < 0 || index >= v.Len() {
		panic(badIndex(op, index, v.Len()))
	}
}
