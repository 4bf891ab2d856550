package sliced

import (
	"iter"

	"github.com/hupe1980/sliced/internal/flatbuf"
)

// SlicedVec stores equal-length segments back to back in a single
// contiguous buffer. Pushing a segment within the storage capacity does
// not allocate and truncating does not free, unlike a slice of slices
// where every stored segment is its own heap allocation.
//
// Slices returned by Get, At, First, Last, All and Enumerate alias the
// backing storage. They are invalidated by any mutating call and must
// not be held across one.
//
// Elements should be plain values. Removal never clears a vacated
// element in place, so an element type that owns external resources
// would have its cleanup deferred indefinitely.
type SlicedVec[T any] struct {
	storage    *flatbuf.Buffer[T]
	segmentLen int
}

// NewSlicedVec creates an empty SlicedVec with the given segment length.
// It panics if segmentLen is not positive.
func NewSlicedVec[T any](segmentLen int) *SlicedVec[T] {
	checkSegmentLen(segmentLen)
	return &SlicedVec[T]{
		storage:    flatbuf.New[T](0),
		segmentLen: segmentLen,
	}
}

// NewSlicedVecWithCapacity creates an empty SlicedVec with capacity for
// n segments. It panics if segmentLen is not positive.
func NewSlicedVecWithCapacity[T any](segmentLen, n int) *SlicedVec[T] {
	checkSegmentLen(segmentLen)
	return &SlicedVec[T]{
		storage:    flatbuf.New[T](segmentLen * n),
		segmentLen: segmentLen,
	}
}

// SlicedVecFromSlice creates a SlicedVec that takes ownership of data,
// interpreting it as consecutive segments of segmentLen elements.
// It panics if segmentLen is not positive or len(data) is not a
// multiple of segmentLen. The caller must not use data afterwards.
func SlicedVecFromSlice[T any](segmentLen int, data []T) *SlicedVec[T] {
	checkSegmentLen(segmentLen)
	if len(data)%segmentLen != 0 {
		panic(badShape("SlicedVecFromSlice", len(data), segmentLen))
	}
	return &SlicedVec[T]{
		storage:    flatbuf.FromSlice(data),
		segmentLen: segmentLen,
	}
}

// SegmentLen returns the fixed segment length.
func (v *SlicedVec[T]) SegmentLen() int {
	return v.segmentLen
}

// Len returns the number of segments.
func (v *SlicedVec[T]) Len() int {
	return v.storage.Len() / v.segmentLen
}

// Cap returns the capacity in segments.
func (v *SlicedVec[T]) Cap() int {
	return v.storage.Cap() / v.segmentLen
}

// StorageLen returns the length of the underlying storage in elements.
func (v *SlicedVec[T]) StorageLen() int {
	return v.storage.Len()
}

// StorageCap returns the capacity of the underlying storage in elements.
func (v *SlicedVec[T]) StorageCap() int {
	return v.storage.Cap()
}

// IsEmpty reports whether the vector holds no segments.
func (v *SlicedVec[T]) IsEmpty() bool {
	return v.storage.Len() == 0
}

// Push appends one or more whole segments.
//
// Amortized O(len(segment)). It panics if len(segment) is zero or not a
// multiple of the segment length.
func (v *SlicedVec[T]) Push(segment []T) {
	if len(segment) == 0 || len(segment)%v.segmentLen != 0 {
		panic(badShape("SlicedVec.Push", len(segment), v.segmentLen))
	}
	v.storage.Extend(segment)
}

// Pop removes and returns the last segment. It returns nil, false when
// the vector is empty. The returned slice is owned by the caller.
func (v *SlicedVec[T]) Pop() ([]T, bool) {
	if v.IsEmpty() {
		return nil, false
	}
	return v.storage.DrainTail(v.segmentLen), true
}

// Get returns the segment at index, or nil, false when index is out of
// range. The returned slice aliases the backing storage, so writes
// through it are visible to the vector.
func (v *SlicedVec[T]) Get(index int) ([]T, bool) {
	if index < 0 || index >= v.Len() {
		return nil, false
	}
	return v.storage.Slice(v.storageBegin(index), v.storageEnd(index)), true
}

// At returns the segment at index, panicking when index is out of
// range. The returned slice aliases the backing storage.
func (v *SlicedVec[T]) At(index int) []T {
	v.checkIndex("SlicedVec.At", index)
	return v.storage.Slice(v.storageBegin(index), v.storageEnd(index))
}

// First returns the first segment, or nil, false when empty.
func (v *SlicedVec[T]) First() ([]T, bool) {
	return v.Get(0)
}

// Last returns the last segment, or nil, false when empty.
func (v *SlicedVec[T]) Last() ([]T, bool) {
	return v.Get(v.Len() - 1)
}

// Insert places segment at index, shifting every segment at and after
// index one position to the right.
//
// This is the one linear-time mutator: complexity is O(StorageLen).
// Prefer RelocateInsert when segment order does not matter. It panics
// if index is out of range or len(segment) differs from the segment
// length.
func (v *SlicedVec[T]) Insert(index int, segment []T) {
	v.checkIndex("SlicedVec.Insert", index)
	v.checkSegment("SlicedVec.Insert", segment)
	last := v.lastIndex()
	// Duplicate the last segment into freshly extended space, then shift
	// the block [index, last) right by one segment and overwrite index.
	v.storage.ExtendWithin(v.storageBegin(last), v.storageEnd(last))
	if index < last {
		v.storage.CopyWithin(v.storageBegin(index), v.storageEnd(last-1), v.storageBegin(index+1))
	}
	v.overwrite(index, segment)
}

// SwapRemove removes and returns the segment at index by exchanging it
// with the last segment and draining the tail.
//
// Does not preserve the order of the remaining segments. O(SegmentLen).
// It panics if index is out of range. The returned slice is owned by
// the caller.
func (v *SlicedVec[T]) SwapRemove(index int) []T {
	v.checkIndex("SlicedVec.SwapRemove", index)
	if index != v.lastIndex() {
		v.Swap(index, v.lastIndex())
	}
	return v.storage.DrainTail(v.segmentLen)
}

// OverwriteRemove removes the segment at index by copying the last
// segment over it and truncating, discarding the removed contents.
//
// Same effect as SwapRemove with the return value dropped, but without
// the temporary allocation. Does not preserve segment order.
// O(SegmentLen). It panics if index is out of range.
func (v *SlicedVec[T]) OverwriteRemove(index int) {
	v.checkIndex("SlicedVec.OverwriteRemove", index)
	if index != v.lastIndex() {
		v.storage.CopyWithin(v.storageBegin(v.lastIndex()), v.storageEnd(v.lastIndex()), v.storageBegin(index))
	}
	v.Truncate(v.lastIndex())
}

// RelocateInsert appends a copy of the segment at index to the end of
// the vector, then overwrites index with segment. The displaced
// contents survive at the new last index.
//
// Does not preserve segment order. O(SegmentLen) plus amortized
// allocation. It panics if index is out of range or len(segment)
// differs from the segment length.
func (v *SlicedVec[T]) RelocateInsert(index int, segment []T) {
	v.checkIndex("SlicedVec.RelocateInsert", index)
	v.checkSegment("SlicedVec.RelocateInsert", segment)
	v.storage.ExtendWithin(v.storageBegin(index), v.storageEnd(index))
	v.overwrite(index, segment)
}

// Swap exchanges the contents of segments i and j element by element.
// It panics if either index is out of range.
func (v *SlicedVec[T]) Swap(i, j int) {
	v.checkIndex("SlicedVec.Swap", i)
	v.checkIndex("SlicedVec.Swap", j)
	for k := 0; k < v.segmentLen; k++ {
		v.storage.Swap(v.storageBegin(i)+k, v.storageBegin(j)+k)
	}
}

// Truncate shrinks the vector to n segments. It is a no-op when the
// vector already holds n or fewer segments. Capacity is unchanged.
func (v *SlicedVec[T]) Truncate(n int) {
	if n < 0 || n >= v.Len() {
		return
	}
	v.storage.Truncate(n * v.segmentLen)
}

// Append moves every segment of other to the end of v, leaving other
// empty. O(other.Len) plus possible reallocation. It panics if the
// segment lengths differ.
func (v *SlicedVec[T]) Append(other *SlicedVec[T]) {
	if other.segmentLen != v.segmentLen {
		panic(badSegmentLenMismatch("SlicedVec.Append", v.segmentLen, other.segmentLen))
	}
	v.storage.Extend(other.storage.All())
	other.storage.Reset()
}

// Clear removes all segments without releasing capacity.
func (v *SlicedVec[T]) Clear() {
	v.storage.Reset()
}

// All returns an iterator over the segments in storage order. The
// yielded slices alias the backing storage. The vector must not be
// mutated during iteration.
func (v *SlicedVec[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.storage.Slice(v.storageBegin(i), v.storageEnd(i))) {
				return
			}
		}
	}
}

// Enumerate returns an iterator over (index, segment) pairs in storage
// order. The yielded slices alias the backing storage.
func (v *SlicedVec[T]) Enumerate() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.storage.Slice(v.storageBegin(i), v.storageEnd(i))) {
				return
			}
		}
	}
}

// Storage returns the live flat storage slice holding all segments
// concatenated.
func (v *SlicedVec[T]) Storage() []T {
	return v.storage.All()
}

// IntoSlice moves the flat storage out of the vector, leaving it empty.
// The returned slice is owned by the caller.
func (v *SlicedVec[T]) IntoSlice() []T {
	return v.storage.TakeAll()
}

// ShrinkToFit reallocates storage so capacity matches length.
func (v *SlicedVec[T]) ShrinkToFit() {
	v.storage.ShrinkToFit()
}

func (v *SlicedVec[T]) storageBegin(index int) int {
	return index * v.segmentLen
}

func (v *SlicedVec[T]) storageEnd(index int) int {
	return v.storageBegin(index) + v.segmentLen
}

// Caller must ensure the vector is not empty.
func (v *SlicedVec[T]) lastIndex() int {
	return v.Len() - 1
}

// overwrite bulk-copies segment into the storage range of index.
// Caller must have range-checked index and length-checked segment, and
// segment must not alias the destination range.
func (v *SlicedVec[T]) overwrite(index int, segment []T) {
	copy(v.storage.Slice(v.storageBegin(index), v.storageEnd(index)), segment)
}

func (v *SlicedVec[T]) checkIndex(op string, index int) {
	if index < 0 || index >= v.Len() {
		panic(badIndex(op, index, v.Len()))
	}
}

func (v *SlicedVec[T]) checkSegment(op string, segment []T) {
	if len(segment) != v.segmentLen {
		panic(badSegment(op, len(segment), v.segmentLen))
	}
}
