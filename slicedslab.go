package sliced

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// SlicedSlab is a keyed container layered over a SlicedVec. Keys are
// segment indexes that stay stable while other entries come and go.
// Released slots are tracked in a roaring bitmap and reused
// smallest-index-first, which greedily keeps live data packed toward
// the front of the storage.
//
// Keys are not globally unique over the slab's lifetime: once a key is
// released it will be handed out again by a later Insert. Releasing a
// slot does not clear its elements; the stale data is overwritten on
// reuse.
type SlicedSlab[T any] struct {
	slots *SlicedVec[T]
	open  *roaring.Bitmap
}

// NewSlicedSlab creates an empty SlicedSlab with the given segment
// length. It panics if segmentLen is not positive.
func NewSlicedSlab[T any](segmentLen int) *SlicedSlab[T] {
	return &SlicedSlab[T]{
		slots: NewSlicedVec[T](segmentLen),
		open:  roaring.New(),
	}
}

// NewSlicedSlabWithCapacity creates an empty SlicedSlab with capacity
// for n segments. It panics if segmentLen is not positive.
func NewSlicedSlabWithCapacity[T any](segmentLen, n int) *SlicedSlab[T] {
	return &SlicedSlab[T]{
		slots: NewSlicedVecWithCapacity[T](segmentLen, n),
		open:  roaring.New(),
	}
}

// SlicedSlabFromSlice creates a SlicedSlab that takes ownership of
// data, with every slot initially occupied. It panics if segmentLen is
// not positive or len(data) is not a multiple of segmentLen.
func SlicedSlabFromSlice[T any](segmentLen int, data []T) *SlicedSlab[T] {
	return &SlicedSlab[T]{
		slots: SlicedVecFromSlice(segmentLen, data),
		open:  roaring.New(),
	}
}

// SegmentLen returns the fixed segment length.
func (s *SlicedSlab[T]) SegmentLen() int {
	return s.slots.SegmentLen()
}

// Len returns the number of slots, occupied or open.
func (s *SlicedSlab[T]) Len() int {
	return s.slots.Len()
}

// OpenLen returns the number of open slots.
func (s *SlicedSlab[T]) OpenLen() int {
	return int(s.open.GetCardinality())
}

// IsEmpty reports whether the slab holds no slots at all.
func (s *SlicedSlab[T]) IsEmpty() bool {
	return s.slots.IsEmpty()
}

// Insert stores segment in the lowest open slot, or appends a new slot
// when none is open, and returns the slot's key.
//
// It panics if len(segment) differs from the segment length.
func (s *SlicedSlab[T]) Insert(segment []T) int {
	s.slots.checkSegment("SlicedSlab.Insert", segment)
	if key, ok := s.Acquire(); ok {
		// The slot's stale bytes are within bounds, so a raw overwrite
		// is valid.
		s.slots.overwrite(key, segment)
		return key
	}
	key := s.slots.Len()
	s.slots.Push(segment)
	return key
}

// Release marks the slot of key as open for future reuse. The data at
// the slot becomes undefined but is not cleared.
//
// It panics if key is out of range or the slot is already open.
func (s *SlicedSlab[T]) Release(key int) {
	s.slots.checkIndex("SlicedSlab.Release", key)
	if !s.open.CheckedAdd(uint32(key)) {
		panic(badDoubleRelease(key))
	}
}

// Acquire removes and returns the lowest open slot index, letting the
// caller write the slot's storage directly. It returns 0, false when no
// slot is open.
func (s *SlicedSlab[T]) Acquire() (int, bool) {
	if s.open.IsEmpty() {
		return 0, false
	}
	key := s.open.Minimum()
	s.open.Remove(key)
	return int(key), true
}

// Get returns the segment of key, or nil, false when key is out of
// range or its slot is open. The returned slice aliases the backing
// storage, so writes through it are visible to the slab.
//
// The open-slot membership check is logarithmic in the number of open
// slots.
func (s *SlicedSlab[T]) Get(key int) ([]T, bool) {
	if key < 0 || s.open.Contains(uint32(key)) {
		return nil, false
	}
	return s.slots.Get(key)
}

// At returns whatever the slot of key currently holds, whether the slot
// is occupied or open. It panics if key is out of range.
func (s *SlicedSlab[T]) At(key int) []T {
	return s.slots.At(key)
}

// Rekey migrates the data of oldKey to the lowest open slot if that
// slot has a smaller index, releasing oldKey and returning the new key.
// Otherwise it returns oldKey unchanged.
//
// Calling Rekey on every surviving key packs live data toward the
// front, so that a following Compact can trim the vacated tail.
// It panics if oldKey is out of range or already released.
func (s *SlicedSlab[T]) Rekey(oldKey int) int {
	s.slots.checkIndex("SlicedSlab.Rekey", oldKey)
	if s.open.IsEmpty() || int(s.open.Minimum()) >= oldKey {
		return oldKey
	}
	newKey, _ := s.Acquire()
	s.Release(oldKey)
	s.slots.storage.CopyWithin(s.slots.storageBegin(oldKey), s.slots.storageEnd(oldKey), s.slots.storageBegin(newKey))
	return newKey
}

// Compact removes open slots from the end of the slab, shrinking the
// logical length. Interior open slots are untouched: callers must Rekey
// surviving keys first if they want the whole slab compacted. When
// every slot is open the slab is emptied. Capacity is unchanged.
//
// Keys at or beyond the new length are invalidated.
func (s *SlicedSlab[T]) Compact() {
	if s.OpenLen() == s.slots.Len() {
		// Covers the empty slab.
		s.open.Clear()
		s.slots.Clear()
		return
	}
	n := s.slots.Len()
	for !s.open.IsEmpty() && int(s.open.Maximum()) == n-1 {
		s.open.Remove(s.open.Maximum())
		n--
	}
	s.slots.Truncate(n)
}

// Sparsity returns the fraction of slots currently open, in [0, 1].
// An empty slab has sparsity 0.
func (s *SlicedSlab[T]) Sparsity() float64 {
	if s.slots.IsEmpty() {
		return 0
	}
	return float64(s.OpenLen()) / float64(s.slots.Len())
}

// Keys returns the occupied keys in ascending order.
func (s *SlicedSlab[T]) Keys() []int {
	keys := make([]int, 0, s.slots.Len()-s.OpenLen())
	for key := range s.AllKeys() {
		keys = append(keys, key)
	}
	return keys
}

// AllKeys returns an iterator over the occupied keys in ascending
// order.
func (s *SlicedSlab[T]) AllKeys() iter.Seq[int] {
	return func(yield func(int) bool) {
		for key := 0; key < s.slots.Len(); key++ {
			if s.open.Contains(uint32(key)) {
				continue
			}
			if !yield(key) {
				return
			}
		}
	}
}

// Enumerate returns an iterator over (key, segment) pairs, skipping
// open slots. Iteration cost is linear in the slab length regardless of
// sparsity. The yielded slices alias the backing storage.
func (s *SlicedSlab[T]) Enumerate() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for key, segment := range s.slots.Enumerate() {
			if s.open.Contains(uint32(key)) {
				continue
			}
			if !yield(key, segment) {
				return
			}
		}
	}
}

// ShrinkToFit reallocates the slot storage so capacity matches length.
func (s *SlicedSlab[T]) ShrinkToFit() {
	s.slots.ShrinkToFit()
}

// Stats returns a snapshot of the slab's occupancy counters.
func (s *SlicedSlab[T]) Stats() SlabStats {
	return SlabStats{
		SegmentLen: s.SegmentLen(),
		Len:        s.Len(),
		Open:       s.OpenLen(),
		Sparsity:   s.Sparsity(),
		StorageLen: s.slots.StorageLen(),
		StorageCap: s.slots.StorageCap(),
	}
}
