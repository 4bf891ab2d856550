// Package sliced provides segmented contiguous-storage containers:
// collections of equal- or variable-length runs of values packed into a
// single growable buffer.
//
// Storing slices within a slice is convenient but every stored slice is
// its own heap allocation, and removal releases it. The containers here
// keep all segments concatenated in one backing buffer, so pushing
// within capacity never allocates and truncating never frees.
//
// # Containers
//
//	// SlicedVec: equal-length segments, non-order-preserving removal.
//	v := sliced.NewSlicedVec[int](3)
//	v.Push([]int{1, 2, 3})
//	v.Push([]int{4, 5, 6, 7, 8, 9}) // any multiple of the segment length
//	removed := v.SwapRemove(0)      // [1 2 3]; last segment moved to front
//
//	// SlicedSlab: stable integer keys over the same layout.
//	s := sliced.NewSlicedSlab[int](3)
//	key := s.Insert([]int{1, 2, 3})
//	s.Release(key) // slot is reused by a later Insert
//
//	// VarSlicedVec: variable-length segments in compressed sparse layout.
//	w := sliced.NewVarSlicedVec[int]()
//	w.Push([]int{1, 2})
//	w.Push([]int{3, 4, 5})
//	n := w.SegmentLen(1) // 3
//
// # Removal trades order for speed
//
// SwapRemove, OverwriteRemove and RelocateInsert run in time
// proportional to the segment length by moving the last segment instead
// of shifting everything after the removal point. They do not preserve
// the relative order of the remaining segments. Order-preserving Insert
// on SlicedVec and Insert/Remove on VarSlicedVec are linear in the
// storage length and documented as such.
//
// # Aliasing
//
// Accessors return subslices of the backing storage. A mutating call
// may grow, shift or shrink that storage, so a slice obtained before a
// mutation must not be used after it.
//
// The containers are not safe for concurrent use; callers needing
// shared access must supply their own mutual exclusion.
package sliced
