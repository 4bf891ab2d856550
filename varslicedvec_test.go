package sliced

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireExtentsInvariant asserts the CSR layout contract: extents is
// non-empty, starts at 0, ends at the storage length, and never
// decreases.
func requireExtentsInvariant[T any](t *testing.T, v *VarSlicedVec[T]) {
	t.Helper()
	require.NotEmpty(t, v.extents)
	require.Zero(t, v.extents[0])
	require.Equal(t, v.storage.Len(), v.extents[len(v.extents)-1])
	for i := 1; i < len(v.extents); i++ {
		require.GreaterOrEqual(t, v.extents[i], v.extents[i-1])
	}
}

func TestVarSlicedVec(t *testing.T) {
	t.Run("PushAndGet", func(t *testing.T) {
		v := NewVarSlicedVec[int]()
		require.True(t, v.IsEmpty())

		v.Push([]int{1, 2, 3})
		v.Push([]int{4, 5})
		require.Equal(t, 2, v.Len())
		assert.Equal(t, []int{1, 2, 3}, v.At(0))
		assert.Equal(t, []int{4, 5}, v.At(1))

		_, ok := v.Get(2)
		assert.False(t, ok)
		requireExtentsInvariant(t, v)
	})

	t.Run("ZeroLengthSegments", func(t *testing.T) {
		v := NewVarSlicedVec[int]()
		v.Push([]int{1, 2, 3})
		v.Push(nil)
		v.Push([]int{4})
		require.Equal(t, 3, v.Len())
		assert.Empty(t, v.At(1))
		assert.Equal(t, []int{4}, v.At(2))

		last, ok := v.Pop()
		require.True(t, ok)
		assert.Equal(t, []int{4}, last)
		empty, ok := v.Pop()
		require.True(t, ok)
		assert.Empty(t, empty)
		requireExtentsInvariant(t, v)
	})

	t.Run("Pop", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1, 2, 3}, []int{4, 5, 6, 7, 8, 9})
		last, ok := v.Pop()
		require.True(t, ok)
		assert.Equal(t, []int{4, 5, 6, 7, 8, 9}, last)
		require.Equal(t, 1, v.Len())

		last, ok = v.Pop()
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 3}, last)
		_, ok = v.Pop()
		assert.False(t, ok)
		requireExtentsInvariant(t, v)
	})

	t.Run("SegmentLen", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1, 2}, []int{3, 4, 5, 6})
		assert.Equal(t, 2, v.SegmentLen(0))
		assert.Equal(t, 4, v.SegmentLen(1))
		// Out of range reads as zero, indistinguishable from an empty
		// segment; SegmentLenOK separates the two.
		assert.Equal(t, 0, v.SegmentLen(2))
		n, ok := v.SegmentLenOK(2)
		assert.Zero(t, n)
		assert.False(t, ok)

		v.Push(nil)
		n, ok = v.SegmentLenOK(2)
		assert.Zero(t, n)
		assert.True(t, ok)
	})

	t.Run("Lengths", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1, 2}, []int{3}, []int{4, 5, 6})
		assert.Equal(t, []int{2, 1, 3}, v.Lengths())
	})

	t.Run("SplitOff", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1, 2}, []int{3}, []int{4, 5, 6})
		tail := v.SplitOff(1)
		require.Equal(t, 1, v.Len())
		require.Equal(t, 2, tail.Len())
		assert.Equal(t, []int{1, 2}, v.At(0))
		assert.Equal(t, []int{3}, tail.At(0))
		assert.Equal(t, []int{4, 5, 6}, tail.At(1))
		requireExtentsInvariant(t, v)
		requireExtentsInvariant(t, tail)
	})

	t.Run("SplitOffEnds", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1}, []int{2, 3})
		tail := v.SplitOff(2)
		assert.True(t, tail.IsEmpty())
		require.Equal(t, 2, v.Len())

		head := v.SplitOff(0)
		assert.True(t, v.IsEmpty())
		require.Equal(t, 2, head.Len())
		assert.Equal(t, []int{2, 3}, head.At(1))
		requireExtentsInvariant(t, v)
		requireExtentsInvariant(t, head)
	})

	t.Run("Remove", func(t *testing.T) {
		// Removing the middle segment preserves the order of the rest.
		v := VarSlicedVecFromSegments([]int{1, 2}, []int{3}, []int{4, 5, 6})
		removed := v.Remove(1)
		assert.Equal(t, []int{3}, removed)
		assert.Equal(t, []int{2, 3}, v.Lengths())
		assert.Equal(t, []int{1, 2}, v.At(0))
		assert.Equal(t, []int{4, 5, 6}, v.At(1))
		requireExtentsInvariant(t, v)
	})

	t.Run("InsertRemoveInverse", func(t *testing.T) {
		segment := []int{7, 7, 7}
		for at := 0; at <= 3; at++ {
			v := VarSlicedVecFromSegments([]int{1}, []int{2, 3}, []int{4, 5, 6})
			before := v.Lengths()
			v.Insert(at, segment)
			requireExtentsInvariant(t, v)
			assert.Equal(t, segment, v.At(at))
			removed := v.Remove(at)
			assert.Equal(t, segment, removed)
			assert.Equal(t, before, v.Lengths())
			assert.Equal(t, []int{1}, v.At(0))
			assert.Equal(t, []int{2, 3}, v.At(1))
			assert.Equal(t, []int{4, 5, 6}, v.At(2))
			requireExtentsInvariant(t, v)
		}
	})

	t.Run("Append", func(t *testing.T) {
		a := VarSlicedVecFromSegments([]int{1, 2}, []int{3}, []int{4, 5, 6})
		b := VarSlicedVecFromSegments([]int{7}, []int{8, 9}, []int{3, 2, 1})
		a.Append(b)
		require.Equal(t, 6, a.Len())
		require.Equal(t, 0, b.Len())
		assert.Equal(t, []int{2, 1, 3, 1, 2, 3}, a.Lengths())
		assert.Equal(t, []int{3, 2, 1}, a.At(5))

		c := NewVarSlicedVec[int]()
		a.Append(c)
		require.Equal(t, 6, a.Len())
		requireExtentsInvariant(t, a)
		requireExtentsInvariant(t, b)
	})

	t.Run("Clear", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1, 2}, []int{3})
		v.Clear()
		assert.True(t, v.IsEmpty())
		assert.Zero(t, v.StorageLen())
		requireExtentsInvariant(t, v)
		v.Push([]int{9})
		assert.Equal(t, []int{9}, v.At(0))
	})

	t.Run("Iterators", func(t *testing.T) {
		v := VarSlicedVecFromSegments([]int{1}, []int{2, 3}, []int{4, 5, 6}, []int{7, 8}, []int{9})
		var lengths []int
		for segment := range v.All() {
			lengths = append(lengths, len(segment))
		}
		assert.Equal(t, []int{1, 2, 3, 2, 1}, lengths)

		var indexes []int
		for i, segment := range v.Enumerate() {
			indexes = append(indexes, i)
			require.NotNil(t, segment)
		}
		assert.Equal(t, []int{0, 1, 2, 3, 4}, indexes)
	})

	t.Run("FirstLast", func(t *testing.T) {
		v := NewVarSlicedVec[int]()
		_, ok := v.First()
		require.False(t, ok)

		v.Push([]int{1})
		v.Push([]int{2, 3})
		first, _ := v.First()
		last, _ := v.Last()
		assert.Equal(t, []int{1}, first)
		assert.Equal(t, []int{2, 3}, last)
	})
}

func TestVarSlicedVecPanics(t *testing.T) {
	v := VarSlicedVecFromSegments([]int{1, 2}, []int{3})
	assert.Panics(t, func() { v.At(2) })
	assert.Panics(t, func() { v.Remove(2) })
	assert.Panics(t, func() { v.SplitOff(3) })
	assert.Panics(t, func() { v.SplitOff(-1) })
	assert.Panics(t, func() { v.Insert(3, []int{4}) })
}

// The extents invariant must hold after every structural mutation.
func TestVarSlicedVecExtentsInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))
	v := NewVarSlicedVec[int]()

	segment := func() []int {
		out := make([]int, rng.IntN(5))
		for i := range out {
			out[i] = rng.IntN(1000)
		}
		return out
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.IntN(10); {
		case op < 4 || v.IsEmpty():
			v.Push(segment())
		case op == 4:
			v.Insert(rng.IntN(v.Len()+1), segment())
		case op == 5:
			v.Remove(rng.IntN(v.Len()))
		case op == 6:
			v.Pop()
		case op == 7:
			tail := v.SplitOff(rng.IntN(v.Len() + 1))
			requireExtentsInvariant(t, tail)
			v.Append(tail)
		default:
			other := VarSlicedVecFromSegments(segment(), segment())
			v.Append(other)
			requireExtentsInvariant(t, other)
		}
		requireExtentsInvariant(t, v)
	}
}
