package sliced_test

import (
	"fmt"

	"github.com/hupe1980/sliced"
)

func ExampleSlicedVec() {
	v := sliced.NewSlicedVec[int](3)
	v.Push([]int{1, 2, 3})
	v.Push([]int{4, 5, 6, 7, 8, 9}) // any multiple of the segment length

	removed := v.SwapRemove(0)
	fmt.Println(removed)
	fmt.Println(v.At(0))
	fmt.Println(v.Len())
	// Output:
	// [1 2 3]
	// [7 8 9]
	// 2
}

func ExampleSlicedSlab() {
	s := sliced.NewSlicedSlab[int](3)
	a := s.Insert([]int{1, 2, 3})
	b := s.Insert([]int{4, 5, 6})

	s.Release(a)
	key := s.Insert([]int{7, 8, 9}) // reuses the released slot
	fmt.Println(key == a)

	segment, ok := s.Get(b)
	fmt.Println(segment, ok)
	// Output:
	// true
	// [4 5 6] true
}

func ExampleSlicedSlab_Rekey() {
	s := sliced.NewSlicedSlab[int](2)
	a := s.Insert([]int{1, 1})
	b := s.Insert([]int{2, 2})
	s.Release(a)

	b = s.Rekey(b) // migrates toward the front
	s.Compact()    // trims the vacated tail
	fmt.Println(b, s.Len())
	// Output:
	// 0 1
}

func ExampleVarSlicedVec() {
	v := sliced.NewVarSlicedVec[int]()
	v.Push([]int{1, 2})
	v.Push([]int{3})
	v.Push([]int{4, 5, 6})

	removed := v.Remove(1)
	fmt.Println(removed)
	fmt.Println(v.Lengths())
	// Output:
	// [3]
	// [2 3]
}
