package sliced

// SlabStats is a point-in-time snapshot of a SlicedSlab's occupancy.
// It carries plain counters so callers can feed whatever monitoring
// system they use.
type SlabStats struct {
	// SegmentLen is the fixed segment length.
	SegmentLen int

	// Len is the number of slots, occupied or open.
	Len int

	// Open is the number of open slots.
	Open int

	// Sparsity is Open divided by Len, or 0 for an empty slab.
	Sparsity float64

	// StorageLen is the length of the backing storage in elements.
	StorageLen int

	// StorageCap is the capacity of the backing storage in elements.
	StorageCap int
}
