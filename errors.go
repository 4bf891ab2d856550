package sliced

import "fmt"

// Misuse of the containers is a caller bug, not a recoverable failure:
// the containers panic at the point of detection instead of silently
// padding or clipping a mismatched segment. Only Get-style accessors
// that take a possibly invalid index report absence, with a false
// second return value.

func checkSegmentLen(segmentLen int) {
	if segmentLen <= 0 {
		panic(fmt.Sprintf("sliced: segment length must be positive, got %d", segmentLen))
	}
}

func badIndex(op string, index, length int) string {
	return fmt.Sprintf("sliced: %s: index %d out of range for length %d", op, index, length)
}

func badSegment(op string, got, want int) string {
	return fmt.Sprintf("sliced: %s: segment length %d does not match container segment length %d", op, got, want)
}

func badShape(op string, got, segmentLen int) string {
	return fmt.Sprintf("sliced: %s: data length %d is not a positive multiple of segment length %d", op, got, segmentLen)
}

func badDoubleRelease(key int) string {
	return fmt.Sprintf("sliced: SlicedSlab.Release: key %d is already released", key)
}

func badSegmentLenMismatch(op string, want, got int) string {
	return fmt.Sprintf("sliced: %s: segment length mismatch: %d vs %d", op, want, got)
}
